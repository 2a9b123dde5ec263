package logging

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoggerConfig holds logger configuration: where to log, at what level,
// and which static fields to attach to every entry (service name,
// environment, and anything the caller wants on every line).
type LoggerConfig struct {
	DefaultLevel     string         `json:"defaultLevel"`
	Service          string         `json:"service"`
	Component        string         `json:"component,omitempty"`
	Environment      string         `json:"environment"`
	Sinks            []SinkConfig   `json:"sinks"`
	StaticFields     map[string]any `json:"staticFields,omitempty"`
	EnableCaller     bool           `json:"enableCaller"`
	EnableStacktrace bool           `json:"enableStacktrace"`
}

// SinkConfig defines an output sink: console (stderr) or a rotated file.
type SinkConfig struct {
	Type    string             `json:"type"` // console, file
	Level   string             `json:"level,omitempty"`
	Format  string             `json:"format"` // json, console
	Console *ConsoleSinkConfig `json:"console,omitempty"`
	File    *FileSinkConfig    `json:"file,omitempty"`
}

// ConsoleSinkConfig configures console output. Stream is always stderr;
// stdout is reserved for the CLI's own data output.
type ConsoleSinkConfig struct {
	Stream   string `json:"stream"`
	Colorize bool   `json:"colorize"`
}

// FileSinkConfig configures rotated file output via lumberjack.
type FileSinkConfig struct {
	Path       string `json:"path"`
	MaxSize    int    `json:"maxSize"`    // MB
	MaxAge     int    `json:"maxAge"`     // days
	MaxBackups int    `json:"maxBackups"` // number of old files to keep
	Compress   bool   `json:"compress"`
}

// LoadConfig loads logger configuration from a YAML or JSON file.
func LoadConfig(path string) (*LoggerConfig, error) {
	// #nosec G304 -- intentional user-controlled file access for loading logger configuration from user-specified path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var jsonData []byte
	if isYAML(path) {
		var yamlContent any
		if err := yaml.Unmarshal(data, &yamlContent); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		jsonData, err = json.Marshal(yamlContent)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
		}
	} else {
		jsonData = data
	}

	var config LoggerConfig
	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := validateConsoleSinks(config.Sinks); err != nil {
		return nil, fmt.Errorf("sink validation failed: %w", err)
	}

	return &config, nil
}

func applyDefaults(config *LoggerConfig) {
	if config.DefaultLevel == "" {
		config.DefaultLevel = "INFO"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.StaticFields == nil {
		config.StaticFields = make(map[string]any)
	}
	if len(config.Sinks) == 0 {
		config.Sinks = []SinkConfig{{
			Type:   "console",
			Format: "console",
			Console: &ConsoleSinkConfig{
				Stream: "stderr",
			},
		}}
	}

	for i := range config.Sinks {
		sink := &config.Sinks[i]
		if sink.Format == "" {
			sink.Format = "json"
		}
		if sink.Type == "console" && sink.Console == nil {
			sink.Console = &ConsoleSinkConfig{Stream: "stderr"}
		}
	}
}

// validateConsoleSinks ensures console sinks only write to stderr, so
// stdout stays free for the CLI's data output (e.g. `dedupctl dedupe`
// piping JSON results downstream).
func validateConsoleSinks(sinks []SinkConfig) error {
	for _, sink := range sinks {
		if sink.Type == "console" {
			if sink.Console != nil && sink.Console.Stream != "stderr" && sink.Console.Stream != "" {
				return fmt.Errorf("console sink must use stderr (stdout is forbidden), got: %s", sink.Console.Stream)
			}
		}
	}
	return nil
}

func isYAML(path string) bool {
	return len(path) > 5 && (path[len(path)-5:] == ".yaml" || path[len(path)-4:] == ".yml")
}

// DefaultConfig returns a default logger configuration: INFO to stderr.
func DefaultConfig(service string) *LoggerConfig {
	return &LoggerConfig{
		DefaultLevel: "INFO",
		Service:      service,
		Environment:  "development",
		Sinks: []SinkConfig{
			{
				Type:   "console",
				Format: "console",
				Console: &ConsoleSinkConfig{
					Stream: "stderr",
				},
			},
		},
		StaticFields: make(map[string]any),
	}
}
