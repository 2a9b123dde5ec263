// Command dedupctl is a flag-driven workbench for the engine façade:
// one subcommand per operation, items read from stdin or -file, JSON
// results on stdout, operational logs on stderr.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/loomtext/dedupweave/engine"
	"github.com/loomtext/dedupweave/errors"
	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/logging"
	"github.com/loomtext/dedupweave/strategy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log, err := logging.NewCLI("dedupctl")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cmd := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch cmd {
	case "add":
		runErr = runAdd(args, log)
	case "get":
		runErr = runGet(args, log)
	case "list":
		runErr = runList(args, log)
	case "clear":
		runErr = runClear(log)
	case "strategy":
		runErr = runStrategy(args, log)
	case "dedupe":
		runErr = runDedupe(args, log)
	case "split-dedupe":
		runErr = runSplitDedupe(args, log)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}

// readItems loads newline-delimited items from -file, or stdin if -file
// is unset or "-". Blank lines are skipped.
func readItems(file string) ([]string, error) {
	var r io.Reader = os.Stdin
	if file != "" && file != "-" {
		f, err := os.Open(file) // #nosec G304 -- operator-supplied CLI path
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}

	var items []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, line)
	}
	return items, scanner.Err()
}

func readAll(file string) (string, error) {
	var r io.Reader = os.Stdin
	if file != "" && file != "-" {
		f, err := os.Open(file) // #nosec G304 -- operator-supplied CLI path
		if err != nil {
			return "", fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// newEngine builds an Engine seeded with the requested strategy
// (a preset name, a strategy JSON file, or the default), with discovered
// stopword/delimiter overrides.
func newEngine(presetName, strategyFile string, log *logging.Logger) (*engine.Engine, error) {
	overrides, err := langres.Discover("dedupctl")
	if err != nil {
		return nil, fmt.Errorf("discover overrides: %w", err)
	}

	base := strategy.Default()
	if presetName != "" {
		p, ok := strategy.PresetByName(presetName)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", presetName)
		}
		base = p.Settings
	}

	e := engine.New(base, overrides, log.WithComponent("engine"))

	if strategyFile != "" {
		data, err := os.ReadFile(strategyFile) // #nosec G304 -- operator-supplied CLI path
		if err != nil {
			return nil, fmt.Errorf("read strategy file: %w", err)
		}
		if _, _, envelope := e.SetStrategy(data); envelope != nil {
			return nil, envelope
		}
	}

	return e, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEnvelope(envelope *errors.Envelope) error {
	return printJSON(envelope)
}

func runAdd(args []string, log *logging.Logger) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	file := fs.String("file", "", "read items from this file instead of stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := readItems(*file)
	if err != nil {
		return err
	}

	e, err := newEngine("", "", log)
	if err != nil {
		return err
	}

	indices := make([]int, 0, len(items))
	for _, item := range items {
		indices = append(indices, e.Add(item))
	}
	return printJSON(map[string]interface{}{"added": indices, "total": len(e.All())})
}

func runGet(args []string, log *logging.Logger) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	file := fs.String("file", "", "read corpus items from this file instead of stdin")
	index := fs.Int("index", -1, "item index to fetch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := readItems(*file)
	if err != nil {
		return err
	}
	e, err := newEngine("", "", log)
	if err != nil {
		return err
	}
	for _, item := range items {
		e.Add(item)
	}

	text, envelope := e.Get(*index)
	if envelope != nil {
		return printEnvelope(envelope)
	}
	return printJSON(map[string]interface{}{"index": *index, "text": text})
}

func runList(args []string, log *logging.Logger) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	file := fs.String("file", "", "read items from this file instead of stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, err := readItems(*file)
	if err != nil {
		return err
	}
	e, err := newEngine("", "", log)
	if err != nil {
		return err
	}
	for _, item := range items {
		e.Add(item)
	}
	return printJSON(map[string]interface{}{"items": e.All()})
}

func runClear(log *logging.Logger) error {
	e, err := newEngine("", "", log)
	if err != nil {
		return err
	}
	e.Add("placeholder")
	e.Clear()
	return printJSON(map[string]interface{}{"items": e.All()})
}

func runStrategy(args []string, log *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("strategy requires a subcommand: get|set|preset")
	}
	sub := args[0]
	subArgs := args[1:]

	switch sub {
	case "get":
		return runStrategyGet(subArgs, log)
	case "set":
		return runStrategySet(subArgs, log)
	case "preset":
		return runStrategyPreset(subArgs, log)
	default:
		return fmt.Errorf("unknown strategy subcommand %q", sub)
	}
}

func runStrategyGet(args []string, log *logging.Logger) error {
	fs := flag.NewFlagSet("strategy get", flag.ContinueOnError)
	presetName := fs.String("preset", "", "seed the engine with this preset before printing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := newEngine(*presetName, "", log)
	if err != nil {
		return err
	}
	raw, err := e.GetStrategy()
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func runStrategySet(args []string, log *logging.Logger) error {
	fs := flag.NewFlagSet("strategy set", flag.ContinueOnError)
	file := fs.String("file", "", "strategy update JSON file (stdin if unset)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	payload, err := readAll(*file)
	if err != nil {
		return err
	}
	e, err := newEngine("", "", log)
	if err != nil {
		return err
	}
	applied, warnings, envelope := e.SetStrategy([]byte(payload))
	if envelope != nil {
		return printEnvelope(envelope)
	}
	raw, err := strategy.MarshalCanonical(applied)
	if err != nil {
		return err
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"strategy": decoded, "warnings": warnings})
}

func runStrategyPreset(args []string, log *logging.Logger) error {
	fs := flag.NewFlagSet("strategy preset", flag.ContinueOnError)
	list := fs.Bool("list", false, "list the built-in presets instead of applying one")
	name := fs.String("name", "", "preset name to apply, e.g. \"Near Match\"")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		presets := strategy.Presets()
		summaries := make([]map[string]string, 0, len(presets))
		for _, p := range presets {
			summaries = append(summaries, map[string]string{"name": p.Name, "description": p.Description})
		}
		return printJSON(map[string]interface{}{"presets": summaries})
	}

	if *name == "" {
		return fmt.Errorf("strategy preset requires -name or -list")
	}
	e, err := newEngine("", "", log)
	if err != nil {
		return err
	}
	applied, envelope := e.ApplyPreset(*name)
	if envelope != nil {
		return printEnvelope(envelope)
	}
	raw, err := strategy.MarshalCanonical(applied)
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func runDedupe(args []string, log *logging.Logger) error {
	fs := flag.NewFlagSet("dedupe", flag.ContinueOnError)
	file := fs.String("file", "", "read items from this file instead of stdin")
	presetName := fs.String("preset", "", "seed the strategy from a built-in preset")
	strategyFile := fs.String("strategy-file", "", "apply a strategy update JSON file after the preset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := readItems(*file)
	if err != nil {
		return err
	}
	e, err := newEngine(*presetName, *strategyFile, log)
	if err != nil {
		return err
	}
	for _, item := range items {
		e.Add(item)
	}

	result, err := e.Deduplicate()
	if err != nil {
		return err
	}
	log.Info("deduplicate complete")
	return printJSON(engine.ToWire(result))
}

func runSplitDedupe(args []string, log *logging.Logger) error {
	fs := flag.NewFlagSet("split-dedupe", flag.ContinueOnError)
	file := fs.String("file", "", "read the document from this file instead of stdin")
	presetName := fs.String("preset", "", "seed the strategy from a built-in preset")
	strategyFile := fs.String("strategy-file", "", "apply a strategy update JSON file after the preset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := readAll(*file)
	if err != nil {
		return err
	}
	e, err := newEngine(*presetName, *strategyFile, log)
	if err != nil {
		return err
	}

	result, err := e.DeduplicateUnits(text)
	if err != nil {
		return err
	}
	log.Info("split-dedupe complete")
	return printJSON(engine.ToWire(result))
}

func usage() {
	fmt.Fprint(os.Stderr, `dedupctl commands:
  add    [-file path]                                    add newline-delimited items, print their indices
  get    [-file path] -index N                            add items then fetch one by index
  list   [-file path]                                     add items then print the full corpus
  clear                                                    demonstrate add-then-clear
  strategy get     [-preset name]                          print the canonical active strategy
  strategy set     [-file path]                            apply a strategy update payload (stdin if unset)
  strategy preset  [-list] [-name name]                    list or apply a built-in preset
  dedupe [-file path] [-preset name] [-strategy-file path] group newline-delimited items
  split-dedupe [-file path] [-preset name] [-strategy-file path] split one document and group its units
`)
}
