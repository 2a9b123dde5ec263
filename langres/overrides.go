package langres

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loomtext/dedupweave/config"
)

// overridesDocument mirrors the on-disk YAML shape of a user override
// file:
//
//	stop_words:
//	  en: [foo, bar]
//	sentence_delimiters: ["…"]
//	paragraph_delimiter: "\r\n\r\n"
type overridesDocument struct {
	StopWords          map[string][]string `yaml:"stop_words"`
	SentenceDelimiters []string            `yaml:"sentence_delimiters"`
	ParagraphDelimiter string              `yaml:"paragraph_delimiter"`
}

// LoadOverridesFile parses a user override document from path.
func LoadOverridesFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from XDG discovery or an explicit user flag
	if err != nil {
		return Overrides{}, err
	}

	var doc overridesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Overrides{}, err
	}

	delims := make([]rune, 0, len(doc.SentenceDelimiters))
	for _, s := range doc.SentenceDelimiters {
		for _, r := range s {
			delims = append(delims, r)
		}
	}

	return Overrides{
		StopWords:          doc.StopWords,
		SentenceDelimiters: delims,
		ParagraphDelimiter: doc.ParagraphDelimiter,
	}, nil
}

// Discover searches the standard config locations for appName and loads
// the first override file it finds. It returns a zero Overrides (not an
// error) when no override file is present, matching spec.md's "absence
// of the file is not an error."
func Discover(appName string) (Overrides, error) {
	path := config.FirstExisting(config.GetAppConfigPaths(appName))
	if path == "" {
		return Overrides{}, nil
	}
	return LoadOverridesFile(path)
}
