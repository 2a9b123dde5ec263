// Package split implements C3: breaking a normalized text into an
// ordered sequence of comparison units according to a strategy's
// split_strategy field.
package split

import (
	"strings"

	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/strategy"
)

// Units splits text into the ordered units named by how, consulting
// resources for the active sentence/paragraph delimiters. Empty units
// are always discarded except for WholeText, which always yields
// exactly one unit (even if text is empty).
func Units(text string, how strategy.SplitStrategy, resources *langres.Resources) []string {
	switch how {
	case strategy.Characters:
		return characters(text)
	case strategy.Words:
		return words(text)
	case strategy.Sentences:
		return sentences(text, resources.SentenceDelims())
	case strategy.Paragraphs:
		return paragraphs(text, resources.ParagraphDelim())
	case strategy.WholeText:
		return []string{text}
	default:
		return []string{text}
	}
}

func characters(text string) []string {
	runes := []rune(text)
	units := make([]string, 0, len(runes))
	for _, r := range runes {
		units = append(units, string(r))
	}
	return units
}

func words(text string) []string {
	fields := strings.Fields(text)
	units := make([]string, 0, len(fields))
	units = append(units, fields...)
	return units
}

func sentences(text string, delims map[rune]struct{}) []string {
	var units []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if _, ok := delims[r]; ok {
			if u := strings.TrimSpace(b.String()); u != "" {
				units = append(units, u)
			}
			b.Reset()
		}
	}
	if u := strings.TrimSpace(b.String()); u != "" {
		units = append(units, u)
	}
	return units
}

func paragraphs(text, delim string) []string {
	var parts []string
	if delim == "" {
		parts = []string{text}
	} else {
		parts = strings.Split(text, delim)
	}
	units := make([]string, 0, len(parts))
	for _, p := range parts {
		if u := strings.TrimSpace(p); u != "" {
			units = append(units, u)
		}
	}
	return units
}
