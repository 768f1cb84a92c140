package usecase

import (
	"sort"
	"strings"

	"project-translate/internal/domain"
	"project-translate/internal/language"
)

// ParseSlots reconstructs the spoken phrase from a multi-slot intent payload
// and extracts the trailing target language.
//
// Slots with no captured value are dropped. The remaining values are ordered
// by slot name (the interaction model names them word0, word1, ... so slot
// name, not map order, reconstructs the utterance), joined with single spaces
// and trimmed. The last whitespace-delimited word, lowercased, is the
// candidate language: if the registry does not know it, lang is returned
// empty and the text is left untouched; if it does, one trailing
// " <lang>", " in <lang>" or " to <lang>" is stripped.
//
// This is a best-effort heuristic. A phrase that genuinely ends in a
// supported language name loses that word.
func ParseSlots(slots map[string]domain.Slot, registry *language.Registry) (text, lang string) {
	populated := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.Value == nil {
			continue
		}
		populated = append(populated, s)
	}
	sort.Slice(populated, func(i, j int) bool {
		return populated[i].Name < populated[j].Name
	})

	values := make([]string, len(populated))
	for i, s := range populated {
		values[i] = *s.Value
	}
	text = strings.Trim(strings.Join(values, " "), " ")

	words := strings.Split(text, " ")
	lang = strings.ToLower(words[len(words)-1])
	if _, ok := registry.Resolve(lang); !ok {
		return text, ""
	}

	// The spoken text keeps its original casing, so the suffix match has to
	// be case-insensitive. Supported names are ASCII, so lowering preserves
	// byte offsets.
	lower := strings.ToLower(text)
	for _, suffix := range []string{" in " + lang, " to " + lang, " " + lang} {
		if strings.HasSuffix(lower, suffix) {
			text = text[:len(text)-len(suffix)]
			break
		}
	}
	return text, lang
}
