package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"project-translate/internal/domain"
	"project-translate/internal/language"
)

func strPtr(s string) *string { return &s }

func slotMap(values map[string]string) map[string]domain.Slot {
	slots := make(map[string]domain.Slot, len(values))
	for name, v := range values {
		slots[name] = domain.Slot{Name: name, Value: strPtr(v)}
	}
	return slots
}

func TestParseSlots_MultiSlotScenario(t *testing.T) {
	slots := slotMap(map[string]string{
		"word0": "I",
		"word1": "love",
		"word2": "horses",
		"word3": "in",
		"word4": "spanish",
	})

	text, lang := ParseSlots(slots, language.Default())
	require.Equal(t, "I love horses", text)
	require.Equal(t, "spanish", lang)
}

func TestParseSlots_TrailingVariants(t *testing.T) {
	cases := []struct {
		name     string
		slots    map[string]string
		wantText string
		wantLang string
	}{
		{
			name:     "in preposition",
			slots:    map[string]string{"word0": "hello", "word1": "in", "word2": "french"},
			wantText: "hello",
			wantLang: "french",
		},
		{
			name:     "to preposition",
			slots:    map[string]string{"word0": "hello", "word1": "to", "word2": "german"},
			wantText: "hello",
			wantLang: "german",
		},
		{
			name:     "bare trailing language",
			slots:    map[string]string{"word0": "hello", "word1": "italian"},
			wantText: "hello",
			wantLang: "italian",
		},
		{
			name:     "language casing normalized",
			slots:    map[string]string{"word0": "hello", "word1": "in", "word2": "Japanese"},
			wantText: "hello",
			wantLang: "japanese",
		},
		{
			name:     "mixed-case preposition and language stripped",
			slots:    map[string]string{"word0": "I", "word1": "love", "word2": "horses", "word3": "In", "word4": "Spanish"},
			wantText: "I love horses",
			wantLang: "spanish",
		},
		{
			name:     "upper-case bare trailing language stripped",
			slots:    map[string]string{"word0": "hello", "word1": "GERMAN"},
			wantText: "hello",
			wantLang: "german",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, lang := ParseSlots(slotMap(tc.slots), language.Default())
			require.Equal(t, tc.wantText, text)
			require.Equal(t, tc.wantLang, lang)
		})
	}
}

func TestParseSlots_AllSupportedLanguagesRoundTrip(t *testing.T) {
	registry := language.Default()
	for _, name := range registry.Names() {
		slots := slotMap(map[string]string{
			"word0": "good",
			"word1": "morning",
			"word2": "in",
			"word3": name,
		})
		text, lang := ParseSlots(slots, registry)
		require.Equal(t, "good morning", text, name)
		require.Equal(t, name, lang)
	}
}

func TestParseSlots_UnknownTrailingWord(t *testing.T) {
	slots := slotMap(map[string]string{
		"word0": "hello",
		"word1": "in",
		"word2": "klingon",
	})

	text, lang := ParseSlots(slots, language.Default())
	require.Equal(t, "hello in klingon", text)
	require.Empty(t, lang)
}

func TestParseSlots_EmptySlots(t *testing.T) {
	text, lang := ParseSlots(nil, language.Default())
	require.Empty(t, text)
	require.Empty(t, lang)

	text, lang = ParseSlots(map[string]domain.Slot{}, language.Default())
	require.Empty(t, text)
	require.Empty(t, lang)
}

func TestParseSlots_DropsUnpopulatedSlots(t *testing.T) {
	slots := slotMap(map[string]string{
		"word0": "hello",
		"word2": "in",
		"word3": "spanish",
	})
	slots["word1"] = domain.Slot{Name: "word1"} // declared, nothing captured

	text, lang := ParseSlots(slots, language.Default())
	require.Equal(t, "hello", text)
	require.Equal(t, "spanish", lang)
}

func TestParseSlots_OrdersBySlotNameNotMapOrder(t *testing.T) {
	slots := slotMap(map[string]string{
		"word2": "horses",
		"word0": "I",
		"word4": "spanish",
		"word1": "love",
		"word3": "in",
	})

	text, lang := ParseSlots(slots, language.Default())
	require.Equal(t, "I love horses", text)
	require.Equal(t, "spanish", lang)
}

func TestParseSlots_LanguageNameAloneIsNotStripped(t *testing.T) {
	slots := slotMap(map[string]string{"word0": "spanish"})

	text, lang := ParseSlots(slots, language.Default())
	require.Equal(t, "spanish", text)
	require.Equal(t, "spanish", lang)
}
