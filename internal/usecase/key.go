package usecase

import "strings"

// DeriveKey builds the deterministic cache key for a (text, language code)
// pair. The key doubles as the stored artifact's object name.
//
// Normalization is intentionally literal: spaces become underscores without
// collapsing runs, and underscores already present in the text are not
// escaped. Two source phrases can therefore collide on a key; the phrase
// space is small and human-curated, so this is accepted.
func DeriveKey(text, code string) string {
	return strings.ToLower(strings.ReplaceAll(text, " ", "_")) + "_" + code + ".mp3"
}
