package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses each run of whitespace into a single space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			r = ' '
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DeriveLetter returns the index letter of a word: the lower-cased first
// character of override when it is non-blank, otherwise of lemma.
// Returns "" when both are blank.
func DeriveLetter(lemma, override string) string {
	src := strings.TrimSpace(override)
	if src == "" {
		src = strings.TrimSpace(lemma)
	}
	if src == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(src)
	return strings.ToLower(string(r))
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
