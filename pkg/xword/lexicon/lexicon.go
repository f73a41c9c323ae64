package lexicon

import (
	"sort"
	"strings"
	"unicode"
)

// Score and length bounds for the master dictionary.
const (
	MinScore = 1
	MaxScore = 100

	DefaultMinLen = 2
	DefaultMaxLen = 5
)

// Entry is one word of the master dictionary with its fill-quality score.
type Entry struct {
	Word  string
	Score int
}

// Normalizer canonicalizes raw source words into admissible dictionary words.
//
// Rules, applied in order:
//   - drop whitespace, '-', '\'', '’' and '.'
//   - uppercase ASCII letters (non-ASCII is left alone and fails the next rule)
//   - require A-Z only
//   - require MinLen <= len <= MaxLen
//
// Examples:
//   - Normalize("O'Hare") -> "OHARE", true
//   - Normalize("Big Mac") -> "BIGMAC" (rejected when MaxLen is 5)
type Normalizer struct {
	MinLen int
	MaxLen int
}

// NewNormalizer creates a normalizer for the given length window.
func NewNormalizer(minLen, maxLen int) Normalizer {
	return Normalizer{MinLen: minLen, MaxLen: maxLen}
}

// DefaultNormalizer accepts 2-5 letter words.
func DefaultNormalizer() Normalizer {
	return NewNormalizer(DefaultMinLen, DefaultMaxLen)
}

// Normalize returns the canonical form of raw and whether it is admissible.
func (n Normalizer) Normalize(raw string) (string, bool) {
	word := Collapse(raw)
	if !n.Admissible(word) {
		return "", false
	}
	return word, true
}

// Admissible reports whether word is already a canonical dictionary word.
func (n Normalizer) Admissible(word string) bool {
	if len(word) < n.MinLen || len(word) > n.MaxLen {
		return false
	}
	return IsUpperAlpha(word)
}

// Collapse removes separator characters and uppercases ASCII letters.
// The result is not checked for admissibility.
func Collapse(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if isSeparator(r) {
			continue
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '\'', '’', '.':
		return true
	}
	return unicode.IsSpace(r)
}

// IsUpperAlpha reports whether s is non-empty and made only of A-Z.
func IsUpperAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// ValidScore reports whether s lies in [MinScore, MaxScore].
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}

// ClampScore forces s into [MinScore, MaxScore].
func ClampScore(s int) int {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}

// Less orders words by length first, then lexicographically.
func Less(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// Sort orders entries in dictionary order (see Less).
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return Less(entries[i].Word, entries[j].Word)
	})
}

// FromMap converts a word->score map into dictionary-ordered entries.
func FromMap(m map[string]int) []Entry {
	entries := make([]Entry, 0, len(m))
	for w, s := range m {
		entries = append(entries, Entry{Word: w, Score: s})
	}
	Sort(entries)
	return entries
}
