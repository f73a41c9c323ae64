package ingest

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cognicore/xword/pkg/xword/lexicon"
)

// IsBlankOrComment reports whether a line carries no record: empty after
// trimming, or starting with '#'.
func IsBlankOrComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}

// ParseLine parses a "WORD;SCORE" record.
//
// The line is split at the last ';' so a word containing ';' stays whole.
// The score must be a base-10 integer in [1, 100] once surrounding spaces
// and commas are trimmed. The word is returned verbatim for the normalizer.
// Blank, comment and malformed lines return ok=false.
func ParseLine(line string) (word string, score int, ok bool) {
	line = strings.TrimSpace(line)
	if IsBlankOrComment(line) {
		return "", 0, false
	}

	idx := strings.LastIndexByte(line, ';')
	if idx < 0 {
		return "", 0, false
	}

	raw := strings.TrimFunc(line[idx+1:], func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	n, err := strconv.Atoi(raw)
	if err != nil || !lexicon.ValidScore(n) {
		return "", 0, false
	}
	return line[:idx], n, true
}

// ParseWord extracts the raw word from a line of an unscored source.
// Anything after the last ';' is ignored.
func ParseWord(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if IsBlankOrComment(line) {
		return "", false
	}
	if idx := strings.LastIndexByte(line, ';'); idx >= 0 {
		line = line[:idx]
	}
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	return line, true
}
