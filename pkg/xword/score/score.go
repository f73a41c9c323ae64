// Package score synthesizes crossword fill-quality scores for word lists
// that arrive without any.
//
// A raw score starts at Weights.Base and accumulates additive adjustments
// from letter statistics, curated word lists and affixes. Raw scores are only
// comparable within one source: Normalize rescales a source's raw scores into
// the dictionary score range before they are merged.
package score

import (
	"math"
	"strings"

	"github.com/cognicore/xword/pkg/xword/lexicon"
)

// Weights are the scorer's tuning coefficients. Penalties are negative.
type Weights struct {
	Base          float64
	UnknownLetter float64 // letter-frequency contribution of a non A-Z byte
	Bigram        float64 // per common-bigram occurrence

	VowelBalanced float64 // 0.3 <= vowel ratio <= 0.5
	VowelSkewed   float64 // vowel ratio < 0.2 or > 0.6

	QWithoutU float64
	XOrZ      float64
	J         float64

	CommonShort float64
	CommonFour  float64
	CommonFive  float64
	NameFour    float64
	NameFive    float64
	ModernFour  float64
	ModernFive  float64

	SuffixShort float64 // -ED, -ER, -LY
	SuffixLong  float64 // -ING, -TION
	Prefix      float64 // UN-, RE-, IN-

	ObscureTwoLetter float64
}

// DefaultWeights returns the tuned coefficients.
func DefaultWeights() Weights {
	return Weights{
		Base:          100,
		UnknownLetter: 0.5,
		Bigram:        10,

		VowelBalanced: 20,
		VowelSkewed:   -30,

		QWithoutU: -50,
		XOrZ:      -20,
		J:         -15,

		CommonShort: 500,
		CommonFour:  400,
		CommonFive:  350,
		NameFour:    300,
		NameFive:    280,
		ModernFour:  250,
		ModernFive:  230,

		SuffixShort: 20,
		SuffixLong:  25,
		Prefix:      15,

		ObscureTwoLetter: -50,
	}
}

// Features is the per-feature breakdown of a raw score.
type Features struct {
	LetterFrequency float64
	Bigrams         float64
	VowelBalance    float64
	RareLetters     float64
	CommonWord      float64
	Affixes         float64
	Obscurity       float64
}

// Sum adds every feature contribution.
func (f Features) Sum() float64 {
	return f.LetterFrequency + f.Bigrams + f.VowelBalance + f.RareLetters +
		f.CommonWord + f.Affixes + f.Obscurity
}

// Scorer computes heuristic scores. The zero value is not usable; use New.
type Scorer struct {
	w Weights
}

// New creates a scorer with the given weights.
func New(w Weights) *Scorer {
	return &Scorer{w: w}
}

// Default creates a scorer with DefaultWeights.
func Default() *Scorer {
	return New(DefaultWeights())
}

// Raw returns the unnormalized score of an uppercase word, at least 1.
func (s *Scorer) Raw(word string) float64 {
	raw := s.w.Base + s.Features(word).Sum()
	if raw < 1 {
		return 1
	}
	return raw
}

// Features computes the breakdown for an uppercase word.
func (s *Scorer) Features(word string) Features {
	if word == "" {
		return Features{}
	}
	return Features{
		LetterFrequency: s.letterFrequency(word),
		Bigrams:         s.bigrams(word),
		VowelBalance:    s.vowelBalance(word),
		RareLetters:     s.rareLetters(word),
		CommonWord:      s.commonWord(word),
		Affixes:         s.affixes(word),
		Obscurity:       s.obscurity(word),
	}
}

func (s *Scorer) letterFrequency(word string) float64 {
	sum := 0.0
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c >= 'A' && c <= 'Z' {
			sum += letterFrequency[c-'A']
		} else {
			sum += s.w.UnknownLetter
		}
	}
	return sum
}

func (s *Scorer) bigrams(word string) float64 {
	bonus := 0.0
	for i := 0; i+1 < len(word); i++ {
		if commonBigrams.has(word[i : i+2]) {
			bonus += s.w.Bigram
		}
	}
	return bonus
}

func (s *Scorer) vowelBalance(word string) float64 {
	count := 0
	for i := 0; i < len(word); i++ {
		if strings.IndexByte(vowels, word[i]) >= 0 {
			count++
		}
	}
	ratio := float64(count) / float64(len(word))
	switch {
	case ratio >= 0.3 && ratio <= 0.5:
		return s.w.VowelBalanced
	case ratio < 0.2 || ratio > 0.6:
		return s.w.VowelSkewed
	}
	return 0
}

func (s *Scorer) rareLetters(word string) float64 {
	adj := 0.0
	if strings.Contains(word, "Q") && !strings.Contains(word, "U") {
		adj += s.w.QWithoutU
	}
	if strings.ContainsAny(word, "XZ") {
		adj += s.w.XOrZ
	}
	if strings.Contains(word, "J") {
		adj += s.w.J
	}
	return adj
}

func (s *Scorer) commonWord(word string) float64 {
	boost := 0.0
	switch len(word) {
	case 2, 3:
		if veryCommonShort.has(word) {
			boost += s.w.CommonShort
		}
	case 4:
		if veryCommonFour.has(word) {
			boost += s.w.CommonFour
		}
		if crosswordNamesFour.has(word) {
			boost += s.w.NameFour
		}
		if modernTermsFour.has(word) {
			boost += s.w.ModernFour
		}
	case 5:
		if veryCommonFive.has(word) {
			boost += s.w.CommonFive
		}
		if crosswordNamesFive.has(word) {
			boost += s.w.NameFive
		}
		if modernTermsFive.has(word) {
			boost += s.w.ModernFive
		}
	}
	return boost
}

func (s *Scorer) affixes(word string) float64 {
	boost := 0.0
	if hasAnySuffix(word, "ED", "ER", "LY") {
		boost += s.w.SuffixShort
	}
	if hasAnySuffix(word, "ING", "TION") {
		boost += s.w.SuffixLong
	}
	if hasAnyPrefix(word, "UN", "RE", "IN") {
		boost += s.w.Prefix
	}
	return boost
}

func (s *Scorer) obscurity(word string) float64 {
	if len(word) == 2 && !veryCommonShort.has(word) {
		return s.w.ObscureTwoLetter
	}
	return 0
}

func hasAnySuffix(word string, suffixes ...string) bool {
	for _, sfx := range suffixes {
		if strings.HasSuffix(word, sfx) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(word string, prefixes ...string) bool {
	for _, pfx := range prefixes {
		if strings.HasPrefix(word, pfx) {
			return true
		}
	}
	return false
}

// ScoreSource computes raw scores for every word of one source and rescales
// them with Normalize.
func (s *Scorer) ScoreSource(words []string) map[string]int {
	raw := make(map[string]float64, len(words))
	for _, w := range words {
		raw[w] = s.Raw(w)
	}
	return Normalize(raw)
}

// Normalize rescales raw scores with min-max normalization:
// round(100 * (s - min) / (max - min)). When every raw score is equal all
// words receive 100. Results are floored at lexicon.MinScore so the lowest
// word of a source stays a valid dictionary entry.
func Normalize(raw map[string]float64) map[string]int {
	out := make(map[string]int, len(raw))
	if len(raw) == 0 {
		return out
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range raw {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	for w, v := range raw {
		if hi == lo {
			out[w] = lexicon.MaxScore
			continue
		}
		scaled := int(math.Round(100 * (v - lo) / (hi - lo)))
		out[w] = lexicon.ClampScore(scaled)
	}
	return out
}
