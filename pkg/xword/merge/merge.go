// Package merge reconciles per-source word scores into the master dictionary.
//
// The policy is "highest score wins": a word keeps the maximum score any
// source gave it. Because max is commutative the final map does not depend on
// source order; only the attribution counters do, so callers merge sources in
// registry order.
package merge

import (
	"github.com/cognicore/xword/pkg/xword/lexicon"
)

// Outcome classifies what happened to one incoming word.
type Outcome int

const (
	Inserted Outcome = iota // word was new to the master
	Upgraded                // incoming score replaced a lower one
	Kept                    // existing score was equal or higher
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Upgraded:
		return "upgraded"
	case Kept:
		return "kept"
	}
	return "unknown"
}

// Counters tallies merge outcomes for one source.
type Counters struct {
	NewWords       int
	UpgradedScores int
	KeptExisting   int
}

// Total returns the number of words the source contributed.
func (c Counters) Total() int {
	return c.NewWords + c.UpgradedScores + c.KeptExisting
}

func (c *Counters) record(o Outcome) {
	switch o {
	case Inserted:
		c.NewWords++
	case Upgraded:
		c.UpgradedScores++
	case Kept:
		c.KeptExisting++
	}
}

// Master is the merged word->score map. It is owned by a single goroutine.
type Master struct {
	scores map[string]int
}

// NewMaster creates an empty master dictionary.
func NewMaster() *Master {
	return &Master{scores: make(map[string]int)}
}

// Add merges one word and reports the outcome. Scores only ever increase.
func (m *Master) Add(word string, score int) Outcome {
	old, ok := m.scores[word]
	switch {
	case !ok:
		m.scores[word] = score
		return Inserted
	case score > old:
		m.scores[word] = score
		return Upgraded
	default:
		return Kept
	}
}

// Merge folds a whole source map into the master. Each word of a source map
// is unique, so the counters do not depend on map iteration order.
func (m *Master) Merge(scores map[string]int) Counters {
	var c Counters
	for w, s := range scores {
		c.record(m.Add(w, s))
	}
	return c
}

// Len returns the number of words in the master.
func (m *Master) Len() int {
	return len(m.scores)
}

// Score returns the current score of word.
func (m *Master) Score(word string) (int, bool) {
	s, ok := m.scores[word]
	return s, ok
}

// Entries returns the master in dictionary order.
func (m *Master) Entries() []lexicon.Entry {
	return lexicon.FromMap(m.scores)
}

// Fold records score for word in a per-source map, keeping the higher value
// when the word was already listed. It reports whether word was a duplicate.
func Fold(dst map[string]int, word string, score int) bool {
	old, dup := dst[word]
	if !dup || score > old {
		dst[word] = score
	}
	return dup
}
