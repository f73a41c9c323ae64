package analytics

import (
	"sort"

	"github.com/cognicore/xword/pkg/xword/lexicon"
)

// Sampling configuration for the report.
const (
	// SampleThreshold is the minimum score of a sampled high-quality word.
	SampleThreshold = 75
	// SamplesPerLength caps the sample list for each word length.
	SamplesPerLength = 10
)

// Bucket is an inclusive score range.
type Bucket struct {
	Lo, Hi int
}

// DefaultBuckets splits [1, 100] into the report's histogram ranges.
var DefaultBuckets = []Bucket{
	{1, 10},
	{11, 25},
	{26, 50},
	{51, 75},
	{76, 100},
}

// Analyzer aggregates statistics over master dictionary entries.
type Analyzer struct {
	total    int
	byLength map[int]int
	buckets  []int
	samples  map[int][]lexicon.Entry
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		byLength: make(map[int]int),
		buckets:  make([]int, len(DefaultBuckets)),
		samples:  make(map[int][]lexicon.Entry),
	}
}

// Process consumes one entry.
func (a *Analyzer) Process(e lexicon.Entry) {
	a.total++
	n := len(e.Word)
	a.byLength[n]++
	for i, b := range DefaultBuckets {
		if e.Score >= b.Lo && e.Score <= b.Hi {
			a.buckets[i]++
			break
		}
	}
	if e.Score >= SampleThreshold {
		a.samples[n] = append(a.samples[n], e)
	}
}

// BucketCount is one histogram row.
type BucketCount struct {
	Bucket  Bucket
	Count   int
	Percent float64
}

// LengthCount is the number of words of one length.
type LengthCount struct {
	Length int
	Count  int
}

// Stats is a summary of the master dictionary.
type Stats struct {
	TotalWords int
	ByLength   []LengthCount // ascending length
	Buckets    []BucketCount
	// Samples holds up to SamplesPerLength high-scoring words per length,
	// best score first, ties in dictionary order.
	Samples map[int][]lexicon.Entry
}

// Snapshot returns the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	s := Stats{
		TotalWords: a.total,
		ByLength:   make([]LengthCount, 0, len(a.byLength)),
		Buckets:    make([]BucketCount, len(DefaultBuckets)),
		Samples:    make(map[int][]lexicon.Entry, len(a.samples)),
	}

	for n, c := range a.byLength {
		s.ByLength = append(s.ByLength, LengthCount{Length: n, Count: c})
	}
	sort.Slice(s.ByLength, func(i, j int) bool {
		return s.ByLength[i].Length < s.ByLength[j].Length
	})

	for i, b := range DefaultBuckets {
		bc := BucketCount{Bucket: b, Count: a.buckets[i]}
		if a.total > 0 {
			bc.Percent = 100 * float64(bc.Count) / float64(a.total)
		}
		s.Buckets[i] = bc
	}

	for n, entries := range a.samples {
		sorted := make([]lexicon.Entry, len(entries))
		copy(sorted, entries)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Score != sorted[j].Score {
				return sorted[i].Score > sorted[j].Score
			}
			return sorted[i].Word < sorted[j].Word
		})
		if len(sorted) > SamplesPerLength {
			sorted = sorted[:SamplesPerLength]
		}
		s.Samples[n] = sorted
	}

	return s
}

// Analyze summarizes a full entry list.
func Analyze(entries []lexicon.Entry) Stats {
	a := NewAnalyzer()
	for _, e := range entries {
		a.Process(e)
	}
	return a.Snapshot()
}
