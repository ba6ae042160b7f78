package game

import "time"

// StatsID is the fixed identifier for the single process-wide stats
// record in the store.
const StatsID = "global-stats"

type StatsCounts struct {
	Created  int `json:"created"`
	Finished int `json:"finished"`
	Cloned   int `json:"cloned"`
}

// Stats is the cross-session record: lifecycle counters, a histogram of
// final scores, and the decaying global high score. It is read-modified-
// written through Store.UpdateStats so concurrent completions cannot lose
// an increment.
type Stats struct {
	Counts      StatsCounts `json:"counts"`
	ScoreCounts map[int]int `json:"scoreCounts"`

	MaxScore    int        `json:"maxScore"`
	MaxScoreSet time.Time  `json:"maxScoreSet"`
	// MaxScoreSetPrev remembers when the record previously stood, so a
	// finishing session can tell a fresh record from a matched one.
	MaxScoreSetPrev    *time.Time    `json:"maxScoreSetPrev,omitempty"`
	MaxScoreResetAfter time.Duration `json:"maxScoreResetAfter"`
}

// NewStats primes the histogram with a zero count so there is always a
// counted score, mirroring how the record is first created.
func NewStats(resetAfter time.Duration) *Stats {
	return &Stats{
		ScoreCounts:        map[int]int{0: 0},
		MaxScoreResetAfter: resetAfter,
	}
}

// recordCompletion folds one finished session into the stats.
//
// The high-score policy is deliberate "use it or lose it": a record that
// has stood unmatched longer than MaxScoreResetAfter is replaced by the
// next nonzero score even when that score is lower.
func (st *Stats) recordCompletion(now time.Time, score int) {
	st.Counts.Finished++

	if st.ScoreCounts == nil {
		st.ScoreCounts = map[int]int{0: 0}
	}
	st.ScoreCounts[score]++

	switch {
	case score > st.MaxScore:
		st.MaxScore = score
		st.MaxScoreSet = now
		st.MaxScoreSetPrev = nil
	case score == 0:
		// Never let a zero touch the record.
	case score == st.MaxScore:
		prev := st.MaxScoreSet
		st.MaxScoreSetPrev = &prev
		st.MaxScoreSet = now
	case now.Sub(st.MaxScoreSet) > st.MaxScoreResetAfter:
		st.MaxScore = score
		st.MaxScoreSet = now
		st.MaxScoreSetPrev = nil
	}
}

// achieved derives the just-finished session's standing: whether it holds
// the global record, and whether it set that record fresh rather than
// matching an existing one.
func (st *Stats) achieved(score int) (highest, first bool) {
	highest = score > 0 && score == st.MaxScore
	first = highest && st.MaxScoreSetPrev == nil
	return highest, first
}
