package remote

import (
	"cmp"
	"slices"

	"github.com/2beens/gymlog/internal/gym"
)

// logSetRow is one row of the logs LEFT JOIN sets query. Set columns are
// nil for a log without sets.
type logSetRow struct {
	LogID      string
	ExerciseID string
	Date       string
	CreatedAt  int64
	Weight     *float64
	Reps       *int
	SetIndex   *int
}

// assembleLogs folds joined rows into log entries. Entries keep the order in
// which they first appear; sets are ordered by set_index.
func assembleLogs(rows []logSetRow) []gym.LogEntry {
	type indexedSet struct {
		index int
		set   gym.SetRecord
	}

	logs := []gym.LogEntry{}
	sets := map[string][]indexedSet{}
	seen := map[string]bool{}
	for _, r := range rows {
		if !seen[r.LogID] {
			seen[r.LogID] = true
			logs = append(logs, gym.LogEntry{
				ID:         r.LogID,
				ExerciseID: r.ExerciseID,
				Date:       r.Date,
				CreatedAt:  r.CreatedAt,
			})
		}
		if r.SetIndex == nil || r.Weight == nil || r.Reps == nil {
			continue
		}
		sets[r.LogID] = append(sets[r.LogID], indexedSet{
			index: *r.SetIndex,
			set:   gym.SetRecord{Weight: *r.Weight, Reps: *r.Reps},
		})
	}

	for i := range logs {
		logSets := sets[logs[i].ID]
		slices.SortStableFunc(logSets, func(a, b indexedSet) int {
			return cmp.Compare(a.index, b.index)
		})
		logs[i].Sets = make([]gym.SetRecord, 0, len(logSets))
		for _, s := range logSets {
			logs[i].Sets = append(logs[i].Sets, s.set)
		}
	}

	return logs
}
