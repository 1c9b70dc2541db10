// Package batch turns batch entry rows ("weight x reps x count") into
// individual set records and groups set lists back for display.
package batch

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/2beens/gymlog/internal/gym"
)

const (
	// MaxRowCount is the largest count a single row may carry.
	MaxRowCount = 100
	// MaxLogSets caps the sets one log entry may expand to.
	MaxLogSets = 1000
)

// Row is one line of raw user input. Fields are kept as text, the way they
// were typed.
type Row struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
	Count  string `json:"count"`
}

// Group is a run of identical sets, counted regardless of position.
type Group struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Count  int     `json:"count"`
}

// Parse validates a single row. Weight and reps are parsed as reals, count as
// an integer; all must be > 0, reps must be a whole number and count must not
// exceed MaxRowCount.
func (r Row) Parse() (set gym.SetRecord, count int, ok bool) {
	weight, err := strconv.ParseFloat(strings.TrimSpace(r.Weight), 64)
	if err != nil || !gym.IsPositiveNumber(weight) {
		return gym.SetRecord{}, 0, false
	}

	reps, err := strconv.ParseFloat(strings.TrimSpace(r.Reps), 64)
	if err != nil || !gym.IsPositiveNumber(reps) || reps != math.Trunc(reps) || reps > math.MaxInt32 {
		return gym.SetRecord{}, 0, false
	}

	count, err = strconv.Atoi(strings.TrimSpace(r.Count))
	if err != nil || count <= 0 || count > MaxRowCount {
		return gym.SetRecord{}, 0, false
	}

	return gym.SetRecord{Weight: weight, Reps: int(reps)}, count, true
}

// Expand converts rows into a flat list of sets, in row order, dropping
// invalid rows. It returns gym.ErrNoValidSets if nothing is left and
// gym.ErrValidation if the rows add up to more than MaxLogSets.
func Expand(rows []Row) ([]gym.SetRecord, error) {
	var sets []gym.SetRecord
	for _, row := range rows {
		set, count, ok := row.Parse()
		if !ok {
			continue
		}
		if len(sets)+count > MaxLogSets {
			return nil, fmt.Errorf("%w: log has more than %d sets", gym.ErrValidation, MaxLogSets)
		}
		for i := 0; i < count; i++ {
			sets = append(sets, set)
		}
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("expand %d rows: %w", len(rows), gym.ErrNoValidSets)
	}

	return sets, nil
}

// GroupSets counts identical (weight, reps) pairs. Output follows the order
// in which each pair first appears.
func GroupSets(sets []gym.SetRecord) []Group {
	type key struct {
		weight float64
		reps   int
	}

	groups := []Group{}
	index := map[key]int{}
	for _, s := range sets {
		k := key{weight: s.Weight, reps: s.Reps}
		if i, ok := index[k]; ok {
			groups[i].Count++
			continue
		}
		index[k] = len(groups)
		groups = append(groups, Group{Weight: s.Weight, Reps: s.Reps, Count: 1})
	}

	return groups
}

// NextRow returns a new input row prefilled with the last row's weight and
// reps and an empty count.
func NextRow(rows []Row) Row {
	if len(rows) == 0 {
		return Row{}
	}
	last := rows[len(rows)-1]
	return Row{Weight: last.Weight, Reps: last.Reps}
}

// RemoveLastRow drops the last row but always leaves at least one blank row.
func RemoveLastRow(rows []Row) []Row {
	if len(rows) <= 1 {
		return []Row{{}}
	}
	return append([]Row{}, rows[:len(rows)-1]...)
}
