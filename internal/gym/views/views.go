// Package views holds read-side projections of the gym state. Nothing here
// mutates its input.
package views

import (
	"cmp"
	"slices"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/gym/batch"
)

type PlanItem struct {
	Exercise gym.Exercise `json:"exercise"`
	Done     bool         `json:"done"`
}

type CategorySection struct {
	Category  string         `json:"category"`
	Label     string         `json:"label"`
	Exercises []gym.Exercise `json:"exercises"`
}

type LogView struct {
	gym.LogEntry
	Grouped []batch.Group `json:"grouped"`
}

// PlanDisplayOrder is a stable partition of plan: ids not marked done on date
// first, then the done ones, each group keeping its plan order.
func PlanDisplayOrder(plan []string, completion map[string][]string, date string) []string {
	done := completion[date]
	notDoneIDs := make([]string, 0, len(plan))
	doneIDs := make([]string, 0, len(done))
	for _, id := range plan {
		if slices.Contains(done, id) {
			doneIDs = append(doneIDs, id)
		} else {
			notDoneIDs = append(notDoneIDs, id)
		}
	}
	return append(notDoneIDs, doneIDs...)
}

// PlanDisplay resolves the display order into exercises. Ids without a
// matching exercise are skipped.
func PlanDisplay(snapshot gym.Snapshot, date string) []PlanItem {
	byID := make(map[string]gym.Exercise, len(snapshot.Exercises))
	for _, e := range snapshot.Exercises {
		byID[e.ID] = e
	}

	items := []PlanItem{}
	for _, id := range PlanDisplayOrder(snapshot.Plan, snapshot.Completion, date) {
		e, ok := byID[id]
		if !ok {
			continue
		}
		items = append(items, PlanItem{
			Exercise: e,
			Done:     gym.IsDone(snapshot.Completion, date, id),
		})
	}
	return items
}

// ExercisesInCategory returns the category's exercises, most recently added
// first.
func ExercisesInCategory(exercises []gym.Exercise, category string) []gym.Exercise {
	out := []gym.Exercise{}
	for _, e := range exercises {
		if e.Category == category {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b gym.Exercise) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return out
}

// CategorySections groups exercises per category in display order. Empty
// categories are omitted.
func CategorySections(exercises []gym.Exercise) []CategorySection {
	sections := []CategorySection{}
	for _, c := range gym.Categories {
		inCategory := ExercisesInCategory(exercises, c)
		if len(inCategory) == 0 {
			continue
		}
		sections = append(sections, CategorySection{
			Category:  c,
			Label:     gym.CategoryLabel(c),
			Exercises: inCategory,
		})
	}
	return sections
}

// LogsForExercise returns the exercise history, newest first, with sets
// grouped for display.
func LogsForExercise(logs []gym.LogEntry, exerciseID string) []LogView {
	out := []LogView{}
	for _, l := range logs {
		if l.ExerciseID != exerciseID {
			continue
		}
		out = append(out, LogView{
			LogEntry: l.Clone(),
			Grouped:  batch.GroupSets(l.Sets),
		})
	}
	slices.SortStableFunc(out, func(a, b LogView) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return out
}
