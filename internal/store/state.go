package store

import (
	"slices"

	"github.com/2beens/gymlog/internal/gym"
)

type indexedLog struct {
	index int
	log   gym.LogEntry
}

type completionMark struct {
	date  string
	index int
}

// removedExercise is everything a cascading exercise removal took out of the
// state, with positions, so it can be put back.
type removedExercise struct {
	exercise   gym.Exercise
	index      int
	logs       []indexedLog
	planIndex  int
	completion []completionMark
}

func (r removedExercise) touchedUserState() bool {
	return r.planIndex >= 0 || len(r.completion) > 0
}

// removeExerciseCascade removes the exercise, its logs, its plan entry and
// every completion mark, pruning dates left empty.
func removeExerciseCascade(state *gym.Snapshot, id string) (removedExercise, bool) {
	i := state.ExerciseIndex(id)
	if i < 0 {
		return removedExercise{}, false
	}

	removed := removedExercise{
		exercise:  state.Exercises[i],
		index:     i,
		planIndex: slices.Index(state.Plan, id),
	}
	state.Exercises = slices.Delete(state.Exercises, i, i+1)

	keptLogs := make([]gym.LogEntry, 0, len(state.Logs))
	for idx, l := range state.Logs {
		if l.ExerciseID == id {
			removed.logs = append(removed.logs, indexedLog{index: idx, log: l})
			continue
		}
		keptLogs = append(keptLogs, l)
	}
	state.Logs = keptLogs

	if removed.planIndex >= 0 {
		state.Plan = slices.Delete(state.Plan, removed.planIndex, removed.planIndex+1)
	}

	for date, ids := range state.Completion {
		idx := slices.Index(ids, id)
		if idx < 0 {
			continue
		}
		removed.completion = append(removed.completion, completionMark{date: date, index: idx})
		setCompletionIDs(state, date, slices.Delete(slices.Clone(ids), idx, idx+1))
	}

	return removed, true
}

// restoreExercise undoes removeExerciseCascade. Positions are clamped, and
// nothing is duplicated if parts were already put back.
func restoreExercise(state *gym.Snapshot, r removedExercise) {
	if state.ExerciseIndex(r.exercise.ID) < 0 {
		state.Exercises = slices.Insert(state.Exercises, min(r.index, len(state.Exercises)), r.exercise)
	}

	for _, il := range r.logs {
		if state.LogIndex(il.log.ID) >= 0 {
			continue
		}
		state.Logs = slices.Insert(state.Logs, min(il.index, len(state.Logs)), il.log)
	}

	if r.planIndex >= 0 && !slices.Contains(state.Plan, r.exercise.ID) {
		state.Plan = slices.Insert(state.Plan, min(r.planIndex, len(state.Plan)), r.exercise.ID)
	}

	for _, mark := range r.completion {
		ids := slices.Clone(state.Completion[mark.date])
		if slices.Contains(ids, r.exercise.ID) {
			continue
		}
		ids = slices.Insert(ids, min(mark.index, len(ids)), r.exercise.ID)
		setCompletionIDs(state, mark.date, ids)
	}
}

// setCompletionIDs stores ids for date, deleting the date when ids is empty.
func setCompletionIDs(state *gym.Snapshot, date string, ids []string) {
	if len(ids) == 0 {
		delete(state.Completion, date)
		return
	}
	if state.Completion == nil {
		state.Completion = map[string][]string{}
	}
	state.Completion[date] = ids
}

// sanitize drops references that do not resolve: plan and completion ids
// without an exercise, duplicate plan ids, empty completion dates and logs
// of unknown exercises. It returns the number of dropped references.
func sanitize(state *gym.Snapshot) int {
	known := make(map[string]bool, len(state.Exercises))
	for _, e := range state.Exercises {
		known[e.ID] = true
	}

	dropped := 0

	plan := make([]string, 0, len(state.Plan))
	for _, id := range state.Plan {
		if !known[id] || slices.Contains(plan, id) {
			dropped++
			continue
		}
		plan = append(plan, id)
	}
	state.Plan = plan

	logs := make([]gym.LogEntry, 0, len(state.Logs))
	for _, l := range state.Logs {
		if !known[l.ExerciseID] {
			dropped++
			continue
		}
		logs = append(logs, l)
	}
	state.Logs = logs

	completion := make(map[string][]string, len(state.Completion))
	for date, ids := range state.Completion {
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if !known[id] || slices.Contains(kept, id) {
				dropped++
				continue
			}
			kept = append(kept, id)
		}
		if len(kept) > 0 {
			completion[date] = kept
		}
	}
	state.Completion = completion

	return dropped
}
