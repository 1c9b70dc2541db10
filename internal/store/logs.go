package store

import (
	"slices"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/gym/batch"
	"github.com/2beens/gymlog/internal/persistence"
)

// AddLog records a workout session for an existing exercise, dated today.
// The returned op carries the new log id.
func (s *Store) AddLog(exerciseID string, sets []gym.SetRecord) (*Op, error) {
	if err := gym.ValidateSets(sets); err != nil {
		return nil, err
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	if s.state.ExerciseIndex(exerciseID) < 0 {
		s.mu.Unlock()
		return nil, unknownExercise(exerciseID)
	}
	entry := gym.LogEntry{
		ID:         s.newID(),
		ExerciseID: exerciseID,
		Sets:       slices.Clone(sets),
		Date:       s.today(),
		CreatedAt:  s.now().Unix(),
	}
	s.state.Logs = append(s.state.Logs, entry)
	s.mu.Unlock()

	s.countMutation("add_log")
	op := newOp(entry.ID, 1)
	saved := entry.Clone()
	s.submit(&task{
		opName:   "add_log",
		kind:     persistence.KindLogAdded,
		log:      &saved,
		entityID: entry.ID,
		ops:      []*Op{op},
		rollback: func(state *gym.Snapshot) bool {
			if i := state.LogIndex(entry.ID); i >= 0 {
				state.Logs = slices.Delete(state.Logs, i, i+1)
			}
			return false
		},
	})

	return op, nil
}

// AddLogFromBatches expands batch rows into sets and records them as one
// log. Invalid rows are skipped; gym.ErrNoValidSets is returned when none
// is left.
func (s *Store) AddLogFromBatches(exerciseID string, rows []batch.Row) (*Op, error) {
	sets, err := batch.Expand(rows)
	if err != nil {
		return nil, err
	}
	return s.AddLog(exerciseID, sets)
}

// DeleteLog removes a log entry. Unknown ids are a no-op.
func (s *Store) DeleteLog(id string) (*Op, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	i := s.state.LogIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return CompletedOp(id, nil), nil
	}
	removed := s.state.Logs[i]
	s.state.Logs = slices.Delete(s.state.Logs, i, i+1)
	s.mu.Unlock()

	s.countMutation("delete_log")
	op := newOp(id, 1)
	s.submit(&task{
		opName:   "delete_log",
		kind:     persistence.KindLogDeleted,
		entityID: id,
		ops:      []*Op{op},
		rollback: func(state *gym.Snapshot) bool {
			if state.LogIndex(id) >= 0 || state.ExerciseIndex(removed.ExerciseID) < 0 {
				return false
			}
			state.Logs = slices.Insert(state.Logs, min(i, len(state.Logs)), removed)
			return false
		},
	})

	return op, nil
}
