package store

import (
	"fmt"
	"slices"

	"github.com/2beens/gymlog/internal/gym"
)

// Plan and completion changes are saved together by a debounced sync.
// A failed sync is reported but not rolled back.

// ToggleWorkoutMembership adds the exercise to the plan, or removes it if
// already present. Removal leaves completion marks untouched.
func (s *Store) ToggleWorkoutMembership(exerciseID string) (*Op, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	if i := slices.Index(s.state.Plan, exerciseID); i >= 0 {
		s.state.Plan = slices.Delete(slices.Clone(s.state.Plan), i, i+1)
	} else {
		if s.state.ExerciseIndex(exerciseID) < 0 {
			s.mu.Unlock()
			return nil, unknownExercise(exerciseID)
		}
		s.state.Plan = append(slices.Clone(s.state.Plan), exerciseID)
	}
	s.mu.Unlock()

	return s.userStateChanged("toggle_workout", exerciseID), nil
}

// AddManyToWorkout adds every given exercise to the plan, keeping ids that
// are already there. Nothing is added if any id is unknown.
func (s *Store) AddManyToWorkout(exerciseIDs []string) (*Op, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	for _, id := range exerciseIDs {
		if s.state.ExerciseIndex(id) < 0 {
			s.mu.Unlock()
			return nil, unknownExercise(id)
		}
	}
	plan := slices.Clone(s.state.Plan)
	for _, id := range exerciseIDs {
		if !slices.Contains(plan, id) {
			plan = append(plan, id)
		}
	}
	changed := len(plan) != len(s.state.Plan)
	s.state.Plan = plan
	s.mu.Unlock()

	if !changed {
		return CompletedOp("", nil), nil
	}
	return s.userStateChanged("add_many_to_workout", ""), nil
}

// RemoveFromWorkout removes the exercise from the plan and clears its
// completion mark for today, so re-adding it later the same day starts
// fresh.
func (s *Store) RemoveFromWorkout(exerciseID string) (*Op, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	changed := false
	if i := slices.Index(s.state.Plan, exerciseID); i >= 0 {
		s.state.Plan = slices.Delete(slices.Clone(s.state.Plan), i, i+1)
		changed = true
	}
	today := s.today()
	if ids := s.state.Completion[today]; slices.Contains(ids, exerciseID) {
		kept := slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == exerciseID })
		setCompletionIDs(&s.state, today, kept)
		changed = true
	}
	s.mu.Unlock()

	if !changed {
		return CompletedOp(exerciseID, nil), nil
	}
	return s.userStateChanged("remove_from_workout", exerciseID), nil
}

// ToggleCompletion flips the done mark of the exercise for date, today when
// date is empty. A date left without marks is pruned.
func (s *Store) ToggleCompletion(exerciseID, date string) (*Op, error) {
	if date != "" && !gym.IsValidDate(date) {
		return nil, fmt.Errorf("%w: invalid date [%s]", gym.ErrValidation, date)
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	if date == "" {
		date = s.today()
	}
	ids := slices.Clone(s.state.Completion[date])
	if i := slices.Index(ids, exerciseID); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	} else {
		if s.state.ExerciseIndex(exerciseID) < 0 {
			s.mu.Unlock()
			return nil, unknownExercise(exerciseID)
		}
		ids = append(ids, exerciseID)
	}
	setCompletionIDs(&s.state, date, ids)
	s.mu.Unlock()

	return s.userStateChanged("toggle_completion", exerciseID), nil
}

// ClearCompletionForDate removes every done mark of date, today when date
// is empty.
func (s *Store) ClearCompletionForDate(date string) (*Op, error) {
	if date != "" && !gym.IsValidDate(date) {
		return nil, fmt.Errorf("%w: invalid date [%s]", gym.ErrValidation, date)
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	if date == "" {
		date = s.today()
	}
	_, present := s.state.Completion[date]
	if present {
		setCompletionIDs(&s.state, date, nil)
	}
	s.mu.Unlock()

	if !present {
		return CompletedOp("", nil), nil
	}
	return s.userStateChanged("clear_completion", ""), nil
}

func (s *Store) userStateChanged(opName, entityID string) *Op {
	s.countMutation(opName)
	op := newOp(entityID, 1)
	s.scheduleUserStateSync(op)
	return op
}

func unknownExercise(id string) error {
	return fmt.Errorf("%w: %w: exercise [%s]", gym.ErrValidation, gym.ErrNotFound, id)
}
