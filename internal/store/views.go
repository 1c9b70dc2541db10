package store

import (
	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/gym/views"
)

// PlanDisplay returns the plan with items done on date (today when empty)
// moved last.
func (s *Store) PlanDisplay(date string) []views.PlanItem {
	if date == "" {
		date = s.today()
	}
	return views.PlanDisplay(s.Snapshot(), date)
}

func (s *Store) ExercisesInCategory(category string) []gym.Exercise {
	return views.ExercisesInCategory(s.Exercises(), category)
}

func (s *Store) CategorySections() []views.CategorySection {
	return views.CategorySections(s.Exercises())
}

// ExerciseHistory returns the logs of one exercise, newest first, with
// their sets grouped.
func (s *Store) ExerciseHistory(exerciseID string) []views.LogView {
	return views.LogsForExercise(s.Logs(), exerciseID)
}

// Today returns the current calendar date in the store timezone.
func (s *Store) Today() string {
	return s.today()
}
