package persistence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/persistence"
)

func TestKind_Collections(t *testing.T) {
	assert.Equal(t, []string{"exercises"}, persistence.KindExerciseAdded.Collections())
	assert.Equal(t, []string{"exercises"}, persistence.KindExerciseImageUpdated.Collections())
	assert.Equal(t, []string{"logs"}, persistence.KindLogAdded.Collections())
	assert.Equal(t, []string{"logs"}, persistence.KindLogDeleted.Collections())
	assert.Equal(t, []string{"current_workout", "workout_done_by_date"}, persistence.KindUserStateChanged.Collections())
	// cascade touches everything
	assert.ElementsMatch(t, persistence.Collections, persistence.KindExerciseDeleted.Collections())
	assert.Nil(t, persistence.Kind("unknown").Collections())
}

func TestCollectionValue(t *testing.T) {
	s := gym.Snapshot{
		Exercises:  []gym.Exercise{{ID: "e1"}},
		Logs:       []gym.LogEntry{{ID: "l1"}},
		Plan:       []string{"e1"},
		Completion: map[string][]string{"2024-01-01": {"e1"}},
	}

	assert.Equal(t, s.Exercises, persistence.CollectionValue(s, persistence.CollectionExercises))
	assert.Equal(t, s.Logs, persistence.CollectionValue(s, persistence.CollectionLogs))
	assert.Equal(t, s.Plan, persistence.CollectionValue(s, persistence.CollectionPlan))
	assert.Equal(t, s.Completion, persistence.CollectionValue(s, persistence.CollectionCompletion))
	assert.Nil(t, persistence.CollectionValue(s, "nope"))
}
