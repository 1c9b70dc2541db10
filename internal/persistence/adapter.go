// Package persistence defines the contract between the store and its
// durable backends.
package persistence

import (
	"context"

	"github.com/2beens/gymlog/internal/gym"
)

//go:generate mockgen -source=$GOFILE -destination=../store/adapter_mocks_test.go -package=store_test

// Adapter persists store mutations. LoadAll never fails: on read errors the
// adapter logs a warning and returns empty defaults.
type Adapter interface {
	LoadAll(ctx context.Context) gym.Snapshot
	Persist(ctx context.Context, m Mutation) error
}

type Kind string

const (
	KindExerciseAdded        Kind = "exercise_added"
	KindExerciseDeleted      Kind = "exercise_deleted"
	KindExerciseImageUpdated Kind = "exercise_image_updated"
	KindLogAdded             Kind = "log_added"
	KindLogDeleted           Kind = "log_deleted"
	KindUserStateChanged     Kind = "user_state_changed"
)

// Collection names, as stored by snapshot based backends.
const (
	CollectionExercises  = "exercises"
	CollectionLogs       = "logs"
	CollectionPlan       = "current_workout"
	CollectionCompletion = "workout_done_by_date"
)

var Collections = []string{
	CollectionExercises,
	CollectionLogs,
	CollectionPlan,
	CollectionCompletion,
}

// Mutation is one logical operation. Row based adapters use the entity
// fields; snapshot based adapters write the touched collections of Snapshot.
type Mutation struct {
	Kind     Kind
	Exercise *gym.Exercise
	Log      *gym.LogEntry
	// EntityID is set for deletions.
	EntityID string
	// Snapshot is the full state right after the mutation was applied.
	Snapshot gym.Snapshot
}

// Collections returns the collections a mutation of this kind may change.
func (k Kind) Collections() []string {
	switch k {
	case KindExerciseAdded, KindExerciseImageUpdated:
		return []string{CollectionExercises}
	case KindExerciseDeleted:
		return Collections
	case KindLogAdded, KindLogDeleted:
		return []string{CollectionLogs}
	case KindUserStateChanged:
		return []string{CollectionPlan, CollectionCompletion}
	default:
		return nil
	}
}

// CollectionValue picks a single collection out of a snapshot.
func CollectionValue(s gym.Snapshot, collection string) any {
	switch collection {
	case CollectionExercises:
		return s.Exercises
	case CollectionLogs:
		return s.Logs
	case CollectionPlan:
		return s.Plan
	case CollectionCompletion:
		return s.Completion
	default:
		return nil
	}
}
