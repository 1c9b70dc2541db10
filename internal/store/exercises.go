package store

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/assets"
	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/persistence"
)

// AddExercise appends a new exercise to the catalog. A local image reference
// is uploaded once the exercise is saved, and then replaced by its URL.
func (s *Store) AddExercise(name, category, image string) (*Op, error) {
	name = strings.TrimSpace(name)
	if err := gym.ValidateExercise(name, category); err != nil {
		return nil, err
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	exercise := gym.Exercise{
		ID:        s.newID(),
		Name:      name,
		Category:  category,
		Image:     strings.TrimSpace(image),
		CreatedAt: s.now().Unix(),
	}
	s.state.Exercises = append(s.state.Exercises, exercise)
	s.mu.Unlock()

	s.countMutation("add_exercise")
	op := newOp(exercise.ID, 1)
	s.submit(s.addExerciseTask(exercise, op))

	return op, nil
}

func (s *Store) addExerciseTask(exercise gym.Exercise, op *Op) *task {
	t := &task{
		opName:   "add_exercise",
		kind:     persistence.KindExerciseAdded,
		exercise: &exercise,
		entityID: exercise.ID,
		ops:      []*Op{op},
		rollback: func(state *gym.Snapshot) bool {
			removed, ok := removeExerciseCascade(state, exercise.ID)
			return ok && removed.touchedUserState()
		},
	}
	if s.uploader != nil && assets.IsLocalReference(exercise.Image) {
		t.onSaved = func() {
			s.startUpload(exercise.ID, exercise.Image)
		}
	}
	return t
}

// DeleteExercise removes the exercise with its logs, plan entry and
// completion marks. Unknown ids are a no-op.
func (s *Store) DeleteExercise(id string) (*Op, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	removed, ok := removeExerciseCascade(&s.state, id)
	s.mu.Unlock()

	if !ok {
		return CompletedOp(id, nil), nil
	}

	s.countMutation("delete_exercise")
	parts := 1
	if removed.touchedUserState() {
		parts++
	}
	op := newOp(id, parts)

	s.submit(&task{
		opName:   "delete_exercise",
		kind:     persistence.KindExerciseDeleted,
		entityID: id,
		ops:      []*Op{op},
		rollback: func(state *gym.Snapshot) bool {
			restoreExercise(state, removed)
			return removed.touchedUserState()
		},
	})
	if removed.touchedUserState() {
		s.scheduleUserStateSync(op)
	}

	return op, nil
}

// UpdateExerciseImage sets or, with an empty image, clears the exercise
// image reference.
func (s *Store) UpdateExerciseImage(id, image string) (*Op, error) {
	return s.updateExerciseImage(id, strings.TrimSpace(image), nil)
}

// updateExerciseImage applies the change only if onlyIf (when set) accepts
// the current image.
func (s *Store) updateExerciseImage(id, image string, onlyIf func(current string) bool) (*Op, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	i := s.state.ExerciseIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, unknownExercise(id)
	}
	prev := s.state.Exercises[i].Image
	if onlyIf != nil && !onlyIf(prev) {
		s.mu.Unlock()
		return CompletedOp(id, nil), nil
	}
	s.state.Exercises[i].Image = image
	updated := s.state.Exercises[i]
	s.mu.Unlock()

	s.countMutation("update_exercise_image")
	op := newOp(id, 1)
	t := &task{
		opName:   "update_exercise_image",
		kind:     persistence.KindExerciseImageUpdated,
		exercise: &updated,
		entityID: id,
		ops:      []*Op{op},
		rollback: func(state *gym.Snapshot) bool {
			j := state.ExerciseIndex(id)
			if j >= 0 && state.Exercises[j].Image == image {
				state.Exercises[j].Image = prev
			}
			return false
		},
	}
	if s.uploader != nil && assets.IsLocalReference(image) {
		t.onSaved = func() {
			s.startUpload(id, image)
		}
	}
	s.submit(t)

	return op, nil
}

// SeedDemoData fills an empty catalog with one sample exercise per category.
// It does nothing when exercises already exist.
func (s *Store) SeedDemoData() (*Op, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	if len(s.state.Exercises) > 0 {
		s.mu.Unlock()
		return CompletedOp("", nil), nil
	}
	demo := gym.DemoExercises(s.now().Unix())
	for i := range demo {
		demo[i].ID = s.newID()
	}
	s.state.Exercises = append(s.state.Exercises, demo...)
	s.mu.Unlock()

	s.countMutation("seed_demo_data")
	op := newOp("", len(demo))
	for _, exercise := range demo {
		s.submit(s.addExerciseTask(exercise, op))
	}

	return op, nil
}

// startUpload uploads a local image in the background and swaps the
// reference for the public URL, unless the image changed meanwhile.
func (s *Store) startUpload(exerciseID, ref string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		log.Warnf("store: closed, skipping image upload for exercise [%s]", exerciseID)
		return
	}
	s.uploadsWG.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.uploadsWG.Done()

		url, err := assets.UploadLocalFile(s.uploadsCtx, s.uploader, s.stagingDir, ref)
		if err != nil {
			s.metricsManager.CounterAssetUploads.WithLabelValues("error").Inc()
			log.Errorf("store: upload image for exercise [%s]: %s", exerciseID, err)
			s.notify(SyncFailure{
				Op:       "upload_image",
				EntityID: exerciseID,
				Err:      fmt.Errorf("%w: upload image: %w", gym.ErrPersistence, err),
			})
			return
		}
		s.metricsManager.CounterAssetUploads.WithLabelValues("ok").Inc()

		if _, err := s.updateExerciseImage(exerciseID, url, func(current string) bool {
			return current == ref
		}); err != nil {
			log.Warnf("store: set uploaded image for exercise [%s]: %s", exerciseID, err)
		}
	}()
}
