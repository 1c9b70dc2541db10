// Package remote persists the client state in PostgreSQL, one row per
// entity, scoped by user id.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/persistence"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

var _ persistence.Adapter = (*Adapter)(nil)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrUnknownMutation  = errors.New("unknown mutation kind")
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Adapter struct {
	db     *pgxpool.Pool
	userID string
}

func NewAdapter(db *pgxpool.Pool, userID string) *Adapter {
	return &Adapter{
		db:     db,
		userID: userID,
	}
}

func (a *Adapter) LoadAll(ctx context.Context) gym.Snapshot {
	snapshot, err := a.loadAll(ctx)
	if err != nil {
		log.Warnf("remote: load all for user [%s]: %s", a.userID, err)
		return gym.EmptySnapshot()
	}
	return snapshot
}

func (a *Adapter) loadAll(ctx context.Context) (_ gym.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remote.loadAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot := gym.EmptySnapshot()
	if snapshot.Exercises, err = a.exercises(ctx); err != nil {
		return gym.Snapshot{}, fmt.Errorf("exercises: %w", err)
	}
	if snapshot.Logs, err = a.logs(ctx); err != nil {
		return gym.Snapshot{}, fmt.Errorf("logs: %w", err)
	}

	state, err := a.userState(ctx)
	if err != nil {
		return gym.Snapshot{}, fmt.Errorf("user state: %w", err)
	}
	snapshot.Plan = state.Plan
	snapshot.Completion = state.Completion

	span.SetAttributes(
		attribute.Int("exercises", len(snapshot.Exercises)),
		attribute.Int("logs", len(snapshot.Logs)),
	)

	return snapshot, nil
}

func (a *Adapter) exercises(ctx context.Context) ([]gym.Exercise, error) {
	query, args, err := psql.
		Select("id", "name", "category", "image_url", "created_at").
		From("exercises").
		Where(sq.Eq{"user_id": a.userID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []gym.Exercise{}
	for rows.Next() {
		var e gym.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Image, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}

	return exercises, rows.Err()
}

func (a *Adapter) logs(ctx context.Context) ([]gym.LogEntry, error) {
	query, args, err := psql.
		Select("l.id", "l.exercise_id", "l.date", "l.created_at", "s.weight", "s.reps", "s.set_index").
		From("logs l").
		LeftJoin("sets s ON s.log_id = l.id").
		Where(sq.Eq{"l.user_id": a.userID}).
		OrderBy("l.created_at", "l.id", "s.set_index").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var joined []logSetRow
	for rows.Next() {
		var r logSetRow
		if err := rows.Scan(&r.LogID, &r.ExerciseID, &r.Date, &r.CreatedAt, &r.Weight, &r.Reps, &r.SetIndex); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		joined = append(joined, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assembleLogs(joined), nil
}

func (a *Adapter) userState(ctx context.Context) (gym.UserState, error) {
	query, args, err := psql.
		Select("current_workout_ids", "workout_done_map").
		From("user_states").
		Where(sq.Eq{"user_id": a.userID}).
		ToSql()
	if err != nil {
		return gym.UserState{}, fmt.Errorf("build query: %w", err)
	}

	var planJson, completionJson []byte
	err = a.db.QueryRow(ctx, query, args...).Scan(&planJson, &completionJson)
	if errors.Is(err, pgx.ErrNoRows) {
		return gym.UserState{Plan: []string{}, Completion: map[string][]string{}}, nil
	}
	if err != nil {
		return gym.UserState{}, err
	}

	return decodeUserState(planJson, completionJson)
}

func decodeUserState(planJson, completionJson []byte) (gym.UserState, error) {
	state := gym.UserState{}
	if err := json.Unmarshal(planJson, &state.Plan); err != nil {
		return gym.UserState{}, fmt.Errorf("unmarshal plan: %w", err)
	}
	if err := json.Unmarshal(completionJson, &state.Completion); err != nil {
		return gym.UserState{}, fmt.Errorf("unmarshal completion: %w", err)
	}
	if state.Plan == nil {
		state.Plan = []string{}
	}
	if state.Completion == nil {
		state.Completion = map[string][]string{}
	}
	return state, nil
}

func (a *Adapter) Persist(ctx context.Context, m persistence.Mutation) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remote.persist")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("kind", string(m.Kind)))

	switch m.Kind {
	case persistence.KindExerciseAdded:
		return a.addExercise(ctx, m.Exercise)
	case persistence.KindExerciseDeleted:
		return a.deleteRow(ctx, "exercises", m.EntityID)
	case persistence.KindExerciseImageUpdated:
		return a.updateExerciseImage(ctx, m.Exercise)
	case persistence.KindLogAdded:
		return a.addLog(ctx, m.Log)
	case persistence.KindLogDeleted:
		return a.deleteRow(ctx, "logs", m.EntityID)
	case persistence.KindUserStateChanged:
		return a.saveUserState(ctx, m.Snapshot.UserState())
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMutation, m.Kind)
	}
}

func (a *Adapter) addExercise(ctx context.Context, e *gym.Exercise) error {
	if e == nil {
		return fmt.Errorf("add exercise: %w", gym.ErrValidation)
	}

	query, args, err := psql.
		Insert("exercises").
		Columns("id", "user_id", "name", "category", "image_url", "created_at").
		Values(e.ID, a.userID, e.Name, e.Category, e.Image, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := a.db.Exec(ctx, query, args...); err != nil {
		if pkg.IsUniqueViolationError(err) {
			log.Debugf("remote: exercise [%s] already stored", e.ID)
			return nil
		}
		return fmt.Errorf("insert exercise: %w", err)
	}

	return nil
}

func (a *Adapter) updateExerciseImage(ctx context.Context, e *gym.Exercise) error {
	if e == nil {
		return fmt.Errorf("update exercise image: %w", gym.ErrValidation)
	}

	query, args, err := psql.
		Update("exercises").
		Set("image_url", e.Image).
		Where(sq.Eq{"id": e.ID, "user_id": a.userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := a.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update exercise image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}

// deleteRow removes a row owned by the user. Dependent rows go with it via
// ON DELETE CASCADE. Deleting a missing row is not an error.
func (a *Adapter) deleteRow(ctx context.Context, table, id string) error {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"id": id, "user_id": a.userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := a.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		log.Debugf("remote: delete from %s, id [%s] not stored", table, id)
	}

	return nil
}

// addLog writes the log row and all of its set rows in one transaction.
func (a *Adapter) addLog(ctx context.Context, l *gym.LogEntry) (err error) {
	if l == nil {
		return fmt.Errorf("add log: %w", gym.ErrValidation)
	}

	logQuery, logArgs, err := psql.
		Insert("logs").
		Columns("id", "user_id", "exercise_id", "date", "created_at").
		Values(l.ID, a.userID, l.ExerciseID, l.Date, l.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build log query: %w", err)
	}
	setsQuery, setsArgs, err := insertSetsQuery(l.ID, l.Sets)
	if err != nil {
		return fmt.Errorf("build sets query: %w", err)
	}

	tx, err := a.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = multierr.Combine(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, logQuery, logArgs...); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return fmt.Errorf("insert log for exercise [%s]: %w: %w", l.ExerciseID, ErrExerciseNotFound, err)
		}
		return fmt.Errorf("insert log: %w", err)
	}
	if _, err = tx.Exec(ctx, setsQuery, setsArgs...); err != nil {
		return fmt.Errorf("insert sets: %w", err)
	}

	return nil
}

func insertSetsQuery(logID string, sets []gym.SetRecord) (string, []any, error) {
	if len(sets) == 0 {
		return "", nil, fmt.Errorf("log [%s]: %w", logID, gym.ErrNoValidSets)
	}

	insert := psql.Insert("sets").Columns("log_id", "set_index", "weight", "reps")
	for i, s := range sets {
		insert = insert.Values(logID, i, s.Weight, s.Reps)
	}
	return insert.ToSql()
}

func (a *Adapter) saveUserState(ctx context.Context, state gym.UserState) error {
	planJson, err := json.Marshal(state.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	completionJson, err := json.Marshal(state.Completion)
	if err != nil {
		return fmt.Errorf("marshal completion: %w", err)
	}

	query, args, err := psql.
		Insert("user_states").
		Columns("user_id", "current_workout_ids", "workout_done_map", "updated_at").
		Values(a.userID, planJson, completionJson, sq.Expr("now()")).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			current_workout_ids = EXCLUDED.current_workout_ids,
			workout_done_map = EXCLUDED.workout_done_map,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := a.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user state: %w", err)
	}

	return nil
}
