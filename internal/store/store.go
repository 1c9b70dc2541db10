// Package store holds the authoritative in-memory gym state. Mutations are
// applied synchronously and saved in the background; a failed save reverts
// its own mutation and is reported to the registered failure handlers.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/assets"
	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/persistence"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

const (
	DefaultSyncDebounce   = 800 * time.Millisecond
	DefaultPersistTimeout = 30 * time.Second
)

var (
	// ErrSyncCancelled resolves ops whose debounced save was dropped by Close.
	ErrSyncCancelled = errors.New("sync cancelled")
	ErrStoreClosed   = errors.New("store closed")
)

// SyncFailure describes a background save that did not go through.
type SyncFailure struct {
	Op         string
	EntityID   string
	Err        error
	RolledBack bool
}

type Option func(s *Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the timezone used for log and completion dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithFailureHandler(handler func(SyncFailure)) Option {
	return func(s *Store) { s.failureHandlers = append(s.failureHandlers, handler) }
}

// WithUploader enables uploading local image references after an exercise
// is saved. Only files under the staging dir (see WithStagingDir) are read.
func WithUploader(uploader assets.Uploader) Option {
	return func(s *Store) { s.uploader = uploader }
}

// WithStagingDir sets the directory local image references must resolve
// into. Without it every local reference fails to upload.
func WithStagingDir(dir string) Option {
	return func(s *Store) { s.stagingDir = dir }
}

func WithMetrics(metricsManager *metrics.Manager) Option {
	return func(s *Store) { s.metricsManager = metricsManager }
}

func WithSyncDebounce(delay time.Duration) Option {
	return func(s *Store) { s.syncDebounce = delay }
}

func WithPersistTimeout(timeout time.Duration) Option {
	return func(s *Store) { s.persistTimeout = timeout }
}

type Store struct {
	adapter         persistence.Adapter
	uploader        assets.Uploader
	stagingDir      string
	metricsManager  *metrics.Manager
	failureHandlers []func(SyncFailure)
	now             func() time.Time
	loc             *time.Location
	newID           func() string
	syncDebounce    time.Duration
	persistTimeout  time.Duration

	mu      sync.Mutex
	state   gym.Snapshot
	loading bool
	closed  bool

	queue       *taskQueue
	userSync    *debouncer
	workerDone  chan struct{}
	uploadsWG   sync.WaitGroup
	uploadsCtx  context.Context
	stopUploads context.CancelFunc
	closeOnce   sync.Once
}

// New creates an empty store in loading state and starts its save worker.
// Call Hydrate to load persisted data and Close to release the worker.
func New(adapter persistence.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter:        adapter,
		now:            time.Now,
		loc:            time.Local,
		newID:          uuid.NewString,
		syncDebounce:   DefaultSyncDebounce,
		persistTimeout: DefaultPersistTimeout,
		state:          gym.EmptySnapshot(),
		loading:        true,
		queue:          newTaskQueue(),
		workerDone:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metricsManager == nil {
		s.metricsManager = metrics.NewManager("gymlog", "store", prometheus.NewRegistry())
	}

	s.uploadsCtx, s.stopUploads = context.WithCancel(context.Background())
	s.userSync = newDebouncer(s.syncDebounce, s.enqueueUserStateSync)

	go s.worker()

	return s
}

// Hydrate replaces the in-memory state with what the adapter loads and
// clears the loading flag. Dangling references in the loaded data are
// dropped.
func (s *Store) Hydrate(ctx context.Context) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.hydrate")
	defer span.End()

	loaded := s.adapter.LoadAll(ctx)
	dropped := sanitize(&loaded)
	if dropped > 0 {
		log.Warnf("store: dropped %d dangling references from loaded state", dropped)
	}

	span.SetAttributes(
		attribute.Int("exercises", len(loaded.Exercises)),
		attribute.Int("logs", len(loaded.Logs)),
	)

	s.mu.Lock()
	s.state = loaded
	s.loading = false
	s.mu.Unlock()

	log.Infof("store: hydrated with %d exercises, %d logs", len(loaded.Exercises), len(loaded.Logs))
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Close drops the pending debounced save without running it, cancels
// running uploads and waits for queued saves to finish. Mutations after
// Close fail with ErrStoreClosed.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		cancelled := s.userSync.stop()
		for _, op := range cancelled {
			op.resolve(ErrSyncCancelled)
		}
		s.metricsManager.GaugePendingOps.Sub(float64(len(cancelled)))

		s.stopUploads()
		s.uploadsWG.Wait()

		s.queue.close()
		<-s.workerDone
		log.Debugln("store: closed")
	})
}

func (s *Store) today() string {
	return gym.DateOf(s.now(), s.loc)
}

// begin locks the store for a mutation. The caller must call s.mu.Unlock.
func (s *Store) begin() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	return nil
}

func (s *Store) countMutation(opName string) {
	s.metricsManager.CounterMutations.WithLabelValues(opName).Inc()
}

// submit queues a save. Must not be called with s.mu held.
func (s *Store) submit(t *task) {
	s.metricsManager.GaugePendingOps.Add(float64(len(t.ops)))
	if !s.queue.push(t) {
		s.finish(t, ErrStoreClosed)
	}
}

// scheduleUserStateSync queues op (may be nil) for the next debounced save
// of plan and completion.
func (s *Store) scheduleUserStateSync(op *Op) {
	if op != nil {
		s.metricsManager.GaugePendingOps.Inc()
	}
	if !s.userSync.schedule(op) && op != nil {
		s.metricsManager.GaugePendingOps.Dec()
		op.resolve(ErrSyncCancelled)
	}
}

func (s *Store) enqueueUserStateSync(ops []*Op) {
	s.metricsManager.GaugePendingOps.Sub(float64(len(ops)))
	s.submit(&task{
		opName: "sync_user_state",
		kind:   persistence.KindUserStateChanged,
		ops:    ops,
	})
}

func (s *Store) worker() {
	defer close(s.workerDone)
	for {
		t, ok := s.queue.pop()
		if !ok {
			return
		}
		s.run(t)
	}
}

func (s *Store) run(t *task) {
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()

	ctx, span := tracing.GlobalTracer.Start(ctx, "store.persist")
	span.SetAttributes(
		attribute.String("op", t.opName),
		attribute.String("kind", string(t.kind)),
	)

	// snapshot based adapters always get the latest state
	s.mu.Lock()
	snapshot := s.state.Clone()
	s.mu.Unlock()

	start := time.Now()
	err := s.adapter.Persist(ctx, persistence.Mutation{
		Kind:     t.kind,
		Exercise: t.exercise,
		Log:      t.log,
		EntityID: t.entityID,
		Snapshot: snapshot,
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metricsManager.HistogramPersistDuration.WithLabelValues(string(t.kind), status).Observe(time.Since(start).Seconds())
	tracing.EndSpanWithErrCheck(span, err)

	if err != nil {
		s.fail(t, err)
		return
	}

	s.finish(t, nil)
	if t.onSaved != nil {
		t.onSaved()
	}
}

func (s *Store) fail(t *task, err error) {
	err = fmt.Errorf("%w: %s: %w", gym.ErrPersistence, t.opName, err)

	rolledBack := false
	if t.rollback != nil {
		s.mu.Lock()
		userStateChanged := t.rollback(&s.state)
		s.mu.Unlock()

		rolledBack = true
		s.metricsManager.CounterRollbacks.WithLabelValues(t.opName).Inc()
		if userStateChanged {
			s.scheduleUserStateSync(nil)
		}
	}

	log.Errorf("store: %s [%s] failed (rolled back: %t): %s", t.opName, t.entityID, rolledBack, err)
	s.finish(t, err)
	s.notify(SyncFailure{
		Op:         t.opName,
		EntityID:   t.entityID,
		Err:        err,
		RolledBack: rolledBack,
	})
}

func (s *Store) finish(t *task, err error) {
	for _, op := range t.ops {
		op.resolve(err)
	}
	s.metricsManager.GaugePendingOps.Sub(float64(len(t.ops)))
}

func (s *Store) notify(failure SyncFailure) {
	s.metricsManager.CounterSyncFailures.WithLabelValues(failure.Op).Inc()
	for _, handler := range s.failureHandlers {
		handler(failure)
	}
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() gym.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Exercises() []gym.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Exercises)
}

func (s *Store) Exercise(id string) (gym.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.ExerciseIndex(id)
	if i < 0 {
		return gym.Exercise{}, false
	}
	return s.state.Exercises[i], true
}

func (s *Store) Logs() []gym.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]gym.LogEntry, 0, len(s.state.Logs))
	for _, l := range s.state.Logs {
		logs = append(logs, l.Clone())
	}
	return logs
}

func (s *Store) Plan() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Plan)
}

func (s *Store) Completion() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gym.CloneCompletion(s.state.Completion)
}
