// Package local persists the whole client state as JSON snapshots of each
// collection in a key-value store.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/persistence"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
)

var _ persistence.Adapter = (*Adapter)(nil)

var ErrKeyNotFound = errors.New("key not found")

// KV is a flat, string keyed byte store. Get returns ErrKeyNotFound for
// missing keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Adapter struct {
	kv             KV
	keyPrefix      string
	metricsManager *metrics.Manager
}

func NewAdapter(kv KV, keyPrefix string, metricsManager *metrics.Manager) *Adapter {
	return &Adapter{
		kv:             kv,
		keyPrefix:      keyPrefix,
		metricsManager: metricsManager,
	}
}

func (a *Adapter) key(collection string) string {
	return a.keyPrefix + collection
}

func (a *Adapter) LoadAll(ctx context.Context) gym.Snapshot {
	ctx, span := tracing.GlobalTracer.Start(ctx, "local.loadAll")
	defer span.End()

	snapshot := gym.EmptySnapshot()
	if !a.loadCollection(ctx, persistence.CollectionExercises, &snapshot.Exercises) || snapshot.Exercises == nil {
		snapshot.Exercises = []gym.Exercise{}
	}
	if !a.loadCollection(ctx, persistence.CollectionLogs, &snapshot.Logs) || snapshot.Logs == nil {
		snapshot.Logs = []gym.LogEntry{}
	}
	if !a.loadCollection(ctx, persistence.CollectionPlan, &snapshot.Plan) || snapshot.Plan == nil {
		snapshot.Plan = []string{}
	}
	if !a.loadCollection(ctx, persistence.CollectionCompletion, &snapshot.Completion) || snapshot.Completion == nil {
		snapshot.Completion = map[string][]string{}
	}

	span.SetAttributes(
		attribute.Int("exercises", len(snapshot.Exercises)),
		attribute.Int("logs", len(snapshot.Logs)),
	)

	return snapshot
}

// loadCollection decodes a stored collection into dest. It reports false
// when the value is missing or unreadable, in which case dest must be reset.
func (a *Adapter) loadCollection(ctx context.Context, collection string, dest any) bool {
	raw, err := a.kv.Get(ctx, a.key(collection))
	if errors.Is(err, ErrKeyNotFound) {
		return false
	}
	if err != nil {
		log.Warnf("local: load [%s]: %s", collection, err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warnf("local: decode [%s]: %s", collection, err)
		return false
	}

	return true
}

// Persist writes every collection the mutation touched. Write failures are
// swallowed by SaveCollection, so it only fails on a cancelled context.
func (a *Adapter) Persist(ctx context.Context, m persistence.Mutation) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "local.persist")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(m.Kind)))

	for _, collection := range m.Kind.Collections() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("persist %s: %w", m.Kind, err)
		}
		a.SaveCollection(ctx, collection, persistence.CollectionValue(m.Snapshot, collection))
	}

	return nil
}

// SaveCollection stores the whole collection under its key. Errors are
// logged and counted, never returned: in-memory state stays authoritative.
func (a *Adapter) SaveCollection(ctx context.Context, collection string, value any) {
	raw, err := json.Marshal(value)
	if err == nil {
		err = a.kv.Set(ctx, a.key(collection), raw)
	}
	if err != nil {
		log.Errorf("local: save [%s]: %s", collection, err)
		if a.metricsManager != nil {
			a.metricsManager.CounterLocalWriteFailures.WithLabelValues(collection).Inc()
		}
	}
}
