// Package api exposes the gym store over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/assets"
	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/gym/batch"
	"github.com/2beens/gymlog/internal/gym/views"
	"github.com/2beens/gymlog/internal/store"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=api_test

type gymStore interface {
	IsLoading() bool
	Today() string
	Exercise(id string) (gym.Exercise, bool)
	Exercises() []gym.Exercise
	ExercisesInCategory(category string) []gym.Exercise
	CategorySections() []views.CategorySection
	ExerciseHistory(exerciseID string) []views.LogView
	Plan() []string
	Completion() map[string][]string
	PlanDisplay(date string) []views.PlanItem

	AddExercise(name, category, image string) (*store.Op, error)
	DeleteExercise(id string) (*store.Op, error)
	UpdateExerciseImage(id, image string) (*store.Op, error)
	SeedDemoData() (*store.Op, error)
	AddLogFromBatches(exerciseID string, rows []batch.Row) (*store.Op, error)
	DeleteLog(id string) (*store.Op, error)
	ToggleWorkoutMembership(exerciseID string) (*store.Op, error)
	AddManyToWorkout(exerciseIDs []string) (*store.Op, error)
	RemoveFromWorkout(exerciseID string) (*store.Op, error)
	ToggleCompletion(exerciseID, date string) (*store.Op, error)
	ClearCompletionForDate(date string) (*store.Op, error)
}

const (
	defaultWaitTimeout = 10 * time.Second
	maxUploadSize      = 10 << 20
	maxJSONBodySize    = 1 << 20
)

type Handler struct {
	store       gymStore
	uploader    assets.Uploader
	waitTimeout time.Duration
}

// NewHandler creates the API handler. uploader may be nil, in which case
// image uploads are rejected.
func NewHandler(store gymStore, uploader assets.Uploader) *Handler {
	return &Handler{
		store:       store,
		uploader:    uploader,
		waitTimeout: defaultWaitTimeout,
	}
}

func (handler *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", handler.HandleHealth).Methods("GET").Name("health")

	r.HandleFunc("/exercises", handler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises/sections", handler.HandleSections).Methods("GET", "OPTIONS").Name("exercise-sections")
	r.HandleFunc("/exercises", handler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", handler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	r.HandleFunc("/exercises/{id}/image", handler.HandleUpdateImage).Methods("PUT", "OPTIONS").Name("update-exercise-image")
	r.HandleFunc("/exercises/{id}/image/upload", handler.HandleUploadImage).Methods("POST", "OPTIONS").Name("upload-exercise-image")
	r.HandleFunc("/exercises/{id}/logs", handler.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("exercise-history")
	r.HandleFunc("/exercises/{id}/logs", handler.HandleAddLog).Methods("POST", "OPTIONS").Name("new-log")
	r.HandleFunc("/logs/{id}", handler.HandleDeleteLog).Methods("DELETE", "OPTIONS").Name("delete-log")

	r.HandleFunc("/workout", handler.HandleGetWorkout).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workout", handler.HandleAddToWorkout).Methods("POST", "OPTIONS").Name("add-to-workout")
	// registered before /workout/{id} so "done" is not taken for an id
	r.HandleFunc("/workout/done", handler.HandleClearCompletion).Methods("DELETE", "OPTIONS").Name("clear-completion")
	r.HandleFunc("/workout/{id}/toggle", handler.HandleToggleWorkout).Methods("POST", "OPTIONS").Name("toggle-workout")
	r.HandleFunc("/workout/{id}/done", handler.HandleToggleCompletion).Methods("POST", "OPTIONS").Name("toggle-completion")
	r.HandleFunc("/workout/{id}", handler.HandleRemoveFromWorkout).Methods("DELETE", "OPTIONS").Name("remove-from-workout")

	r.HandleFunc("/demo", handler.HandleSeedDemo).Methods("POST", "OPTIONS").Name("seed-demo")
}

type HealthResponse struct {
	Status  string `json:"status"`
	Loading bool   `json:"loading"`
	Today   string `json:"today"`
}

func (handler *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, HealthResponse{
		Status:  "ok",
		Loading: handler.store.IsLoading(),
		Today:   handler.store.Today(),
	}, http.StatusOK)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeStoreError maps a synchronous store error to a status code.
func writeStoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gym.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, gym.ErrValidation), errors.Is(err, gym.ErrNoValidSets):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrStoreClosed):
		status = http.StatusServiceUnavailable
	default:
		log.Errorf("api: unexpected store error: %s", err)
	}
	pkg.WriteJSON(w, ErrorResponse{Error: err.Error()}, status)
}

// writeOpResult writes payload once the operation is accepted. With
// ?wait=true it first waits for the background save and answers 502 if the
// save failed.
func (handler *Handler) writeOpResult(w http.ResponseWriter, r *http.Request, op *store.Op, payload func() any, status int) {
	if r.URL.Query().Get("wait") == "true" {
		ctx, cancel := context.WithTimeout(r.Context(), handler.waitTimeout)
		defer cancel()

		if err := op.Wait(ctx); err != nil {
			log.Warnf("api: %s %s: sync failed: %s", r.Method, r.URL.Path, err)
			pkg.WriteJSON(w, ErrorResponse{Error: err.Error()}, http.StatusBadGateway)
			return
		}
	}
	pkg.WriteJSON(w, payload(), status)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (handler *Handler) HandleSeedDemo(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.demo.seed")
	defer span.End()

	op, err := handler.store.SeedDemoData()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		return handler.store.CategorySections()
	}, http.StatusCreated)
}
