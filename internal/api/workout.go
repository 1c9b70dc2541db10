package api

import (
	"net/http"
	"slices"

	"github.com/gorilla/mux"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/gym/views"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

type WorkoutResponse struct {
	Date  string           `json:"date"`
	Items []views.PlanItem `json:"items"`
}

type AddToWorkoutRequest struct {
	ExerciseIDs []string `json:"exerciseIds"`
}

type MembershipResponse struct {
	ExerciseID string `json:"exerciseId"`
	InWorkout  bool   `json:"inWorkout"`
}

type CompletionResponse struct {
	ExerciseID string `json:"exerciseId"`
	Date       string `json:"date"`
	Done       bool   `json:"done"`
}

// dateParam returns the date query param, today when absent.
func (handler *Handler) dateParam(r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return handler.store.Today(), true
	}
	return date, gym.IsValidDate(date)
}

func (handler *Handler) workoutResponse(date string) WorkoutResponse {
	return WorkoutResponse{Date: date, Items: handler.store.PlanDisplay(date)}
}

func (handler *Handler) HandleGetWorkout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.get")
	defer span.End()

	date, ok := handler.dateParam(r)
	if !ok {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}
	pkg.WriteJSON(w, handler.workoutResponse(date), http.StatusOK)
}

func (handler *Handler) HandleAddToWorkout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.add_many")
	defer span.End()

	var req AddToWorkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "add to workout failed", http.StatusBadRequest)
		return
	}

	op, err := handler.store.AddManyToWorkout(req.ExerciseIDs)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		return handler.workoutResponse(handler.store.Today())
	}, http.StatusOK)
}

func (handler *Handler) HandleToggleWorkout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.toggle")
	defer span.End()

	id := mux.Vars(r)["id"]
	op, err := handler.store.ToggleWorkoutMembership(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		return MembershipResponse{
			ExerciseID: id,
			InWorkout:  slices.Contains(handler.store.Plan(), id),
		}
	}, http.StatusOK)
}

func (handler *Handler) HandleRemoveFromWorkout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.remove")
	defer span.End()

	id := mux.Vars(r)["id"]
	op, err := handler.store.RemoveFromWorkout(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		return MembershipResponse{ExerciseID: id, InWorkout: false}
	}, http.StatusOK)
}

func (handler *Handler) HandleToggleCompletion(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.toggle_done")
	defer span.End()

	id := mux.Vars(r)["id"]
	date, ok := handler.dateParam(r)
	if !ok {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	op, err := handler.store.ToggleCompletion(id, date)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		return CompletionResponse{
			ExerciseID: id,
			Date:       date,
			Done:       gym.IsDone(handler.store.Completion(), date, id),
		}
	}, http.StatusOK)
}

func (handler *Handler) HandleClearCompletion(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.clear_done")
	defer span.End()

	date, ok := handler.dateParam(r)
	if !ok {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	op, err := handler.store.ClearCompletionForDate(date)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		return handler.workoutResponse(date)
	}, http.StatusOK)
}
