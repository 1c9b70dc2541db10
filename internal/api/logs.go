package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/gym/batch"
	"github.com/2beens/gymlog/internal/gym/views"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

// textField accepts both JSON strings and numbers, the way form inputs end
// up being sent.
type textField string

func (f *textField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = textField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = textField(n.String())
	return nil
}

type BatchRow struct {
	Weight textField `json:"weight"`
	Reps   textField `json:"reps"`
	Count  textField `json:"count"`
}

type AddLogRequest struct {
	Rows []BatchRow `json:"rows"`
}

func (req AddLogRequest) batchRows() []batch.Row {
	rows := make([]batch.Row, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, batch.Row{
			Weight: string(r.Weight),
			Reps:   string(r.Reps),
			Count:  string(r.Count),
		})
	}
	return rows
}

func (handler *Handler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.history")
	defer span.End()

	id := mux.Vars(r)["id"]
	if _, ok := handler.store.Exercise(id); !ok {
		http.Error(w, "error, exercise not found", http.StatusNotFound)
		return
	}
	pkg.WriteJSON(w, handler.store.ExerciseHistory(id), http.StatusOK)
}

func (handler *Handler) HandleAddLog(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.add")
	defer span.End()

	id := mux.Vars(r)["id"]
	if _, ok := handler.store.Exercise(id); !ok {
		http.Error(w, "error, exercise not found", http.StatusNotFound)
		return
	}

	var req AddLogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Tracef("add log, unmarshal json params: %s", err)
		http.Error(w, "add log failed", http.StatusBadRequest)
		return
	}

	op, err := handler.store.AddLogFromBatches(id, req.batchRows())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	handler.writeOpResult(w, r, op, func() any {
		for _, l := range handler.store.ExerciseHistory(id) {
			if l.ID == op.ID {
				return l
			}
		}
		return views.LogView{}
	}, http.StatusCreated)
}

func (handler *Handler) HandleDeleteLog(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	op, err := handler.store.DeleteLog(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		return DeletedResponse{DeletedID: id}
	}, http.StatusOK)
}
