package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/assets"
	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

// ExerciseResponse carries the exercise with the image to show, which
// falls back to a placeholder.
type ExerciseResponse struct {
	gym.Exercise
	DisplayImage string `json:"displayImage"`
}

func exerciseResponse(e gym.Exercise) ExerciseResponse {
	return ExerciseResponse{Exercise: e, DisplayImage: e.DisplayImage()}
}

func exerciseResponses(exercises []gym.Exercise) []ExerciseResponse {
	res := make([]ExerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		res = append(res, exerciseResponse(e))
	}
	return res
}

type AddExerciseRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

type UpdateImageRequest struct {
	Image string `json:"image"`
}

type DeletedResponse struct {
	DeletedID string `json:"deletedId"`
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	category := r.URL.Query().Get("category")
	if category == "" {
		pkg.WriteJSON(w, exerciseResponses(handler.store.Exercises()), http.StatusOK)
		return
	}
	if !gym.IsValidCategory(category) {
		http.Error(w, "error, unknown category", http.StatusBadRequest)
		return
	}
	pkg.WriteJSON(w, exerciseResponses(handler.store.ExercisesInCategory(category)), http.StatusOK)
}

func (handler *Handler) HandleSections(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.sections")
	defer span.End()

	pkg.WriteJSON(w, handler.store.CategorySections(), http.StatusOK)
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	var req AddExerciseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Tracef("add exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}
	if assets.IsLocalReference(req.Image) {
		http.Error(w, "add exercise failed, image must be an http(s) url", http.StatusBadRequest)
		return
	}

	op, err := handler.store.AddExercise(req.Name, req.Category, req.Image)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	handler.writeOpResult(w, r, op, func() any {
		e, _ := handler.store.Exercise(op.ID)
		return exerciseResponse(e)
	}, http.StatusCreated)
}

func (handler *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	op, err := handler.store.DeleteExercise(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		return DeletedResponse{DeletedID: id}
	}, http.StatusOK)
}

func (handler *Handler) HandleUpdateImage(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update_image")
	defer span.End()

	id := mux.Vars(r)["id"]
	var req UpdateImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "update image failed", http.StatusBadRequest)
		return
	}
	// server side files only come in through the multipart upload route
	if assets.IsLocalReference(req.Image) {
		http.Error(w, "update image failed, image must be an http(s) url", http.StatusBadRequest)
		return
	}

	op, err := handler.store.UpdateExerciseImage(id, req.Image)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		e, _ := handler.store.Exercise(id)
		return exerciseResponse(e)
	}, http.StatusOK)
}

func (handler *Handler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.upload_image")
	defer span.End()

	if handler.uploader == nil {
		http.Error(w, "image uploads not configured", http.StatusNotImplemented)
		return
	}

	id := mux.Vars(r)["id"]
	if _, ok := handler.store.Exercise(id); !ok {
		http.Error(w, "upload image failed, exercise not found", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		log.Errorf("upload image, get file from form: %s", err)
		http.Error(w, "upload image failed", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("upload image, close file: %s", err)
		}
	}()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = assets.ContentTypeFor(header.Filename)
	}

	url, err := handler.uploader.Upload(ctx, assets.UploadParams{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		File:        file,
	})
	if err != nil {
		log.Errorf("upload image, save file: %s", err)
		http.Error(w, "upload image failed", http.StatusInternalServerError)
		return
	}

	op, err := handler.store.UpdateExerciseImage(id, url)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	handler.writeOpResult(w, r, op, func() any {
		e, _ := handler.store.Exercise(id)
		return exerciseResponse(e)
	}, http.StatusOK)
}
