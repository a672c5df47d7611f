package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"farmhub/internal/mw"
	"farmhub/internal/service"
)

type createTaskRequest struct {
	Title   string     `json:"title"`
	Details string     `json:"details"`
	DueDate *time.Time `json:"due_date"`
}

func CreateTaskHandler(taskSvc *service.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Title == "" {
			http.Error(w, "title required", http.StatusBadRequest)
			return
		}

		task, err := taskSvc.Create(r.Context(), farmerID, req.Title, req.Details, req.DueDate)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(task); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func CompleteTaskHandler(taskSvc *service.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())
		id := chi.URLParam(r, "id")

		if err := taskSvc.Complete(r.Context(), id, farmerID); err != nil {
			switch {
			case errors.Is(err, service.ErrTaskNotFound):
				http.Error(w, "task not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func ListTasksHandler(taskSvc *service.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		tasks, err := taskSvc.ListByFarmer(r.Context(), farmerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(tasks) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tasks); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
