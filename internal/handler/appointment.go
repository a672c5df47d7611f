package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"farmhub/internal/model"
	"farmhub/internal/mw"
	"farmhub/internal/service"
)

type bookAppointmentRequest struct {
	VetID       string    `json:"vet_id"`
	AnimalID    string    `json:"animal_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason"`
}

func BookAppointmentHandler(appointmentSvc *service.AppointmentService, animalSvc *service.AnimalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		var req bookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.VetID == "" || req.AnimalID == "" || req.ScheduledAt.IsZero() {
			http.Error(w, "vet_id, animal_id and scheduled_at required", http.StatusBadRequest)
			return
		}

		owns, err := animalSvc.Owns(r.Context(), farmerID, req.AnimalID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !owns {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		ap, err := appointmentSvc.Book(r.Context(), farmerID, req.VetID, req.AnimalID, req.ScheduledAt, req.Reason)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(ap); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func ListFarmerAppointmentsHandler(appointmentSvc *service.AppointmentService) http.HandlerFunc {
	return listAppointments(appointmentSvc.ListByFarmer)
}

func ListVetAppointmentsHandler(appointmentSvc *service.AppointmentService) http.HandlerFunc {
	return listAppointments(appointmentSvc.ListByVet)
}

func listAppointments(list func(ctx context.Context, id string) ([]model.Appointment, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		appointments, err := list(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(appointments) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(appointments); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func CompleteAppointmentHandler(appointmentSvc *service.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vetID := mw.UserID(r.Context())
		id := chi.URLParam(r, "id")

		if err := appointmentSvc.Complete(r.Context(), id, vetID); err != nil {
			writeAppointmentErr(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func CancelAppointmentHandler(appointmentSvc *service.AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())
		id := chi.URLParam(r, "id")

		if err := appointmentSvc.Cancel(r.Context(), id, farmerID); err != nil {
			writeAppointmentErr(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func writeAppointmentErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAppointmentNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, service.ErrAppointmentDecided):
		http.Error(w, "appointment already completed or cancelled", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
