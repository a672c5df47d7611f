package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"farmhub/internal/mw"
	"farmhub/internal/service"
)

type recordVaccineRequest struct {
	AnimalID       string     `json:"animal_id"`
	Name           string     `json:"name"`
	AdministeredAt time.Time  `json:"administered_at"`
	NextDue        *time.Time `json:"next_due"`
}

func RecordVaccineHandler(vaccineSvc *service.VaccineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vetID := mw.UserID(r.Context())

		var req recordVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.AnimalID == "" || req.Name == "" {
			http.Error(w, "animal_id and name required", http.StatusBadRequest)
			return
		}
		if req.AdministeredAt.IsZero() {
			req.AdministeredAt = time.Now()
		}

		v, err := vaccineSvc.Record(r.Context(), req.AnimalID, vetID, req.Name, req.AdministeredAt, req.NextDue)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(v); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func ListVaccinesHandler(vaccineSvc *service.VaccineService, animalSvc *service.AnimalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())
		animalID := chi.URLParam(r, "id")

		owns, err := animalSvc.Owns(r.Context(), farmerID, animalID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !owns {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		vaccines, err := vaccineSvc.ListByAnimal(r.Context(), animalID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(vaccines) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(vaccines); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
