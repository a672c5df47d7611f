package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"farmhub/internal/mw"
	"farmhub/internal/service"
)

type registerAnimalRequest struct {
	Tag         string     `json:"tag"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

func RegisterAnimalHandler(animalSvc *service.AnimalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		var req registerAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Tag == "" || req.Species == "" {
			http.Error(w, "tag and species required", http.StatusBadRequest)
			return
		}

		animal, err := animalSvc.Register(r.Context(), farmerID, req.Tag, req.Species, req.Breed, req.DateOfBirth)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrDuplicateTag):
				http.Error(w, "animal tag already registered", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(animal); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func ListAnimalsHandler(animalSvc *service.AnimalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		animals, err := animalSvc.ListByFarmer(r.Context(), farmerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(animals) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(animals); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
