package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"farmhub/internal/model"
	"farmhub/internal/mw"
	"farmhub/internal/service"
)

type subscriptionRequest struct {
	Tier          model.SubscriptionTier `json:"tier"`
	Amount        decimal.Decimal        `json:"amount"`
	Tokens        int                    `json:"tokens"`
	TransactionID string                 `json:"transaction_id"`
}

func RequestSubscriptionHandler(subSvc *service.SubscriptionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		var req subscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sub, err := subSvc.Request(r.Context(), farmerID, req.Tier, req.Amount, req.Tokens, req.TransactionID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidPackage):
				http.Error(w, "invalid subscription package", http.StatusUnprocessableEntity)
			default:
				slog.Error("subscription request failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sub); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func ListSubscriptionsHandler(subSvc *service.SubscriptionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		subs, err := subSvc.ListByFarmer(r.Context(), farmerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(subs) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(subs); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func ListPendingSubscriptionsHandler(subSvc *service.SubscriptionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := subSvc.ListPending(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(subs) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(subs); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func ApproveSubscriptionHandler(subSvc *service.SubscriptionService) http.HandlerFunc {
	return decideSubscription(subSvc.Approve)
}

func RejectSubscriptionHandler(subSvc *service.SubscriptionService) http.HandlerFunc {
	return decideSubscription(subSvc.Reject)
}

func decideSubscription(decide func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := decide(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, service.ErrSubscriptionNotFound):
				http.Error(w, "subscription not found", http.StatusNotFound)
			case errors.Is(err, service.ErrSubscriptionNotPending):
				http.Error(w, "subscription already decided", http.StatusConflict)
			default:
				slog.Error("subscription decision failed", "subscription", id, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
