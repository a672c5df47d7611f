package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"farmhub/internal/model"
	"farmhub/internal/mw"
	"farmhub/internal/service"
)

func GetTokenBalanceHandler(tokenSvc *service.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		balance, err := tokenSvc.Balance(r.Context(), farmerID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFarmerNotFound):
				http.Error(w, "farmer not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(balance); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

type spendTokensRequest struct {
	Tokens int    `json:"tokens"`
	Reason string `json:"reason"`
}

func SpendTokensHandler(tokenSvc *service.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		var req spendTokensRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := tokenSvc.Spend(r.Context(), farmerID, req.Tokens, req.Reason); err != nil {
			switch {
			case errors.Is(err, model.ErrInvalidTokenAmount):
				http.Error(w, "tokens must be positive", http.StatusUnprocessableEntity)
			case errors.Is(err, model.ErrInsufficientTokens):
				http.Error(w, "insufficient token balance", http.StatusPaymentRequired)
			case errors.Is(err, service.ErrFarmerNotFound):
				http.Error(w, "farmer not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func ListTokenSpendsHandler(tokenSvc *service.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID := mw.UserID(r.Context())

		spends, err := tokenSvc.ListSpends(r.Context(), farmerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(spends) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(spends); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
