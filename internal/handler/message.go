package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"farmhub/internal/mw"
	"farmhub/internal/service"
)

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
}

func SendMessageHandler(messageSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		senderID := mw.UserID(r.Context())

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.RecipientID == "" || req.Body == "" {
			http.Error(w, "recipient_id and body required", http.StatusBadRequest)
			return
		}

		msg, err := messageSvc.Send(r.Context(), senderID, req.RecipientID, req.Body)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrRecipientNotFound):
				http.Error(w, "recipient not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(msg); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func InboxHandler(messageSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		messages, err := messageSvc.Inbox(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(messages) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(messages); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func MarkInboxReadHandler(messageSvc *service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		if err := messageSvc.MarkRead(r.Context(), userID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
