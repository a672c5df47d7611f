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

type createOrderRequest struct {
	FarmerID string                    `json:"farmer_id"`
	Products map[model.ProductType]int `json:"products"`
	Total    decimal.Decimal           `json:"total"`
}

func CreateOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := mw.UserID(r.Context())

		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.FarmerID == "" {
			http.Error(w, "farmer_id required", http.StatusBadRequest)
			return
		}

		order, err := orderSvc.Create(r.Context(), customerID, req.FarmerID, req.Products, req.Total)
		if err != nil {
			switch {
			case errors.Is(err, model.ErrUnknownProduct),
				errors.Is(err, model.ErrInvalidQuantity),
				errors.Is(err, service.ErrEmptyOrder),
				errors.Is(err, service.ErrNegativeAmount):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			default:
				slog.Error("order create failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(order); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func ListCustomerOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return listOrders(orderSvc.ListByCustomer)
}

func ListFarmerOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return listOrders(orderSvc.ListByFarmer)
}

func listOrders(list func(context.Context, string) ([]model.Order, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		orders, err := list(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(orders); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

// Transition handlers. Each resolves the order by the path id, scoped to the
// caller, and maps an illegal transition to 409 so clients can tell a
// rejected step from a missing order.

func ConfirmOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return transitionHandler(orderSvc.Confirm)
}

func DeliverOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return transitionHandler(orderSvc.Deliver)
}

func ReceiveOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return transitionHandler(orderSvc.Receive)
}

func CustomerCancelOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return transitionHandler(orderSvc.CancelByCustomer)
}

func FarmerCancelOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return transitionHandler(orderSvc.CancelByFarmer)
}

func transitionHandler(step func(ctx context.Context, orderID, actorID string) (*model.Order, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := mw.UserID(r.Context())
		orderID := chi.URLParam(r, "id")

		order, err := step(r.Context(), orderID, actorID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, model.ErrIllegalTransition):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				slog.Error("order transition failed", "order", orderID, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(order); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func PayOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := mw.UserID(r.Context())
		orderID := chi.URLParam(r, "id")

		if err := orderSvc.MarkPaid(r.Context(), orderID, customerID); err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
