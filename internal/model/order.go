package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is a stage in the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusReceived  OrderStatus = "RECEIVED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var (
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrUnknownProduct    = errors.New("unknown product type")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Order is a customer's purchase of farm products from a farmer. Status only
// moves forward along PENDING -> CONFIRMED -> DELIVERED -> RECEIVED, or to
// CANCELLED from PENDING/CONFIRMED. Each date field is set exactly once, by
// the transition that reaches it.
type Order struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	FarmerID    string              `json:"farmer_id"`
	Products    map[ProductType]int `json:"products"`
	Status      OrderStatus         `json:"status"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	IsPaid      bool                `json:"is_paid"`

	OrderDate     time.Time  `json:"order_date"`
	ConfirmedDate *time.Time `json:"confirmed_date,omitempty"`
	DeliveredDate *time.Time `json:"delivered_date,omitempty"`
	ReceivedDate  *time.Time `json:"received_date,omitempty"`
	CancelledDate *time.Time `json:"cancelled_date,omitempty"`
}

// NewOrder returns a PENDING order with an empty product map. The timestamp
// is passed in rather than read from the wall clock so the lifecycle stays
// testable.
func NewOrder(customerID, farmerID string, at time.Time) *Order {
	return &Order{
		CustomerID: customerID,
		FarmerID:   farmerID,
		Products:   make(map[ProductType]int),
		Status:     OrderStatusPending,
		OrderDate:  at,
	}
}

func (o *Order) CanBeConfirmed() bool {
	return o.Status == OrderStatusPending
}

func (o *Order) CanBeDelivered() bool {
	return o.Status == OrderStatusConfirmed
}

func (o *Order) CanBeReceived() bool {
	return o.Status == OrderStatusDelivered
}

func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// Confirm moves the order from PENDING to CONFIRMED.
func (o *Order) Confirm(at time.Time) error {
	if !o.CanBeConfirmed() {
		return transitionErr(o.Status, OrderStatusConfirmed)
	}
	o.Status = OrderStatusConfirmed
	o.ConfirmedDate = &at
	return nil
}

// Deliver moves the order from CONFIRMED to DELIVERED.
func (o *Order) Deliver(at time.Time) error {
	if !o.CanBeDelivered() {
		return transitionErr(o.Status, OrderStatusDelivered)
	}
	o.Status = OrderStatusDelivered
	o.DeliveredDate = &at
	return nil
}

// Receive moves the order from DELIVERED to its terminal RECEIVED state.
func (o *Order) Receive(at time.Time) error {
	if !o.CanBeReceived() {
		return transitionErr(o.Status, OrderStatusReceived)
	}
	o.Status = OrderStatusReceived
	o.ReceivedDate = &at
	return nil
}

// Cancel moves the order to CANCELLED. Only legal before delivery.
func (o *Order) Cancel(at time.Time) error {
	if !o.CanBeCancelled() {
		return transitionErr(o.Status, OrderStatusCancelled)
	}
	o.Status = OrderStatusCancelled
	o.CancelledDate = &at
	return nil
}

func transitionErr(from, to OrderStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// AddProduct sets the quantity for a catalog product. The quantity replaces
// any existing entry, it is not added to it.
func (o *Order) AddProduct(p ProductType, qty int) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProduct, p)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	if o.Products == nil {
		o.Products = make(map[ProductType]int)
	}
	o.Products[p] = qty
	return nil
}

// RemoveProduct drops the product from the order. Removing an absent product
// does nothing.
func (o *Order) RemoveProduct(p ProductType) {
	delete(o.Products, p)
}

// TotalItems sums the quantities of every product on the order. It is
// recomputed on each call.
func (o *Order) TotalItems() int {
	total := 0
	for _, qty := range o.Products {
		total += qty
	}
	return total
}
