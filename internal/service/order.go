package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"farmhub/internal/model"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyOrder     = errors.New("order has no products")
	ErrNegativeAmount = errors.New("total amount must not be negative")
)

type OrderService struct {
	db  *sql.DB
	now func() time.Time
}

func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db, now: time.Now}
}

const orderColumns = `id, customer_id, farmer_id, products, status, total_amount, is_paid,
	order_date, confirmed_date, delivered_date, received_date, cancelled_date`

// Create validates the product map against the catalog and stores a new
// PENDING order. The total is assigned by the caller, not derived here.
func (s *OrderService) Create(ctx context.Context, customerID, farmerID string, products map[model.ProductType]int, total decimal.Decimal) (*model.Order, error) {
	if total.IsNegative() {
		return nil, ErrNegativeAmount
	}

	o := model.NewOrder(customerID, farmerID, s.now())
	for p, qty := range products {
		if err := o.AddProduct(p, qty); err != nil {
			return nil, err
		}
	}
	if o.TotalItems() == 0 {
		return nil, ErrEmptyOrder
	}
	o.TotalAmount = total

	productsJSON, err := json.Marshal(o.Products)
	if err != nil {
		return nil, fmt.Errorf("marshal products: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, farmer_id, products, status, total_amount, order_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, o.CustomerID, o.FarmerID, productsJSON, o.Status, o.TotalAmount, o.OrderDate)
	if err := row.Scan(&o.ID); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return o, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	return s.list(ctx, `customer_id`, customerID)
}

func (s *OrderService) ListByFarmer(ctx context.Context, farmerID string) ([]model.Order, error) {
	return s.list(ctx, `farmer_id`, farmerID)
}

func (s *OrderService) list(ctx context.Context, column, id string) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE `+column+` = $1 ORDER BY order_date DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}

// Confirm runs the PENDING -> CONFIRMED transition for the farmer's own order.
func (s *OrderService) Confirm(ctx context.Context, orderID, farmerID string) (*model.Order, error) {
	return s.transition(ctx, orderID, "farmer_id", farmerID, (*model.Order).Confirm)
}

// Deliver runs the CONFIRMED -> DELIVERED transition for the farmer's own order.
func (s *OrderService) Deliver(ctx context.Context, orderID, farmerID string) (*model.Order, error) {
	return s.transition(ctx, orderID, "farmer_id", farmerID, (*model.Order).Deliver)
}

// Receive runs the DELIVERED -> RECEIVED transition for the customer's own order.
func (s *OrderService) Receive(ctx context.Context, orderID, customerID string) (*model.Order, error) {
	return s.transition(ctx, orderID, "customer_id", customerID, (*model.Order).Receive)
}

// CancelByCustomer and CancelByFarmer run the CANCELLED transition; either
// party may cancel while the order is still PENDING or CONFIRMED.
func (s *OrderService) CancelByCustomer(ctx context.Context, orderID, customerID string) (*model.Order, error) {
	return s.transition(ctx, orderID, "customer_id", customerID, (*model.Order).Cancel)
}

func (s *OrderService) CancelByFarmer(ctx context.Context, orderID, farmerID string) (*model.Order, error) {
	return s.transition(ctx, orderID, "farmer_id", farmerID, (*model.Order).Cancel)
}

// transition loads the order under a row lock, applies the state-machine
// step in memory, and writes the new status and date back. The lock keeps
// two concurrent transitions on the same order from both passing the guard.
func (s *OrderService) transition(ctx context.Context, orderID, ownerColumn, ownerID string, step func(*model.Order, time.Time) error) (*model.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1 AND `+ownerColumn+` = $2 FOR UPDATE
	`, orderID, ownerID)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := step(o, s.now()); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, confirmed_date = $2, delivered_date = $3, received_date = $4, cancelled_date = $5
		WHERE id = $6
	`, o.Status, o.ConfirmedDate, o.DeliveredDate, o.ReceivedDate, o.CancelledDate, o.ID)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return o, nil
}

// MarkPaid flips the payment flag. Payment is independent of the status
// lifecycle, so no guard applies.
func (s *OrderService) MarkPaid(ctx context.Context, orderID, customerID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders SET is_paid = TRUE WHERE id = $1 AND customer_id = $2
	`, orderID, customerID)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o            model.Order
		productsJSON []byte
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.FarmerID, &productsJSON, &o.Status, &o.TotalAmount,
		&o.IsPaid, &o.OrderDate, &o.ConfirmedDate, &o.DeliveredDate, &o.ReceivedDate, &o.CancelledDate)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(productsJSON, &o.Products); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}
	return &o, nil
}
