package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewOrder(t *testing.T) {
	o := NewOrder("c1", "f1", t0)

	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, t0, o.OrderDate)
	assert.Nil(t, o.ConfirmedDate)
	assert.Nil(t, o.DeliveredDate)
	assert.Nil(t, o.ReceivedDate)
	assert.Nil(t, o.CancelledDate)
	assert.Empty(t, o.Products)
}

func TestOrderHappyPath(t *testing.T) {
	o := NewOrder("c1", "f1", t0)

	t1 := t0.Add(time.Hour)
	require.NoError(t, o.Confirm(t1))
	assert.Equal(t, OrderStatusConfirmed, o.Status)
	require.NotNil(t, o.ConfirmedDate)
	assert.Equal(t, t1, *o.ConfirmedDate)

	t2 := t1.Add(time.Hour)
	require.NoError(t, o.Deliver(t2))
	assert.Equal(t, OrderStatusDelivered, o.Status)
	require.NotNil(t, o.DeliveredDate)
	assert.Equal(t, t2, *o.DeliveredDate)

	t3 := t2.Add(time.Hour)
	require.NoError(t, o.Receive(t3))
	assert.Equal(t, OrderStatusReceived, o.Status)
	require.NotNil(t, o.ReceivedDate)
	assert.Equal(t, t3, *o.ReceivedDate)

	assert.Nil(t, o.CancelledDate)
}

func TestOrderIllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		step func(*Order, time.Time) error
	}{
		{"confirm from confirmed", OrderStatusConfirmed, (*Order).Confirm},
		{"confirm from delivered", OrderStatusDelivered, (*Order).Confirm},
		{"confirm from received", OrderStatusReceived, (*Order).Confirm},
		{"confirm from cancelled", OrderStatusCancelled, (*Order).Confirm},
		{"deliver from pending", OrderStatusPending, (*Order).Deliver},
		{"deliver from delivered", OrderStatusDelivered, (*Order).Deliver},
		{"deliver from received", OrderStatusReceived, (*Order).Deliver},
		{"deliver from cancelled", OrderStatusCancelled, (*Order).Deliver},
		{"receive from pending", OrderStatusPending, (*Order).Receive},
		{"receive from confirmed", OrderStatusConfirmed, (*Order).Receive},
		{"receive from received", OrderStatusReceived, (*Order).Receive},
		{"receive from cancelled", OrderStatusCancelled, (*Order).Receive},
		{"cancel from delivered", OrderStatusDelivered, (*Order).Cancel},
		{"cancel from received", OrderStatusReceived, (*Order).Cancel},
		{"cancel from cancelled", OrderStatusCancelled, (*Order).Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrder("c1", "f1", t0)
			o.Status = tt.from

			err := tt.step(o, t0.Add(time.Hour))

			assert.ErrorIs(t, err, ErrIllegalTransition)
			assert.Equal(t, tt.from, o.Status)
			assert.Nil(t, o.ConfirmedDate)
			assert.Nil(t, o.DeliveredDate)
			assert.Nil(t, o.ReceivedDate)
			assert.Nil(t, o.CancelledDate)
		})
	}
}

func TestOrderCancel(t *testing.T) {
	t.Run("from pending", func(t *testing.T) {
		o := NewOrder("c1", "f1", t0)
		t1 := t0.Add(time.Hour)

		require.NoError(t, o.Cancel(t1))
		assert.Equal(t, OrderStatusCancelled, o.Status)
		require.NotNil(t, o.CancelledDate)
		assert.Equal(t, t1, *o.CancelledDate)
	})

	t.Run("from confirmed keeps confirmed date", func(t *testing.T) {
		o := NewOrder("c1", "f1", t0)
		t1 := t0.Add(time.Hour)
		t2 := t1.Add(time.Hour)

		require.NoError(t, o.Confirm(t1))
		require.NoError(t, o.Cancel(t2))

		assert.Equal(t, OrderStatusCancelled, o.Status)
		require.NotNil(t, o.ConfirmedDate)
		assert.Equal(t, t1, *o.ConfirmedDate)
		require.NotNil(t, o.CancelledDate)
		assert.Equal(t, t2, *o.CancelledDate)
	})
}

func TestGuardPredicates(t *testing.T) {
	tests := []struct {
		status    OrderStatus
		confirm   bool
		deliver   bool
		receive   bool
		cancel    bool
	}{
		{OrderStatusPending, true, false, false, true},
		{OrderStatusConfirmed, false, true, false, true},
		{OrderStatusDelivered, false, false, true, false},
		{OrderStatusReceived, false, false, false, false},
		{OrderStatusCancelled, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			o := &Order{Status: tt.status}
			assert.Equal(t, tt.confirm, o.CanBeConfirmed())
			assert.Equal(t, tt.deliver, o.CanBeDelivered())
			assert.Equal(t, tt.receive, o.CanBeReceived())
			assert.Equal(t, tt.cancel, o.CanBeCancelled())
		})
	}
}

func TestAddProduct(t *testing.T) {
	o := NewOrder("c1", "f1", t0)

	require.NoError(t, o.AddProduct(ProductMilkCow, 3))
	require.NoError(t, o.AddProduct(ProductHenEggs, 12))
	assert.Equal(t, 15, o.TotalItems())

	t.Run("overwrites, not adds", func(t *testing.T) {
		require.NoError(t, o.AddProduct(ProductMilkCow, 5))
		assert.Equal(t, 5, o.Products[ProductMilkCow])
		assert.Equal(t, 17, o.TotalItems())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		err := o.AddProduct(ProductMilkCow, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 5, o.Products[ProductMilkCow])

		err = o.AddProduct(ProductButter, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.NotContains(t, o.Products, ProductButter)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		err := o.AddProduct("CHEESE", 2)
		assert.ErrorIs(t, err, ErrUnknownProduct)
		assert.NotContains(t, o.Products, ProductType("CHEESE"))
	})
}

func TestRemoveProduct(t *testing.T) {
	o := NewOrder("c1", "f1", t0)
	require.NoError(t, o.AddProduct(ProductMilkCow, 3))
	require.NoError(t, o.AddProduct(ProductHenEggs, 12))

	o.RemoveProduct(ProductMilkCow)
	assert.Equal(t, 12, o.TotalItems())

	// absent key is a no-op
	o.RemoveProduct(ProductMilkCow)
	assert.Equal(t, 12, o.TotalItems())
}

func TestProductCatalog(t *testing.T) {
	for _, p := range []ProductType{
		ProductMilkCow, ProductMilkBuffalo, ProductMilkGoat,
		ProductButter, ProductHenEggs, ProductDuckEggs,
	} {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, ProductType("CHEESE").Valid())
	assert.False(t, ProductType("").Valid())
	assert.False(t, ProductType("milk_cow").Valid())
}

func TestOrderEndToEnd(t *testing.T) {
	o := NewOrder("C1", "F1", t0)
	require.NoError(t, o.AddProduct(ProductButter, 2))

	assert.Equal(t, OrderStatusPending, o.Status)
	assert.False(t, o.OrderDate.IsZero())
	assert.Nil(t, o.ConfirmedDate)

	t1 := t0.Add(time.Hour)
	require.NoError(t, o.Confirm(t1))
	assert.Equal(t, OrderStatusConfirmed, o.Status)
	require.NotNil(t, o.ConfirmedDate)

	t2 := t1.Add(time.Hour)
	require.NoError(t, o.Cancel(t2))
	assert.Equal(t, OrderStatusCancelled, o.Status)
	require.NotNil(t, o.CancelledDate)
	assert.Equal(t, t1, *o.ConfirmedDate)

	// terminal: a second cancel is rejected without touching the dates
	err := o.Cancel(t2.Add(time.Hour))
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, t2, *o.CancelledDate)
}
