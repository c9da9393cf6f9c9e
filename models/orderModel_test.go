package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFeeFor(t *testing.T) {
	tests := []struct {
		total int64
		fee   int64
	}{
		{0, FlatShippingFee},
		{49999, FlatShippingFee},
		{50000, 0},
		{120000, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.fee, ShippingFeeFor(tt.total), "total %d", tt.total)
	}
}

func TestOrderStatusCanTransition(t *testing.T) {
	assert.True(t, OrderPending.CanTransition(OrderProcessing))
	assert.True(t, OrderProcessing.CanTransition(OrderDelivering))
	assert.True(t, OrderDelivering.CanTransition(OrderCompleted))
	assert.True(t, OrderDelivering.CanTransition(OrderCanceled))

	assert.False(t, OrderPending.CanTransition(OrderCompleted))
	assert.False(t, OrderDelivering.CanTransition(OrderPending))
	assert.False(t, OrderCompleted.CanTransition(OrderCanceled))
	assert.False(t, OrderCanceled.CanTransition(OrderProcessing))
}
