package analytics

import (
	"testing"
	"time"

	"salonstock/internal/normalize"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrders_CountsByStatus(t *testing.T) {
	r := marchRange()
	orders := []normalize.Order{
		{ID: "a", Status: normalize.OrderOpen, CreatedAt: timePtr(day(2024, 3, 2))},
		{ID: "b", Status: normalize.OrderSent, CreatedAt: timePtr(day(2024, 3, 3))},
		{ID: "c", Status: normalize.OrderReceived, CreatedAt: timePtr(day(2024, 3, 4))},
		{ID: "d", Status: normalize.OrderOpen, CreatedAt: timePtr(day(2024, 3, 5))},
		// Out of range or undated orders never count.
		{ID: "e", Status: normalize.OrderOpen, CreatedAt: timePtr(day(2024, 1, 1))},
		{ID: "f", Status: normalize.OrderOpen},
	}

	m := ComputeOrders(orders, r, "")
	assert.Equal(t, 2, m.Open)
	assert.Equal(t, 1, m.Sent)
	assert.Equal(t, 1, m.Received)
}

func TestComputeOrders_AverageAgeOverOpenOrdersOnly(t *testing.T) {
	r := marchRange()
	orders := []normalize.Order{
		// Open for 3 and 5 days by the end of the range.
		{ID: "a", Status: normalize.OrderOpen, CreatedAt: timePtr(time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC))},
		{ID: "b", Status: normalize.OrderOpen, CreatedAt: timePtr(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC))},
		// A received order three weeks old must not drag the average.
		{ID: "c", Status: normalize.OrderReceived, CreatedAt: timePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
	}

	m := ComputeOrders(orders, r, "")
	assert.Equal(t, 4.0, m.AverageAgeDays)
}

func TestComputeOrders_NoOpenOrdersMeansZeroAverage(t *testing.T) {
	r := marchRange()
	orders := []normalize.Order{
		{ID: "a", Status: normalize.OrderReceived, CreatedAt: timePtr(day(2024, 3, 2))},
	}

	m := ComputeOrders(orders, r, "")
	assert.Equal(t, 0.0, m.AverageAgeDays)
	assert.Equal(t, 1, m.Received)
}

func TestComputeOrders_ScopeMatchesSourceOrCedis(t *testing.T) {
	r := marchRange()
	orders := []normalize.Order{
		{ID: "a", Status: normalize.OrderOpen, SourceWarehouseID: "w1", CreatedAt: timePtr(day(2024, 3, 2))},
		{ID: "b", Status: normalize.OrderOpen, CedisWarehouseID: "w1", CreatedAt: timePtr(day(2024, 3, 2))},
		{ID: "c", Status: normalize.OrderOpen, SourceWarehouseID: "w2", CreatedAt: timePtr(day(2024, 3, 2))},
	}

	m := ComputeOrders(orders, r, "w1")
	assert.Equal(t, 2, m.Open)
}

func TestComputeOrders_EmptyInput(t *testing.T) {
	m := ComputeOrders(nil, marchRange(), "")
	assert.Equal(t, OrderMetrics{}, m)
}
