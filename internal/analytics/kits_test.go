package analytics

import (
	"testing"

	"salonstock/internal/normalize"

	"github.com/stretchr/testify/assert"
)

func TestComputeKits_SumsScopedKits(t *testing.T) {
	kits := []normalize.Kit{
		{ID: "k1", TotalItems: 10, ReturnedItems: 4, ActiveItems: 6, AssignedWarehouseID: "w1"},
	}

	m := ComputeKits(kits, "w1")
	assert.Equal(t, 1, m.TotalKits)
	assert.Equal(t, 10, m.TotalItems)
	assert.Equal(t, 6, m.ActiveItems)
	assert.Equal(t, 4, m.ReturnedItems)

	// A different scope sees nothing.
	m = ComputeKits(kits, "w2")
	assert.Equal(t, KitMetrics{}, m)
}

func TestComputeKits_UnscopedSeesEverything(t *testing.T) {
	kits := []normalize.Kit{
		{ID: "k1", TotalItems: 3, ActiveItems: 3, AssignedWarehouseID: "w1"},
		{ID: "k2", TotalItems: 2, ReturnedItems: 2, AssignedWarehouseID: "w2"},
		{ID: "k3", TotalItems: 1, ActiveItems: 1},
	}

	m := ComputeKits(kits, "")
	assert.Equal(t, 3, m.TotalKits)
	assert.Equal(t, 6, m.TotalItems)
	assert.Equal(t, 4, m.ActiveItems)
	assert.Equal(t, 2, m.ReturnedItems)
}

func TestComputeKits_EmptyInput(t *testing.T) {
	assert.Equal(t, KitMetrics{}, ComputeKits(nil, ""))
}
