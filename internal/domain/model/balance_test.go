package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectedAllocation_TotalMinorUnits(t *testing.T) {
	tests := []struct {
		name       string
		allocation SelectedAllocation
		expected   int
	}{
		{
			name:       "single unit",
			allocation: SelectedAllocation{Item: CatalogItem{UnitPriceMinorUnits: 428}, Quantity: 1},
			expected:   428,
		},
		{
			name:       "multiple units",
			allocation: SelectedAllocation{Item: CatalogItem{UnitPriceMinorUnits: 428}, Quantity: 3},
			expected:   1284,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.allocation.TotalMinorUnits())
		})
	}
}

func TestCatalogItem_Flags(t *testing.T) {
	assert.True(t, CatalogItem{MandatoryQuantity: 2}.IsMandatory())
	assert.False(t, CatalogItem{MandatoryQuantity: 0}.IsMandatory())
	assert.True(t, CatalogItem{UnitPriceMinorUnits: 1}.IsPriced())
	assert.False(t, CatalogItem{UnitPriceMinorUnits: 0}.IsPriced())
}

func TestOptimizationResult_Derived(t *testing.T) {
	result := OptimizationResult{
		BudgetMinorUnits: 1000,
		SelectedAllocations: []SelectedAllocation{
			{Item: CatalogItem{ID: "a", UnitPriceMinorUnits: 300}, Quantity: 2},
			{Item: CatalogItem{ID: "b", UnitPriceMinorUnits: 150}, Quantity: 1},
		},
		MatchQuality: Partial(250),
	}

	assert.Equal(t, 750, result.TotalSpentMinorUnits())
	assert.Equal(t, 250, result.RemainingMinorUnits())
}

func TestOptimizationResult_Clone(t *testing.T) {
	original := OptimizationResult{
		BudgetMinorUnits: 428,
		SelectedAllocations: []SelectedAllocation{
			{Item: CatalogItem{ID: "coffee", UnitPriceMinorUnits: 428}, Quantity: 1},
		},
		MatchQuality: Perfect(),
	}

	clone := original.Clone()
	clone.SelectedAllocations[0].Quantity = 99

	assert.Equal(t, 1, original.SelectedAllocations[0].Quantity)
	assert.Equal(t, original.MatchQuality, clone.MatchQuality)
}

func TestNoSolutionResult(t *testing.T) {
	result := NoSolutionResult(100)

	assert.Equal(t, 100, result.BudgetMinorUnits)
	assert.Empty(t, result.SelectedAllocations)
	assert.NotNil(t, result.SelectedAllocations)
	assert.Equal(t, MatchNoSolution, result.MatchQuality.Kind)
	assert.Equal(t, 100, result.RemainingMinorUnits())
}

func TestMatchQuality_JSON(t *testing.T) {
	data, err := json.Marshal(Partial(177))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"partial","remaining_minor_units":177}`, string(data))

	data, err = json.Marshal(Perfect())
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"perfect"}`, string(data))
}
