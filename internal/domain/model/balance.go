// Package model defines the core domain entities for the balance service.
package model

// CatalogItem is a purchasable item with a per-unit price in minor currency units.
//
// @Description Catalog item; mandatory_quantity > 0 marks the item as required
// @Example {"id": "coffee", "name": "Coffee", "unit_price_minor_units": 428, "mandatory_quantity": 0}
type CatalogItem struct {
	ID                  string `json:"id" example:"coffee"`
	Name                string `json:"name" example:"Coffee"`
	UnitPriceMinorUnits int    `json:"unit_price_minor_units" example:"428"`
	MandatoryQuantity   int    `json:"mandatory_quantity" example:"0"`
}

// IsMandatory reports whether the item must be bought regardless of the optimizer.
func (i CatalogItem) IsMandatory() bool {
	return i.MandatoryQuantity > 0
}

// IsPriced reports whether the item has a strictly positive price.
func (i CatalogItem) IsPriced() bool {
	return i.UnitPriceMinorUnits > 0
}

// SelectedAllocation is a purchase of Quantity units of Item. Quantity is always >= 1.
type SelectedAllocation struct {
	Item     CatalogItem `json:"item"`
	Quantity int         `json:"quantity" example:"3"`
}

// TotalMinorUnits returns price * quantity.
func (a SelectedAllocation) TotalMinorUnits() int {
	return a.Item.UnitPriceMinorUnits * a.Quantity
}

// MatchKind classifies how closely a result exhausts the budget.
type MatchKind string

const (
	MatchPerfect    MatchKind = "perfect"
	MatchPartial    MatchKind = "partial"
	MatchNoSolution MatchKind = "no_solution"
)

// MatchQuality is a tagged union over MatchKind. RemainingMinorUnits is only
// meaningful (and positive) for MatchPartial.
type MatchQuality struct {
	Kind                MatchKind `json:"kind" example:"partial"`
	RemainingMinorUnits int       `json:"remaining_minor_units,omitempty" example:"177"`
}

func Perfect() MatchQuality {
	return MatchQuality{Kind: MatchPerfect}
}

func Partial(remainingMinorUnits int) MatchQuality {
	return MatchQuality{Kind: MatchPartial, RemainingMinorUnits: remainingMinorUnits}
}

func NoSolution() MatchQuality {
	return MatchQuality{Kind: MatchNoSolution}
}

// OptimizationInput is the whole input of one optimizer call.
type OptimizationInput struct {
	BudgetMinorUnits int
	Items            []CatalogItem
}

// OptimizationResult is the outcome of one optimizer call. SelectedAllocations
// is sorted by total descending, ties kept in catalog order.
type OptimizationResult struct {
	BudgetMinorUnits    int                  `json:"budget_minor_units" example:"500"`
	SelectedAllocations []SelectedAllocation `json:"selected_allocations"`
	MatchQuality        MatchQuality         `json:"match_quality"`
}

// TotalSpentMinorUnits sums the allocation totals.
func (r OptimizationResult) TotalSpentMinorUnits() int {
	total := 0
	for _, a := range r.SelectedAllocations {
		total += a.TotalMinorUnits()
	}
	return total
}

// RemainingMinorUnits is the budget left after all allocations.
func (r OptimizationResult) RemainingMinorUnits() int {
	return r.BudgetMinorUnits - r.TotalSpentMinorUnits()
}

// Clone returns a deep copy so cached results can be handed out safely.
func (r OptimizationResult) Clone() OptimizationResult {
	out := r
	out.SelectedAllocations = make([]SelectedAllocation, len(r.SelectedAllocations))
	copy(out.SelectedAllocations, r.SelectedAllocations)
	return out
}

// NoSolutionResult returns a present result with no allocations.
func NoSolutionResult(budgetMinorUnits int) OptimizationResult {
	return OptimizationResult{
		BudgetMinorUnits:    budgetMinorUnits,
		SelectedAllocations: []SelectedAllocation{},
		MatchQuality:        NoSolution(),
	}
}
