package dto

import (
	"time"

	"github.com/guttosm/balance-service/internal/currency"
	"github.com/guttosm/balance-service/internal/domain/model"
)

// SavedItemResponse is an item of a saved list.
type SavedItemResponse struct {
	ID                  string    `json:"id" example:"6c1f0a9e-3f0a-4c7e-9a55-7f0e0e2c1a11"`
	Name                string    `json:"name" example:"Latte"`
	UnitPriceMinorUnits int       `json:"unit_price_minor_units" example:"428"`
	UnitPrice           string    `json:"unit_price" example:"$4.28"`
	MandatoryQuantity   int       `json:"mandatory_quantity" example:"0"`
	CreatedAt           time.Time `json:"created_at"`
} // @name SavedItemResponse

// SavedListResponse is a saved list as returned by the API.
type SavedListResponse struct {
	ID        string              `json:"id" example:"65b2f0c8e4b0a1a2b3c4d5e6"`
	Name      string              `json:"name" example:"Coffee shop"`
	Items     []SavedItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
} // @name SavedListResponse

// SavedListsResponse is a page of saved lists.
type SavedListsResponse struct {
	Lists []SavedListResponse `json:"lists"`
	Count int                 `json:"count" example:"1"`
} // @name SavedListsResponse

// NewSavedListResponse renders a saved list with formatted prices.
func NewSavedListResponse(list *model.SavedList, symbol string) SavedListResponse {
	items := make([]SavedItemResponse, 0, len(list.Items))
	for _, it := range list.Items {
		items = append(items, SavedItemResponse{
			ID:                  it.ID,
			Name:                it.Name,
			UnitPriceMinorUnits: it.UnitPriceMinorUnits,
			UnitPrice:           currency.FormatCurrency(it.UnitPriceMinorUnits, symbol),
			MandatoryQuantity:   it.MandatoryQuantity,
			CreatedAt:           it.CreatedAt,
		})
	}
	return SavedListResponse{
		ID:        list.ID.Hex(),
		Name:      list.Name,
		Items:     items,
		CreatedAt: list.CreatedAt,
		UpdatedAt: list.UpdatedAt,
	}
}

// NewSavedListsResponse renders several saved lists.
func NewSavedListsResponse(lists []model.SavedList, symbol string) SavedListsResponse {
	out := make([]SavedListResponse, 0, len(lists))
	for i := range lists {
		out = append(out, NewSavedListResponse(&lists[i], symbol))
	}
	return SavedListsResponse{Lists: out, Count: len(out)}
}
