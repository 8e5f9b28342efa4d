// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/guttosm/balance-service/internal/currency"
	"github.com/guttosm/balance-service/internal/domain/model"
)

// MoneyTextTag is the binding tag for amount strings such as "$12.84".
const MoneyTextTag = "money_text"

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrDuplicateItemID is returned when two catalog items share an id.
	ErrDuplicateItemID = &ValidationError{Field: "items.id", Message: "must be unique"}
	// ErrMissingItemPrice is returned when an item has neither price form.
	ErrMissingItemPrice = &ValidationError{Field: "items.price", Message: "unit_price_minor_units or price is required"}
)

// ValidateMoneyText is a validator.Func accepting empty strings and parseable amounts.
func ValidateMoneyText(fl validator.FieldLevel) bool {
	text := fl.Field().String()
	if text == "" {
		return true
	}
	_, err := currency.ParseMinorUnits(text)
	return err == nil
}

// BudgetInput carries a budget either in minor units or as amount text.
// Minor units win when both are present.
type BudgetInput struct {
	// BudgetMinorUnits is the budget in cents.
	BudgetMinorUnits *int `json:"budget_minor_units,omitempty" example:"1284"`
	// Budget is the budget as text, e.g. "$12.84".
	Budget string `json:"budget,omitempty" binding:"omitempty,money_text" example:"$12.84"`
}

// Resolve returns the budget in minor units. A missing budget resolves to 0,
// which the optimizer rejects as an invalid balance.
func (b BudgetInput) Resolve() (int, error) {
	if b.BudgetMinorUnits != nil {
		return *b.BudgetMinorUnits, nil
	}
	if b.Budget == "" {
		return 0, nil
	}
	return currency.ParseMinorUnits(b.Budget)
}

// CatalogItemRequest is one catalog entry in a request.
//
// @Description Catalog item; give either unit_price_minor_units or price
type CatalogItemRequest struct {
	// ID identifies the item in the response; generated when empty.
	ID   string `json:"id,omitempty" binding:"max=64" example:"coffee"`
	Name string `json:"name" binding:"required,max=100" example:"Coffee"`
	// UnitPriceMinorUnits is the unit price in cents.
	UnitPriceMinorUnits *int `json:"unit_price_minor_units,omitempty" binding:"omitempty,gte=0" example:"428"`
	// Price is the unit price as text, e.g. "4.28".
	Price string `json:"price,omitempty" binding:"omitempty,money_text" example:"4.28"`
	// MandatoryQuantity forces this many units; 0 lets the optimizer choose.
	MandatoryQuantity int `json:"mandatory_quantity" binding:"gte=0,lte=10000" example:"0"`
} // @name CatalogItemRequest

// UnitPrice resolves the item price in minor units.
func (r CatalogItemRequest) UnitPrice() (int, error) {
	if r.UnitPriceMinorUnits != nil {
		return *r.UnitPriceMinorUnits, nil
	}
	if r.Price == "" {
		return 0, ErrMissingItemPrice
	}
	return currency.ParseMinorUnits(r.Price)
}

// OptimizeRequest represents the JSON request body for the optimize endpoint.
//
// @Description Request to spend a balance on a catalog as completely as possible
// @Example {"budget": "12.84", "items": [{"name": "Coffee", "price": "4.28"}]}
type OptimizeRequest struct {
	BudgetInput
	Items []CatalogItemRequest `json:"items" binding:"dive"`
} // @name OptimizeRequest

// ToCatalog converts request items into catalog items, keeping their order.
func ToCatalog(items []CatalogItemRequest) ([]model.CatalogItem, error) {
	catalog := make([]model.CatalogItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		price, err := it.UnitPrice()
		if err != nil {
			return nil, err
		}
		id := it.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateItemID
		}
		seen[id] = struct{}{}
		catalog = append(catalog, model.CatalogItem{
			ID:                  id,
			Name:                it.Name,
			UnitPriceMinorUnits: price,
			MandatoryQuantity:   it.MandatoryQuantity,
		})
	}
	return catalog, nil
}

// ToInput converts the request into optimizer input.
func (r *OptimizeRequest) ToInput() (model.OptimizationInput, error) {
	budget, err := r.Resolve()
	if err != nil {
		return model.OptimizationInput{}, err
	}
	items, err := ToCatalog(r.Items)
	if err != nil {
		return model.OptimizationInput{}, err
	}
	return model.OptimizationInput{BudgetMinorUnits: budget, Items: items}, nil
}

// SavedListRequest creates or replaces a saved item list.
//
// @Description Named item list
// @Example {"name": "Coffee shop", "items": [{"name": "Latte", "price": "4.28"}]}
type SavedListRequest struct {
	Name  string               `json:"name" binding:"required,max=100" example:"Coffee shop"`
	Items []CatalogItemRequest `json:"items" binding:"dive"`
} // @name SavedListRequest

// OptimizeListRequest runs the optimizer on a saved list.
//
// @Description Budget for optimizing a saved list
// @Example {"budget": "25.00"}
type OptimizeListRequest struct {
	BudgetInput
} // @name OptimizeListRequest
