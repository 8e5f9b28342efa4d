package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedItem is an item stored inside a SavedList. It only lives inside its
// list, so deleting the list removes its items.
type SavedItem struct {
	ID                  string    `bson:"id" json:"id"`
	Name                string    `bson:"name" json:"name"`
	UnitPriceMinorUnits int       `bson:"unit_price_minor_units" json:"unit_price_minor_units"`
	MandatoryQuantity   int       `bson:"mandatory_quantity" json:"mandatory_quantity"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
}

// SavedList is a named, persisted catalog.
type SavedList struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   string             `bson:"owner_id" json:"owner_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Items     []SavedItem        `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Catalog returns the list items as optimizer catalog items, in stored order.
func (l SavedList) Catalog() []CatalogItem {
	items := make([]CatalogItem, 0, len(l.Items))
	for _, it := range l.Items {
		items = append(items, CatalogItem{
			ID:                  it.ID,
			Name:                it.Name,
			UnitPriceMinorUnits: it.UnitPriceMinorUnits,
			MandatoryQuantity:   it.MandatoryQuantity,
		})
	}
	return items
}

// SavedItemsFromCatalog stamps catalog items as saved items created at now.
func SavedItemsFromCatalog(items []CatalogItem, now time.Time) []SavedItem {
	saved := make([]SavedItem, 0, len(items))
	for _, it := range items {
		saved = append(saved, SavedItem{
			ID:                  it.ID,
			Name:                it.Name,
			UnitPriceMinorUnits: it.UnitPriceMinorUnits,
			MandatoryQuantity:   it.MandatoryQuantity,
			CreatedAt:           now,
		})
	}
	return saved
}
