package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout read by balancectl:
//
//	items:
//	  - id: tip
//	    name: Tip
//	    price: "1.00"
//	    mandatory_quantity: 1
//	  - name: Latte
//	    unit_price_minor_units: 428
type catalogFile struct {
	Items []catalogItem `yaml:"items" validate:"required,min=1,dive"`
}

type catalogItem struct {
	ID                  string `yaml:"id" validate:"max=64"`
	Name                string `yaml:"name" validate:"required,max=100"`
	Price               string `yaml:"price"`
	UnitPriceMinorUnits *int   `yaml:"unit_price_minor_units" validate:"omitempty,gte=0"`
	MandatoryQuantity   int    `yaml:"mandatory_quantity" validate:"gte=0,lte=10000"`
}

var catalogValidator = validator.New(validator.WithRequiredStructEnabled())

func loadCatalog(path string) ([]model.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	items, err := decodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return items, nil
}

func decodeCatalog(r io.Reader) ([]model.CatalogItem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := catalogValidator.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	requests := make([]dto.CatalogItemRequest, 0, len(file.Items))
	for _, it := range file.Items {
		requests = append(requests, dto.CatalogItemRequest{
			ID:                  it.ID,
			Name:                it.Name,
			UnitPriceMinorUnits: it.UnitPriceMinorUnits,
			Price:               it.Price,
			MandatoryQuantity:   it.MandatoryQuantity,
		})
	}
	return dto.ToCatalog(requests)
}
