package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryLaptop          Category = "Laptop"
	CategoryMobile          Category = "Mobile"
	CategoryPreBuiltDesktop Category = "PreBuilt Desktop"
	CategoryTablet          Category = "Tablet"
	CategoryPCParts         Category = "PC Parts"
	CategoryAccessory       Category = "Accessory"
)

// Validate implements the enum validator contract.
func (c Category) Validate() error {
	switch c {
	case CategoryLaptop, CategoryMobile, CategoryPreBuiltDesktop,
		CategoryTablet, CategoryPCParts, CategoryAccessory:
		return nil
	}
	return fmt.Errorf("unknown category: %q", string(c))
}

type Condition string

const (
	ConditionNew         Condition = "New"
	ConditionRefurbished Condition = "Refurbished"
	ConditionUsed        Condition = "Used"
)

// Validate implements the enum validator contract.
func (c Condition) Validate() error {
	switch c {
	case ConditionNew, ConditionRefurbished, ConditionUsed:
		return nil
	}
	return fmt.Errorf("unknown condition: %q", string(c))
}

// Specifications is the fixed-shape hardware description of a product. Every field is optional.
type Specifications struct {
	Processor       string `json:"processor,omitempty"`
	RAM             string `json:"ram,omitempty"`
	Storage         string `json:"storage,omitempty"`
	DisplaySize     string `json:"display_size,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty"`
	Color           string `json:"color,omitempty"`
	Resolution      string `json:"resolution,omitempty"`
	Camera          string `json:"camera,omitempty"`
}

type Product struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Category        Category       `json:"category"`
	Brand           string         `json:"brand"`
	Sku             string         `json:"sku"`
	QuantityInStock int            `json:"quantity_in_stock"`
	Price           float64        `json:"price"`
	SupplierID      *uuid.UUID     `json:"supplier_id"`
	WarrantyPeriod  string         `json:"warranty_period,omitempty"`
	Condition       Condition      `json:"condition"`
	Specifications  Specifications `json:"specifications"`
	Images          []string       `json:"images"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
