package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Audit operation labels.
const (
	OpAddProduct     = "Add Product"
	OpUpdateProduct  = "Update Product"
	OpRemoveProduct  = "Remove Product"
	OpAddSupplier    = "Add Supplier"
	OpRemoveSupplier = "Remove Supplier"
)

// LogEntry is one append-only audit record. Data is a copy of the entity at mutation time.
type LogEntry struct {
	ID        uuid.UUID       `json:"id"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}
