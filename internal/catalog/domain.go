// Package catalog implements the product, supplier and category entities:
// payload normalisation, persistence and the CRUD web endpoints.
package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryStatus enumerates the lifecycle states of a category.
type CategoryStatus string

const (
	// CategoryStatusActive marks a category available for assignment.
	CategoryStatusActive CategoryStatus = "active"
	// CategoryStatusInactive hides a category from the assignment UI.
	CategoryStatusInactive CategoryStatus = "inactive"
)

// Product is an inventory item. Category and Supplier hold display names
// copied at write time; there is no referential integrity between
// collections, so renaming a supplier does not cascade here.
type Product struct {
	OID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ID          string             `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	SKU         string             `bson:"sku" json:"sku"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Supplier    string             `bson:"supplier" json:"supplier"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Supplier is a vendor record addressed by a numeric application id.
type Supplier struct {
	OID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ID        int64              `bson:"id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     int64              `bson:"phone" json:"phone"`
	Website   string             `bson:"website" json:"website"`
	Address   string             `bson:"address" json:"address"`
	City      string             `bson:"city" json:"city"`
	State     string             `bson:"state" json:"state"`
	Zip       int64              `bson:"zip" json:"zip"`
	Country   string             `bson:"country" json:"country"`
	Notes     string             `bson:"notes" json:"notes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Category groups products by display name.
type Category struct {
	OID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ID          int64              `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Color       string             `bson:"color" json:"color"`
	Icon        string             `bson:"icon" json:"icon"`
	Status      CategoryStatus     `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductPayload is the canonical product record after alias resolution
// and defaulting. Field presence mirrors the storage schema: name, sku,
// category and supplier must be non-empty, numbers must be non-negative.
type ProductPayload struct {
	ID          string  `bson:"id" json:"id" validate:"required"`
	Name        string  `bson:"name" json:"name" validate:"required"`
	SKU         string  `bson:"sku" json:"sku" validate:"required"`
	Category    string  `bson:"category" json:"category" validate:"required"`
	Price       float64 `bson:"price" json:"price" validate:"gte=0"`
	Quantity    int     `bson:"quantity" json:"quantity" validate:"gte=0"`
	Supplier    string  `bson:"supplier" json:"supplier" validate:"required"`
	Description string  `bson:"description" json:"description"`
}

// SupplierPayload is the canonical supplier record.
type SupplierPayload struct {
	ID      int64  `bson:"id" json:"id" validate:"required"`
	Name    string `bson:"name" json:"name" validate:"required"`
	Email   string `bson:"email" json:"email" validate:"required,email"`
	Phone   int64  `bson:"phone" json:"phone"`
	Website string `bson:"website" json:"website"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Zip     int64  `bson:"zip" json:"zip"`
	Country string `bson:"country" json:"country"`
	Notes   string `bson:"notes" json:"notes"`
}

// CategoryPayload is the canonical category record.
type CategoryPayload struct {
	ID          int64          `bson:"id" json:"id" validate:"required"`
	Name        string         `bson:"name" json:"name" validate:"required"`
	Description string         `bson:"description" json:"description"`
	Color       string         `bson:"color" json:"color"`
	Icon        string         `bson:"icon" json:"icon"`
	Status      CategoryStatus `bson:"status" json:"status" validate:"oneof=active inactive"`
}
