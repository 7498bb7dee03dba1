package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	SKU           string          `json:"sku" validate:"required,max=100"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity" validate:"min=0"`
	CategoryID    string          `json:"categoryId" validate:"required"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl"`
	ExpiryDate    *time.Time      `json:"expiryDate"`
}

// UpdateProductRequest campos de catálogo opcionales. El stock no se edita aquí.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	SKU         *string          `json:"sku" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"categoryId"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl"`
	ExpiryDate  *time.Time       `json:"expiryDate"`
}

// ProductDTO salida de un producto.
type ProductDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    string          `json:"categoryId"`
	Description   string          `json:"description,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	ExpiryDate    *time.Time      `json:"expiryDate,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProductResponse respuesta con un solo producto.
type ProductResponse struct {
	Envelope
	Product *ProductDTO `json:"product"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Envelope
	Products []ProductDTO `json:"products"`
	PageResponse
}
