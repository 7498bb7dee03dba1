package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest cuerpo de POST /api/transactions/purchase|sell|return.
type TransactionRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	SupplierID  string `json:"supplierId"`
	Description string `json:"description" validate:"max=500"`
	Note        string `json:"note" validate:"max=500"`
}

// ProductSummaryDTO datos mínimos del producto dentro de una transacción.
type ProductSummaryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// TransactionDTO representación de una transacción del libro mayor.
type TransactionDTO struct {
	ID           string             `json:"id"`
	Type         string             `json:"transactionType"`
	Status       string             `json:"status"`
	TotalProduct int                `json:"totalProduct"`
	TotalPrice   decimal.Decimal    `json:"totalPrice"`
	ProductID    string             `json:"productId"`
	UserID       string             `json:"userId"`
	SupplierID   string             `json:"supplierId,omitempty"`
	Description  string             `json:"description,omitempty"`
	Note         string             `json:"note,omitempty"`
	Product      *ProductSummaryDTO `json:"product,omitempty"`
	SupplierName string             `json:"supplierName,omitempty"`
	UserName     string             `json:"userName,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// TransactionResponse respuesta con una sola transacción.
type TransactionResponse struct {
	Envelope
	Transaction *TransactionDTO `json:"transaction"`
}

// TransactionListResponse respuesta con una lista de transacciones (paginada o no).
type TransactionListResponse struct {
	Envelope
	Transactions []TransactionDTO `json:"transactions"`
	*PageResponse
}
