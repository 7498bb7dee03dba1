package dto

import "time"

// Tipos de evento del libro mayor.
const (
	EventTransactionCreated       = "transaction.created"
	EventTransactionStatusChanged = "transaction.status_changed"
	EventStockAdjusted            = "stock.adjusted"
)

// LedgerEvent se publica después de confirmar una mutación.
type LedgerEvent struct {
	Type            string    `json:"type"`
	TransactionID   string    `json:"transactionId,omitempty"`
	TransactionType string    `json:"transactionType,omitempty"`
	Status          string    `json:"status,omitempty"`
	ProductID       string    `json:"productId,omitempty"`
	Quantity        int       `json:"quantity,omitempty"`
	StockAfter      int       `json:"stockAfter"`
	OccurredAt      time.Time `json:"occurredAt"`
}
