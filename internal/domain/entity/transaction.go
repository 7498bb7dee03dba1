package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro mayor.
const (
	TransactionTypePurchase         = "PURCHASE"
	TransactionTypeSale             = "SALE"
	TransactionTypeReturnToSupplier = "RETURN_TO_SUPPLIER"
)

// Estados de transacción.
const (
	TransactionStatusPending    = "PENDING"
	TransactionStatusProcessing = "PROCESSING"
	TransactionStatusCompleted  = "COMPLETED"
)

// TransactionTypes en el orden en que se reportan.
var TransactionTypes = []string{
	TransactionTypePurchase,
	TransactionTypeSale,
	TransactionTypeReturnToSupplier,
}

// Transaction es el registro de auditoría de un cambio de stock.
// Solo Status y UpdatedAt cambian después de creada; nunca se elimina.
type Transaction struct {
	ID           string
	Type         string
	Status       string
	TotalProduct int
	TotalPrice   decimal.Decimal // negativo en RETURN_TO_SUPPLIER
	ProductID    string
	UserID       string
	SupplierID   string // vacío si no aplica
	Description  string
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParseTransactionType normaliza s y devuelve el tipo si es válido.
func ParseTransactionType(s string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(s))
	switch t {
	case TransactionTypePurchase, TransactionTypeSale, TransactionTypeReturnToSupplier:
		return t, true
	}
	return "", false
}

// ParseTransactionStatus normaliza s y devuelve el estado si es válido.
func ParseTransactionStatus(s string) (string, bool) {
	st := strings.ToUpper(strings.TrimSpace(s))
	switch st {
	case TransactionStatusPending, TransactionStatusProcessing, TransactionStatusCompleted:
		return st, true
	}
	return "", false
}
