package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// StockQuantity solo cambia a través del motor de stock; nunca es negativo.
type Product struct {
	ID            string
	CategoryID    string
	SKU           string // único sin distinguir mayúsculas; se guarda normalizado
	Name          string
	Description   string
	ImageURL      string
	Price         decimal.Decimal
	StockQuantity int
	ExpiryDate    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasStock indica si hay al menos qty unidades disponibles.
func (p *Product) HasStock(qty int) bool {
	return p.StockQuantity >= qty
}
