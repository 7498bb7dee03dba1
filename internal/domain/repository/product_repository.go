package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	UpdateStock(ctx context.Context, id string, quantity int, updatedAt time.Time) error
	// Update reescribe los datos de catálogo; nunca toca StockQuantity.
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve ErrInUse si el producto tiene transacciones.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, int, error)
	ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context, threshold, limit, offset int) ([]*entity.Product, int, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
}
