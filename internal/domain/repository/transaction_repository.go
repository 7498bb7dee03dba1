package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// TransactionRepository es el libro mayor de movimientos de stock.
// Solo admite inserción y cambio de estado; los listados van de más reciente a más antiguo.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Transaction, int, error)
	ListByType(ctx context.Context, txType string, limit, offset int) ([]*entity.Transaction, int, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error)
	ListAll(ctx context.Context) ([]*entity.Transaction, error)
	// UpdateStatus devuelve ErrNotFound si la transacción no existe.
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	Count(ctx context.Context) (int, error)
}
