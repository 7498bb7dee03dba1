package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre el cambio de stock y el registro en el libro mayor.
// Un conflicto de concurrencia del almacén se devuelve como domain.ErrConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		supplierRepo repository.SupplierRepository,
		ledgerRepo repository.TransactionRepository,
	) error) error
}

// EventPublisher recibe los eventos del libro mayor una vez confirmada la transacción.
type EventPublisher interface {
	Publish(ctx context.Context, event dto.LedgerEvent) error
}
