package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// Operaciones de ajuste directo de stock.
const (
	AdjustAdd      = "add"
	AdjustSubtract = "subtract"
	AdjustSet      = "set"
)

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 20 * time.Millisecond
)

// Config parámetros del motor de stock.
type Config struct {
	MaxRetries   int           // intentos ante conflicto de concurrencia (mínimo 1)
	RetryBackoff time.Duration // espera base entre intentos, crece linealmente
}

// MutationInput entrada común para compra, venta y devolución.
type MutationInput struct {
	ProductID   string
	Quantity    int
	UserID      string
	SupplierID  string
	Description string
	Note        string
}

// StockMutationUseCase aplica compras, ventas, devoluciones y ajustes de stock.
// Cada operación bloquea la fila del producto (SELECT FOR UPDATE) y escribe el stock
// y la transacción del libro mayor en la misma unidad atómica.
type StockMutationUseCase struct {
	txRunner  TxRunner
	publisher EventPublisher
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewStockMutationUseCase construye el caso de uso. publisher puede ser nil.
func NewStockMutationUseCase(txRunner TxRunner, publisher EventPublisher, cfg Config, log *logger.Logger) *StockMutationUseCase {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockMutationUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj usado para CreatedAt/UpdatedAt.
func (uc *StockMutationUseCase) WithClock(now func() time.Time) *StockMutationUseCase {
	uc.now = now
	return uc
}

// Purchase suma quantity al stock y registra una transacción PURCHASE.
func (uc *StockMutationUseCase) Purchase(ctx context.Context, in MutationInput) (*entity.Transaction, error) {
	return uc.record(ctx, entity.TransactionTypePurchase, in)
}

// Sell resta quantity del stock y registra una transacción SALE.
// Falla con *domain.InsufficientStockError si no hay unidades suficientes.
func (uc *StockMutationUseCase) Sell(ctx context.Context, in MutationInput) (*entity.Transaction, error) {
	// La venta no referencia proveedor.
	in.SupplierID = ""
	return uc.record(ctx, entity.TransactionTypeSale, in)
}

// ReturnToSupplier resta quantity del stock y registra una transacción RETURN_TO_SUPPLIER
// con precio total negativo.
func (uc *StockMutationUseCase) ReturnToSupplier(ctx context.Context, in MutationInput) (*entity.Transaction, error) {
	return uc.record(ctx, entity.TransactionTypeReturnToSupplier, in)
}

func validateMutation(in MutationInput) error {
	if strings.TrimSpace(in.ProductID) == "" {
		return domain.Invalidf("productId es requerido")
	}
	if in.Quantity <= 0 {
		return domain.Invalidf("la cantidad debe ser mayor que 0")
	}
	return nil
}

func (uc *StockMutationUseCase) record(ctx context.Context, txType string, in MutationInput) (*entity.Transaction, error) {
	if err := validateMutation(in); err != nil {
		return nil, err
	}

	var (
		created    *entity.Transaction
		stockAfter int
	)
	err := uc.withRetry(ctx, txType, func() error {
		return uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			supplierRepo repository.SupplierRepository,
			ledgerRepo repository.TransactionRepository,
		) error {
			// Bloquea la fila del producto hasta el commit
			product, err := productRepo.GetForUpdate(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NotFoundf("producto", in.ProductID)
			}
			if in.SupplierID != "" {
				supplier, err := supplierRepo.GetByID(ctx, in.SupplierID)
				if err != nil {
					return err
				}
				if supplier == nil {
					return domain.NotFoundf("proveedor", in.SupplierID)
				}
			}

			delta := in.Quantity
			if txType != entity.TransactionTypePurchase {
				if !product.HasStock(in.Quantity) {
					return &domain.InsufficientStockError{Available: product.StockQuantity, Requested: in.Quantity}
				}
				delta = -in.Quantity
			}

			total := product.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
			if txType == entity.TransactionTypeReturnToSupplier {
				total = total.Neg()
			}

			now := uc.now()
			newQty := product.StockQuantity + delta
			if err := productRepo.UpdateStock(ctx, product.ID, newQty, now); err != nil {
				return err
			}
			tx := &entity.Transaction{
				ID:           uuid.New().String(),
				Type:         txType,
				Status:       entity.TransactionStatusCompleted,
				TotalProduct: in.Quantity,
				TotalPrice:   total,
				ProductID:    product.ID,
				UserID:       in.UserID,
				SupplierID:   in.SupplierID,
				Description:  in.Description,
				Note:         in.Note,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := ledgerRepo.Create(ctx, tx); err != nil {
				return err
			}
			created = tx
			stockAfter = newQty
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", created.ID).
		Str("type", txType).
		Str("product_id", created.ProductID).
		Int("quantity", created.TotalProduct).
		Int("stock_after", stockAfter).
		Msg("movimiento de stock registrado")

	uc.publish(ctx, dto.LedgerEvent{
		Type:            dto.EventTransactionCreated,
		TransactionID:   created.ID,
		TransactionType: created.Type,
		Status:          created.Status,
		ProductID:       created.ProductID,
		Quantity:        created.TotalProduct,
		StockAfter:      stockAfter,
		OccurredAt:      created.CreatedAt,
	})
	return created, nil
}

// AdjustStock corrige el stock directamente sin registrar transacción.
// operation: add | subtract | set (sin distinguir mayúsculas).
func (uc *StockMutationUseCase) AdjustStock(ctx context.Context, productID string, quantity int, operation string) (*entity.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Invalidf("productId es requerido")
	}
	op := strings.ToLower(strings.TrimSpace(operation))
	switch op {
	case AdjustAdd, AdjustSubtract, AdjustSet:
	default:
		return nil, domain.Invalidf("operación inválida. Use 'add', 'subtract' o 'set'")
	}
	if quantity < 0 {
		return nil, domain.Invalidf("la cantidad no puede ser negativa")
	}

	var updated *entity.Product
	err := uc.withRetry(ctx, "adjust:"+op, func() error {
		return uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			_ repository.SupplierRepository,
			_ repository.TransactionRepository,
		) error {
			product, err := productRepo.GetForUpdate(ctx, productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NotFoundf("producto", productID)
			}
			newQty := product.StockQuantity
			switch op {
			case AdjustAdd:
				newQty += quantity
			case AdjustSubtract:
				if !product.HasStock(quantity) {
					return &domain.InsufficientStockError{Available: product.StockQuantity, Requested: quantity}
				}
				newQty -= quantity
			case AdjustSet:
				newQty = quantity
			}
			now := uc.now()
			if err := productRepo.UpdateStock(ctx, product.ID, newQty, now); err != nil {
				return err
			}
			product.StockQuantity = newQty
			product.UpdatedAt = now
			updated = product
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", updated.ID).
		Str("operation", op).
		Int("quantity", quantity).
		Int("stock_after", updated.StockQuantity).
		Msg("ajuste de stock aplicado")

	uc.publish(ctx, dto.LedgerEvent{
		Type:       dto.EventStockAdjusted,
		ProductID:  updated.ID,
		Quantity:   quantity,
		StockAfter: updated.StockQuantity,
		OccurredAt: updated.UpdatedAt,
	})
	return updated, nil
}

// withRetry reintenta fn mientras el almacén reporte conflicto de concurrencia.
func (uc *StockMutationUseCase) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= uc.cfg.MaxRetries; attempt++ {
		err = fn()
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		if attempt == uc.cfg.MaxRetries {
			break
		}
		uc.log.Warn().
			Err(err).
			Str("operation", op).
			Int("attempt", attempt).
			Msg("conflicto de concurrencia, reintentando")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * uc.cfg.RetryBackoff):
		}
	}
	return err
}

func (uc *StockMutationUseCase) publish(ctx context.Context, event dto.LedgerEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.Error().Err(err).Str("event", event.Type).Msg("publicar evento del libro mayor")
	}
}
