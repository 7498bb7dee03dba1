// Package ledger expone las lecturas del libro mayor de transacciones y el cambio de estado.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// LedgerUseCase consultas sobre transacciones y actualización de estado.
type LedgerUseCase struct {
	ledgerRepo   repository.TransactionRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	publisher    inventory.EventPublisher
	log          *logger.Logger
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso. publisher puede ser nil.
func NewLedgerUseCase(
	ledgerRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	publisher inventory.EventPublisher,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		ledgerRepo:   ledgerRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		log:          log,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj usado para UpdatedAt.
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// GetByID devuelve la transacción con producto, proveedor y usuario resueltos.
func (uc *LedgerUseCase) GetByID(ctx context.Context, id string) (*dto.TransactionDTO, error) {
	tx, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.NotFoundf("transacción", id)
	}
	out, err := newResolver(uc).toDTO(ctx, tx, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List lista todas las transacciones, más recientes primero.
func (uc *LedgerUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.TransactionDTO, dto.PageResponse, error) {
	page.DefaultPage()
	list, total, err := uc.ledgerRepo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out, err := newResolver(uc).toDTOs(ctx, list)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	return out, dto.NewPageResponse(page, total), nil
}

// ListByType lista las transacciones de un tipo (PURCHASE, SALE, RETURN_TO_SUPPLIER).
func (uc *LedgerUseCase) ListByType(ctx context.Context, txType string, page dto.PageRequest) ([]dto.TransactionDTO, dto.PageResponse, error) {
	t, ok := entity.ParseTransactionType(txType)
	if !ok {
		return nil, dto.PageResponse{}, domain.Invalidf("tipo de transacción inválido: %s", txType)
	}
	page.DefaultPage()
	list, total, err := uc.ledgerRepo.ListByType(ctx, t, page.Limit(), page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out, err := newResolver(uc).toDTOs(ctx, list)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	return out, dto.NewPageResponse(page, total), nil
}

// ListByProduct lista sin paginar las transacciones de un producto.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.TransactionDTO, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto", productID)
	}
	list, err := uc.ledgerRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	r := newResolver(uc)
	r.products[product.ID] = product
	return r.toDTOs(ctx, list)
}

// UpdateStatus sobrescribe el estado y refresca UpdatedAt.
// Cualquier estado válido se acepta desde cualquier otro.
func (uc *LedgerUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.TransactionDTO, error) {
	st, ok := entity.ParseTransactionStatus(status)
	if !ok {
		return nil, domain.Invalidf("estado inválido: %s", status)
	}
	now := uc.now()
	if err := uc.ledgerRepo.UpdateStatus(ctx, id, st, now); err != nil {
		return nil, err
	}
	out, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("transaction_id", id).Str("status", st).Msg("estado de transacción actualizado")
	if uc.publisher != nil {
		event := dto.LedgerEvent{
			Type:            dto.EventTransactionStatusChanged,
			TransactionID:   out.ID,
			TransactionType: out.Type,
			Status:          out.Status,
			ProductID:       out.ProductID,
			Quantity:        out.TotalProduct,
			OccurredAt:      now,
		}
		if p, err := uc.productRepo.GetByID(ctx, out.ProductID); err == nil && p != nil {
			event.StockAfter = p.StockQuantity
		}
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.log.Error().Err(err).Str("event", event.Type).Msg("publicar evento del libro mayor")
		}
	}
	return out, nil
}

// resolver cachea las entidades referenciadas durante una sola consulta.
type resolver struct {
	uc        *LedgerUseCase
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	users     map[string]*entity.User
}

func newResolver(uc *LedgerUseCase) *resolver {
	return &resolver{
		uc:        uc,
		products:  make(map[string]*entity.Product),
		suppliers: make(map[string]*entity.Supplier),
		users:     make(map[string]*entity.User),
	}
}

func (r *resolver) toDTOs(ctx context.Context, list []*entity.Transaction) ([]dto.TransactionDTO, error) {
	out := make([]dto.TransactionDTO, 0, len(list))
	for _, tx := range list {
		d, err := r.toDTO(ctx, tx, false)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *resolver) toDTO(ctx context.Context, tx *entity.Transaction, detail bool) (dto.TransactionDTO, error) {
	out := ToTransactionDTO(tx)

	product, ok := r.products[tx.ProductID]
	if !ok {
		p, err := r.uc.productRepo.GetByID(ctx, tx.ProductID)
		if err != nil {
			return out, fmt.Errorf("resolver producto: %w", err)
		}
		product = p
		r.products[tx.ProductID] = p
	}
	if product != nil {
		out.Product = &dto.ProductSummaryDTO{ID: product.ID, Name: product.Name, SKU: product.SKU}
	}
	if !detail {
		return out, nil
	}

	if tx.SupplierID != "" {
		supplier, ok := r.suppliers[tx.SupplierID]
		if !ok {
			s, err := r.uc.supplierRepo.GetByID(ctx, tx.SupplierID)
			if err != nil {
				return out, fmt.Errorf("resolver proveedor: %w", err)
			}
			supplier = s
			r.suppliers[tx.SupplierID] = s
		}
		if supplier != nil {
			out.SupplierName = supplier.Name
		}
	}
	if tx.UserID != "" {
		user, ok := r.users[tx.UserID]
		if !ok {
			u, err := r.uc.userRepo.GetByID(ctx, tx.UserID)
			if err != nil {
				return out, fmt.Errorf("resolver usuario: %w", err)
			}
			user = u
			r.users[tx.UserID] = u
		}
		if user != nil {
			out.UserName = user.Name
		}
	}
	return out, nil
}

// ToTransactionDTO mapea la entidad sin resolver referencias.
func ToTransactionDTO(tx *entity.Transaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:           tx.ID,
		Type:         tx.Type,
		Status:       tx.Status,
		TotalProduct: tx.TotalProduct,
		TotalPrice:   tx.TotalPrice,
		ProductID:    tx.ProductID,
		UserID:       tx.UserID,
		SupplierID:   tx.SupplierID,
		Description:  tx.Description,
		Note:         tx.Note,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}
