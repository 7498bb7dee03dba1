package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Con tx != nil las escrituras quedan pendientes.
type ProductRepo struct {
	s  *Store
	tx *txState
}

// Create guarda el producto; el SKU es único sin distinguir mayúsculas.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if strings.EqualFold(existing.SKU, p.SKU) {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) get(id string) (*entity.Product, bool) {
	if r.tx != nil {
		if p, ok := r.tx.products[id]; ok {
			return &p, true
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetByID devuelve una copia del producto o nil.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, _ := r.get(id)
	return p, nil
}

// GetForUpdate equivale a GetByID: el TxRunner ya serializa las unidades atómicas.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetBySKU busca por SKU sin distinguir mayúsculas.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if strings.EqualFold(p.SKU, sku) {
			return &p, nil
		}
	}
	return nil, nil
}

// UpdateStock fija la cantidad en stock. Rechaza valores negativos.
func (r *ProductRepo) UpdateStock(_ context.Context, id string, quantity int, updatedAt time.Time) error {
	if quantity < 0 {
		return fmt.Errorf("%w: stock negativo para producto %s", domain.ErrInvalidInput, id)
	}
	p, ok := r.get(id)
	if !ok {
		return domain.NotFoundf("producto", id)
	}
	p.StockQuantity = quantity
	p.UpdatedAt = updatedAt
	if r.tx != nil {
		r.tx.products[id] = *p
		return nil
	}
	r.s.mu.Lock()
	r.s.products[id] = *p
	r.s.mu.Unlock()
	return nil
}

func (r *ProductRepo) filter(keep func(p *entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if keep == nil || keep(&p) {
			out = append(out, &p)
		}
	}
	return out
}

func (r *ProductRepo) listPaged(keep func(p *entity.Product) bool, limit, offset int) ([]*entity.Product, int, error) {
	list := r.filter(keep)
	sortProducts(list, newestFirst)
	return paginate(list, limit, offset), len(list), nil
}

// List lista productos paginados, más recientes primero.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, int, error) {
	return r.listPaged(nil, limit, offset)
}

// ListByCategory lista productos de una categoría.
func (r *ProductRepo) ListByCategory(_ context.Context, categoryID string, limit, offset int) ([]*entity.Product, int, error) {
	return r.listPaged(func(p *entity.Product) bool { return p.CategoryID == categoryID }, limit, offset)
}

// ListLowStock lista productos con stock en o bajo el umbral.
func (r *ProductRepo) ListLowStock(_ context.Context, threshold, limit, offset int) ([]*entity.Product, int, error) {
	return r.listPaged(func(p *entity.Product) bool { return p.StockQuantity <= threshold }, limit, offset)
}

// ListAll devuelve todos los productos, más antiguos primero.
func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	list := r.filter(nil)
	sortProducts(list, oldestFirst)
	return list, nil
}

// Count devuelve el número de productos.
func (r *ProductRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.products), nil
}

// Update reescribe los datos de catálogo conservando el stock guardado.
// Toma txMu para no pisar ni ser pisado por una unidad atómica en curso.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[p.ID]
	if !ok {
		return domain.NotFoundf("producto", p.ID)
	}
	for id, existing := range r.s.products {
		if id != p.ID && strings.EqualFold(existing.SKU, p.SKU) {
			return domain.ErrDuplicate
		}
	}
	updated := *p
	updated.StockQuantity = current.StockQuantity
	updated.CreatedAt = current.CreatedAt
	r.s.products[p.ID] = updated
	return nil
}

// Delete elimina el producto si no tiene transacciones.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.NotFoundf("producto", id)
	}
	for _, t := range r.s.transactions {
		if t.ProductID == id {
			return fmt.Errorf("%w: el producto %s tiene transacciones", domain.ErrInUse, id)
		}
	}
	delete(r.s.products, id)
	return nil
}
