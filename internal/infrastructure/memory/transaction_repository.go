package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro mayor en memoria. Dentro de una unidad atómica las
// inserciones quedan pendientes hasta que el TxRunner las aplica.
type TransactionRepo struct {
	s  *Store
	tx *txState
}

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	if r.tx != nil {
		r.tx.transactions = append(r.tx.transactions, *t)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TransactionRepo) filter(keep func(t *entity.Transaction) bool) []*entity.Transaction {
	r.s.mu.RLock()
	out := make([]*entity.Transaction, 0, len(r.s.transactions))
	for _, t := range r.s.transactions {
		if keep == nil || keep(&t) {
			out = append(out, &t)
		}
	}
	r.s.mu.RUnlock()
	slices.SortFunc(out, func(a, b *entity.Transaction) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}

func (r *TransactionRepo) List(_ context.Context, limit, offset int) ([]*entity.Transaction, int, error) {
	list := r.filter(nil)
	return paginate(list, limit, offset), len(list), nil
}

func (r *TransactionRepo) ListByType(_ context.Context, txType string, limit, offset int) ([]*entity.Transaction, int, error) {
	list := r.filter(func(t *entity.Transaction) bool { return t.Type == txType })
	return paginate(list, limit, offset), len(list), nil
}

func (r *TransactionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Transaction, error) {
	return r.filter(func(t *entity.Transaction) bool { return t.ProductID == productID }), nil
}

func (r *TransactionRepo) ListAll(_ context.Context) ([]*entity.Transaction, error) {
	return r.filter(nil), nil
}

// UpdateStatus sobrescribe el estado sin validar la transición.
func (r *TransactionRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return domain.NotFoundf("transacción", id)
	}
	t.Status = status
	t.UpdatedAt = updatedAt
	r.s.transactions[id] = t
	return nil
}

func (r *TransactionRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.transactions), nil
}
