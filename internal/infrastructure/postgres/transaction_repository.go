package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, transaction_type, status, total_product, total_price, product_id,
	COALESCE(user_id::text, ''), COALESCE(supplier_id::text, ''), description, note, created_at, updated_at`

// TransactionRepo libro mayor sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del libro mayor.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.Type, &t.Status, &t.TotalProduct, &t.TotalPrice, &t.ProductID,
		&t.UserID, &t.SupplierID, &t.Description, &t.Note, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta una transacción.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, transaction_type, status, total_product, total_price, product_id,
			user_id, supplier_id, description, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Type, t.Status, t.TotalProduct, t.TotalPrice, t.ProductID,
		nullableID(t.UserID), nullableID(t.SupplierID), t.Description, t.Note, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// List lista transacciones paginadas, más recientes primero.
func (r *TransactionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Transaction, int, error) {
	return r.listPaged(ctx, "", nil, limit, offset)
}

// ListByType lista transacciones de un tipo.
func (r *TransactionRepo) ListByType(ctx context.Context, txType string, limit, offset int) ([]*entity.Transaction, int, error) {
	return r.listPaged(ctx, "transaction_type = $1", []any{txType}, limit, offset)
}

func (r *TransactionRepo) listPaged(ctx context.Context, where string, args []any, limit, offset int) ([]*entity.Transaction, int, error) {
	filter := ""
	if where != "" {
		filter = " WHERE " + where
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+filter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM transactions%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		transactionColumns, filter, n+1, n+2)
	list, err := r.query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByProduct lista sin paginar las transacciones de un producto.
func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	if !validID(productID) {
		return []*entity.Transaction{}, nil
	}
	return r.query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE product_id = $1 ORDER BY created_at DESC, id`, productID)
}

// ListAll devuelve el libro mayor completo (más recientes primero).
func (r *TransactionRepo) ListAll(ctx context.Context) ([]*entity.Transaction, error) {
	return r.query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY created_at DESC, id`)
}

// UpdateStatus sobrescribe el estado y updated_at.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	if !validID(id) {
		return domain.NotFoundf("transacción", id)
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE transactions SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("transacción", id)
	}
	return nil
}

// Count devuelve el número de transacciones.
func (r *TransactionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func (r *TransactionRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	list := []*entity.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
