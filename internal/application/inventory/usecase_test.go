package inventory_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

const (
	productID  = "11111111-1111-1111-1111-111111111111"
	supplierID = "22222222-2222-2222-2222-222222222222"
	userID     = "33333333-3333-3333-3333-333333333333"
)

// recorder guarda los eventos publicados.
type recorder struct {
	mu     sync.Mutex
	events []dto.LedgerEvent
}

func (r *recorder) Publish(_ context.Context, e dto.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) all() []dto.LedgerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dto.LedgerEvent(nil), r.events...)
}

// seedStore crea un almacén con un producto de precio 9.99 y el stock indicado.
func seedStore(t *testing.T, stock int) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID:            productID,
		SKU:           "ARZ-001",
		Name:          "Arroz",
		Price:         decimal.RequireFromString("9.99"),
		StockQuantity: stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: supplierID, Name: "Distribuidora Andina", CreatedAt: now}))
	return store
}

func newEngine(store *memory.Store, pub inventory.EventPublisher) *inventory.StockMutationUseCase {
	return inventory.NewStockMutationUseCase(store.TxRunner(), pub, inventory.Config{RetryBackoff: time.Millisecond}, nil)
}

func stockOf(t *testing.T, store *memory.Store) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func ledgerSize(t *testing.T, store *memory.Store) int {
	t.Helper()
	n, err := store.Transactions().Count(context.Background())
	require.NoError(t, err)
	return n
}

func input(qty int) inventory.MutationInput {
	return inventory.MutationInput{ProductID: productID, Quantity: qty, UserID: userID}
}

func TestPurchase_SumaStockYRegistraTransaccion(t *testing.T) {
	store := seedStore(t, 5)
	uc := newEngine(store, nil)

	in := input(3)
	in.SupplierID = supplierID
	in.Description = "reposición"
	tx, err := uc.Purchase(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 8, stockOf(t, store))
	assert.Equal(t, entity.TransactionTypePurchase, tx.Type)
	assert.Equal(t, entity.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, 3, tx.TotalProduct)
	assert.True(t, tx.TotalPrice.Equal(decimal.RequireFromString("29.97")), "got %s", tx.TotalPrice)
	assert.Equal(t, supplierID, tx.SupplierID)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, tx.CreatedAt, tx.UpdatedAt)

	stored, err := store.Transactions().GetByID(context.Background(), tx.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "reposición", stored.Description)
}

func TestSell_RestaStock(t *testing.T) {
	store := seedStore(t, 5)
	uc := newEngine(store, nil)

	tx, err := uc.Sell(context.Background(), input(2))
	require.NoError(t, err)

	assert.Equal(t, 3, stockOf(t, store))
	assert.Equal(t, entity.TransactionTypeSale, tx.Type)
	assert.True(t, tx.TotalPrice.Equal(decimal.RequireFromString("19.98")))
}

func TestSell_IgnoraProveedor(t *testing.T) {
	store := seedStore(t, 5)
	uc := newEngine(store, nil)

	in := input(1)
	in.SupplierID = "no-existe"
	tx, err := uc.Sell(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, tx.SupplierID)
}

func TestReturnToSupplier_TotalNegativo(t *testing.T) {
	store := seedStore(t, 5)
	uc := newEngine(store, nil)

	in := input(2)
	in.SupplierID = supplierID
	tx, err := uc.ReturnToSupplier(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 3, stockOf(t, store))
	assert.Equal(t, entity.TransactionTypeReturnToSupplier, tx.Type)
	assert.True(t, tx.TotalPrice.Equal(decimal.RequireFromString("-19.98")), "got %s", tx.TotalPrice)
}

func TestSell_StockInsuficiente(t *testing.T) {
	store := seedStore(t, 5)
	uc := newEngine(store, nil)
	ctx := context.Background()

	_, err := uc.Sell(ctx, input(5))
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, store))

	_, err = uc.Sell(ctx, input(1))
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, 1, stockErr.Requested)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, "stock insuficiente. Disponible: 0, Solicitado: 1", err.Error())

	assert.Equal(t, 0, stockOf(t, store))
	assert.Equal(t, 1, ledgerSize(t, store))
}

func TestReturnToSupplier_SinStockNoDejaRastro(t *testing.T) {
	store := seedStore(t, 2)
	uc := newEngine(store, nil)

	_, err := uc.ReturnToSupplier(context.Background(), input(3))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, stockOf(t, store))
	assert.Equal(t, 0, ledgerSize(t, store))
}

func TestMutation_Validacion(t *testing.T) {
	store := seedStore(t, 5)
	uc := newEngine(store, nil)
	ctx := context.Background()

	_, err := uc.Purchase(ctx, input(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Sell(ctx, input(-2))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Purchase(ctx, inventory.MutationInput{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 5, stockOf(t, store))
	assert.Equal(t, 0, ledgerSize(t, store))
}

func TestMutation_ProductoNoExiste(t *testing.T) {
	store := seedStore(t, 5)
	uc := newEngine(store, nil)
	ctx := context.Background()

	_, err := uc.Purchase(ctx, inventory.MutationInput{ProductID: "desconocido", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in := input(1)
	in.SupplierID = "desconocido"
	_, err = uc.Purchase(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 5, stockOf(t, store))
	assert.Equal(t, 0, ledgerSize(t, store))
}

func TestSell_ConcurrenteNuncaSobrevende(t *testing.T) {
	const (
		stock    = 5
		attempts = 20
	)
	store := seedStore(t, stock)
	uc := newEngine(store, nil)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Sell(context.Background(), input(1))
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, stock, succeeded.Load())
	assert.EqualValues(t, attempts-stock, rejected.Load())
	assert.Equal(t, 0, stockOf(t, store))
	assert.Equal(t, stock, ledgerSize(t, store))
}

// Tras cualquier secuencia de operaciones el stock es el inicial más los ajustes
// manuales más compras menos ventas y devoluciones registradas en el libro mayor.
func TestMutation_StockCuadraConLibroMayor(t *testing.T) {
	const initial = 10
	store := seedStore(t, initial)
	uc := newEngine(store, nil)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	adjustOps := []string{"add", "subtract", "set"}

	adjusted := 0
	for i := 0; i < 300; i++ {
		qty := rng.Intn(6) + 1
		before := stockOf(t, store)
		var err error
		switch rng.Intn(4) {
		case 0:
			_, err = uc.Purchase(ctx, input(qty))
			if err == nil {
				assert.Equal(t, before+qty, stockOf(t, store))
			}
		case 1:
			_, err = uc.Sell(ctx, input(qty))
			if err == nil {
				assert.Equal(t, before-qty, stockOf(t, store))
			}
		case 2:
			_, err = uc.ReturnToSupplier(ctx, input(qty))
			if err == nil {
				assert.Equal(t, before-qty, stockOf(t, store))
			}
		default:
			var p *entity.Product
			p, err = uc.AdjustStock(ctx, productID, qty, adjustOps[rng.Intn(len(adjustOps))])
			if err == nil {
				adjusted += p.StockQuantity - before
			}
		}
		if err != nil {
			assert.Equal(t, before, stockOf(t, store), "una operación rechazada no toca el stock")
		}
		require.GreaterOrEqual(t, stockOf(t, store), 0)
	}

	list, err := store.Transactions().ListByProduct(ctx, productID)
	require.NoError(t, err)
	expected := initial + adjusted
	for _, tx := range list {
		switch tx.Type {
		case entity.TransactionTypePurchase:
			expected += tx.TotalProduct
		default:
			expected -= tx.TotalProduct
		}
	}
	assert.Equal(t, expected, stockOf(t, store))
}

func TestMutation_VentaYCompraRestauranStock(t *testing.T) {
	store := seedStore(t, 7)
	uc := newEngine(store, nil)
	ctx := context.Background()

	_, err := uc.Sell(ctx, input(4))
	require.NoError(t, err)
	_, err = uc.Purchase(ctx, input(4))
	require.NoError(t, err)

	assert.Equal(t, 7, stockOf(t, store))
	assert.Equal(t, 2, ledgerSize(t, store))
}

func TestMutation_CompraYDevolucionRestauranStock(t *testing.T) {
	store := seedStore(t, 0)
	uc := newEngine(store, nil)
	ctx := context.Background()

	_, err := uc.Purchase(ctx, input(6))
	require.NoError(t, err)
	ret, err := uc.ReturnToSupplier(ctx, input(6))
	require.NoError(t, err)

	assert.Equal(t, 0, stockOf(t, store))
	assert.True(t, ret.TotalPrice.IsNegative())
	assert.Equal(t, 2, ledgerSize(t, store))
}

func TestMutation_PublicaEvento(t *testing.T) {
	store := seedStore(t, 5)
	pub := &recorder{}
	uc := newEngine(store, pub)

	tx, err := uc.Sell(context.Background(), input(2))
	require.NoError(t, err)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, dto.EventTransactionCreated, events[0].Type)
	assert.Equal(t, tx.ID, events[0].TransactionID)
	assert.Equal(t, entity.TransactionTypeSale, events[0].TransactionType)
	assert.Equal(t, 3, events[0].StockAfter)

	_, err = uc.Sell(context.Background(), input(10))
	require.Error(t, err)
	assert.Len(t, pub.all(), 1, "una mutación rechazada no publica eventos")
}

func TestMutation_UsaReloj(t *testing.T) {
	store := seedStore(t, 5)
	at := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	uc := newEngine(store, nil).WithClock(func() time.Time { return at })

	tx, err := uc.Purchase(context.Background(), input(1))
	require.NoError(t, err)
	assert.Equal(t, at, tx.CreatedAt)

	p, err := store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, at, p.UpdatedAt)
}

func TestAdjustStock_Operaciones(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		operation string
		want      int
	}{
		{"suma", 3, "add", 8},
		{"resta", 2, "subtract", 3},
		{"fija", 42, "set", 42},
		{"fija en cero", 0, "SET", 0},
		{"mayúsculas", 1, " Add ", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seedStore(t, 5)
			pub := &recorder{}
			uc := newEngine(store, pub)

			p, err := uc.AdjustStock(context.Background(), productID, tt.quantity, tt.operation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.StockQuantity)
			assert.Equal(t, tt.want, stockOf(t, store))
			assert.Equal(t, 0, ledgerSize(t, store), "el ajuste no registra transacción")

			events := pub.all()
			require.Len(t, events, 1)
			assert.Equal(t, dto.EventStockAdjusted, events[0].Type)
			assert.Equal(t, tt.want, events[0].StockAfter)
		})
	}
}

func TestAdjustStock_Rechazos(t *testing.T) {
	store := seedStore(t, 5)
	uc := newEngine(store, nil)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, productID, 1, "multiply")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustStock(ctx, productID, -1, "add")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustStock(ctx, productID, 6, "subtract")
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 5, stockErr.Available)

	_, err = uc.AdjustStock(ctx, "desconocido", 1, "add")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 5, stockOf(t, store))
}

// flakyRunner devuelve ErrConflict las primeras failures veces y luego delega.
type flakyRunner struct {
	inner    inventory.TxRunner
	failures int32
	calls    atomic.Int32
}

func (r *flakyRunner) Run(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.SupplierRepository,
	repository.TransactionRepository,
) error) error {
	if r.calls.Add(1) <= r.failures {
		return domain.ErrConflict
	}
	return r.inner.Run(ctx, fn)
}

func TestMutation_ReintentaAnteConflicto(t *testing.T) {
	store := seedStore(t, 5)
	runner := &flakyRunner{inner: store.TxRunner(), failures: 2}
	uc := inventory.NewStockMutationUseCase(runner, nil, inventory.Config{MaxRetries: 3, RetryBackoff: time.Millisecond}, nil)

	_, err := uc.Sell(context.Background(), input(1))
	require.NoError(t, err)
	assert.EqualValues(t, 3, runner.calls.Load())
	assert.Equal(t, 4, stockOf(t, store))
	assert.Equal(t, 1, ledgerSize(t, store))
}

func TestMutation_DesisteTrasMaxReintentos(t *testing.T) {
	store := seedStore(t, 5)
	runner := &flakyRunner{inner: store.TxRunner(), failures: 100}
	uc := inventory.NewStockMutationUseCase(runner, nil, inventory.Config{MaxRetries: 3, RetryBackoff: time.Millisecond}, nil)

	_, err := uc.Sell(context.Background(), input(1))
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualValues(t, 3, runner.calls.Load())
	assert.Equal(t, 5, stockOf(t, store))
}

func TestMutation_NoReintentaErroresDeNegocio(t *testing.T) {
	store := seedStore(t, 0)
	runner := &flakyRunner{inner: store.TxRunner()}
	uc := inventory.NewStockMutationUseCase(runner, nil, inventory.Config{MaxRetries: 3, RetryBackoff: time.Millisecond}, nil)

	_, err := uc.Sell(context.Background(), input(1))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 1, runner.calls.Load())
}

func TestFromRequest_Mapeo(t *testing.T) {
	in := inventory.FromRequest(userID, dto.TransactionRequest{
		ProductID: productID, Quantity: 4, SupplierID: supplierID, Description: "d", Note: "n",
	})
	assert.Equal(t, inventory.MutationInput{
		ProductID: productID, Quantity: 4, UserID: userID, SupplierID: supplierID, Description: "d", Note: "n",
	}, in)
}
