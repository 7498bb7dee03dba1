package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

const (
	productID  = "11111111-1111-1111-1111-111111111111"
	supplierID = "22222222-2222-2222-2222-222222222222"
	userID     = "33333333-3333-3333-3333-333333333333"
)

var base = time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)

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

type fixture struct {
	store  *memory.Store
	engine *inventory.StockMutationUseCase
	uc     *ledger.LedgerUseCase
	pub    *recorder
}

// newFixture arma el motor con un reloj que avanza un minuto por llamada,
// de modo que cada transacción tenga un createdAt distinto.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: productID, SKU: "ARZ-001", Name: "Arroz",
		Price: decimal.RequireFromString("2.50"), StockQuantity: 100,
		CreatedAt: base, UpdatedAt: base,
	}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: supplierID, Name: "Distribuidora Andina", CreatedAt: base}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: userID, Name: "Laura Gómez", Email: "laura@tienda.co", Role: entity.RoleAdmin, CreatedAt: base,
	}))

	var (
		mu   sync.Mutex
		tick int
	)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	pub := &recorder{}
	engine := inventory.NewStockMutationUseCase(store.TxRunner(), nil, inventory.Config{}, nil).WithClock(clock)
	uc := ledger.NewLedgerUseCase(store.Transactions(), store.Products(), store.Suppliers(), store.Users(), pub, nil).
		WithClock(func() time.Time { return base.Add(24 * time.Hour) })
	return &fixture{store: store, engine: engine, uc: uc, pub: pub}
}

func (f *fixture) purchase(t *testing.T, qty int) *entity.Transaction {
	t.Helper()
	tx, err := f.engine.Purchase(context.Background(), inventory.MutationInput{
		ProductID: productID, Quantity: qty, UserID: userID, SupplierID: supplierID,
	})
	require.NoError(t, err)
	return tx
}

func (f *fixture) sell(t *testing.T, qty int) *entity.Transaction {
	t.Helper()
	tx, err := f.engine.Sell(context.Background(), inventory.MutationInput{ProductID: productID, Quantity: qty, UserID: userID})
	require.NoError(t, err)
	return tx
}

func TestGetByID_ResuelveReferencias(t *testing.T) {
	f := newFixture(t)
	tx := f.purchase(t, 4)

	out, err := f.uc.GetByID(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, tx.ID, out.ID)
	assert.Equal(t, entity.TransactionTypePurchase, out.Type)
	assert.Equal(t, "10", out.TotalPrice.String())
	require.NotNil(t, out.Product)
	assert.Equal(t, "Arroz", out.Product.Name)
	assert.Equal(t, "ARZ-001", out.Product.SKU)
	assert.Equal(t, "Distribuidora Andina", out.SupplierName)
	assert.Equal(t, "Laura Gómez", out.UserName)
}

func TestGetByID_NoExiste(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_RecientesPrimeroPaginado(t *testing.T) {
	f := newFixture(t)
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, f.purchase(t, 1).ID)
	}

	list, page, err := f.uc.List(context.Background(), dto.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[4], list[0].ID)
	assert.Equal(t, ids[3], list[1].ID)
	assert.Equal(t, dto.PageResponse{Page: 0, Size: 2, TotalPages: 3, TotalElements: 5}, page)
	require.NotNil(t, list[0].Product)

	list, _, err = f.uc.List(context.Background(), dto.PageRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ids[0], list[0].ID)

	list, page, err = f.uc.List(context.Background(), dto.PageRequest{Page: 9, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 5, page.TotalElements)
}

func TestList_TamanoPorDefecto(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 1)

	_, page, err := f.uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 1, page.TotalPages)
}

func TestList_PaginaEnormeNoDesborda(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 1)

	var (
		list []dto.TransactionDTO
		page dto.PageResponse
		err  error
	)
	assert.NotPanics(t, func() {
		list, page, err = f.uc.List(context.Background(), dto.PageRequest{Page: 922337203685477581, Size: 10})
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, page.TotalElements)
}

func TestListByType_FiltraPorTipo(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 3)
	sale := f.sell(t, 1)
	f.purchase(t, 2)

	list, page, err := f.uc.ListByType(context.Background(), "sale", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sale.ID, list[0].ID)
	assert.Equal(t, 1, page.TotalElements)

	_, _, err = f.uc.ListByType(context.Background(), "TRANSFER", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListByProduct_FiltraPorProducto(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, 3)
	f.sell(t, 1)

	list, err := f.uc.ListByProduct(context.Background(), productID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.TransactionTypeSale, list[0].Type)

	_, err = f.uc.ListByProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_SobrescribeEnCualquierSentido(t *testing.T) {
	f := newFixture(t)
	tx := f.sell(t, 2)
	ctx := context.Background()

	out, err := f.uc.UpdateStatus(ctx, tx.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, out.Status)
	assert.Equal(t, tx.CreatedAt, out.CreatedAt)
	assert.Equal(t, base.Add(24*time.Hour), out.UpdatedAt)

	out, err = f.uc.UpdateStatus(ctx, tx.ID, entity.TransactionStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusProcessing, out.Status)

	// el cambio de estado no toca el stock
	p, err := f.store.Products().GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 98, p.StockQuantity)

	require.Len(t, f.pub.events, 2)
	assert.Equal(t, dto.EventTransactionStatusChanged, f.pub.events[0].Type)
	assert.Equal(t, entity.TransactionStatusPending, f.pub.events[0].Status)
	assert.Equal(t, 98, f.pub.events[0].StockAfter)
}

func TestUpdateStatus_Rechazos(t *testing.T) {
	f := newFixture(t)
	tx := f.sell(t, 1)
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, tx.ID, "CANCELLED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateStatus(ctx, "no-existe", entity.TransactionStatusPending)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.pub.events)
}

// fakeGenerator devuelve un PDF mínimo o el error configurado.
type fakeGenerator struct {
	got dto.TransactionDTO
	err error
}

func (g *fakeGenerator) GenerateTransactionReceipt(_ context.Context, tx dto.TransactionDTO) ([]byte, error) {
	g.got = tx
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestDownloadReceipt_GeneraPDF(t *testing.T) {
	f := newFixture(t)
	tx := f.purchase(t, 2)
	gen := &fakeGenerator{}
	uc := ledger.NewReceiptUseCase(f.uc, gen)

	pdf, filename, err := uc.DownloadReceipt(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Equal(t, "transaccion-"+tx.ID+".pdf", filename)
	assert.Equal(t, "Distribuidora Andina", gen.got.SupplierName)
}

func TestDownloadReceipt_Errores(t *testing.T) {
	f := newFixture(t)
	tx := f.purchase(t, 2)
	ctx := context.Background()

	_, _, err := ledger.NewReceiptUseCase(f.uc, &fakeGenerator{}).DownloadReceipt(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("sin fuentes")
	_, _, err = ledger.NewReceiptUseCase(f.uc, &fakeGenerator{err: boom}).DownloadReceipt(ctx, tx.ID)
	assert.ErrorIs(t, err, boom)
}
