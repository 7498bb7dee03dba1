package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func product(id, name string, stock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          name,
		SKU:           "SKU-" + id,
		Price:         decimal.RequireFromString("9.99"),
		StockQuantity: stock,
		CreatedAt:     fixedNow.Add(-48 * time.Hour),
	}
}

func transaction(id, txType, productID string, qty int, total string, at time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:           id,
		Type:         txType,
		Status:       entity.TransactionStatusCompleted,
		TotalProduct: qty,
		TotalPrice:   decimal.RequireFromString(total),
		ProductID:    productID,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

func TestBuildOverview_Totales(t *testing.T) {
	s := Snapshot{
		Products: []*entity.Product{product("p1", "Arroz", 40)},
		Transactions: []*entity.Transaction{
			transaction("t1", entity.TransactionTypeSale, "p1", 10, "100", fixedNow.Add(-time.Hour)),
			transaction("t2", entity.TransactionTypeSale, "p1", 5, "50", fixedNow.Add(-2*time.Hour)),
			transaction("t3", entity.TransactionTypePurchase, "p1", 3, "30", fixedNow.Add(-3*time.Hour)),
		},
		SupplierCount: 2,
		UserCount:     1,
	}

	out := BuildOverview(s, fixedNow, 10)

	assert.Equal(t, "150", out.TotalSales.String())
	assert.Equal(t, "30", out.TotalPurchases.String())
	assert.Equal(t, "120", out.NetProfit.String())
	assert.Equal(t, 1, out.TotalProducts)
	assert.Equal(t, 2, out.TotalSuppliers)
	assert.Equal(t, 1, out.TotalUsers)
	assert.Equal(t, 3, out.TotalTransactions)
	assert.Equal(t, 40, out.TotalStock)
	assert.Equal(t, map[string]int{"SALE": 2, "PURCHASE": 1}, out.TransactionTypeDistribution)
}

func TestBuildOverview_DevolucionesNoCuentanComoVentaNiCompra(t *testing.T) {
	s := Snapshot{
		Products: []*entity.Product{product("p1", "Arroz", 40)},
		Transactions: []*entity.Transaction{
			transaction("t1", entity.TransactionTypeReturnToSupplier, "p1", 2, "-19.98", fixedNow.Add(-time.Hour)),
		},
	}

	out := BuildOverview(s, fixedNow, 10)

	assert.True(t, out.TotalSales.IsZero())
	assert.True(t, out.TotalPurchases.IsZero())
	assert.True(t, out.NetProfit.IsZero())
	assert.Equal(t, map[string]int{"RETURN_TO_SUPPLIER": 1}, out.TransactionTypeDistribution)
	assert.Empty(t, out.TopSellingProducts)
}

func TestBuildOverview_VistaStockBajoAcotada(t *testing.T) {
	var products []*entity.Product
	for i := 0; i < 8; i++ {
		products = append(products, product(fmt.Sprintf("p%d", i), "Producto", i)) // stock 0..7
	}
	products = append(products, product("full", "Lleno", 50))

	out := BuildOverview(Snapshot{Products: products}, fixedNow, 5)

	// 0..5 están en o bajo el umbral
	assert.Equal(t, 6, out.LowStockCount)
	assert.Len(t, out.LowStockProducts, 5)
	for _, p := range out.LowStockProducts {
		assert.LessOrEqual(t, p.StockQuantity, 5)
	}
}

func TestBuildOverview_TransaccionesRecientes(t *testing.T) {
	s := Snapshot{Products: []*entity.Product{product("p1", "Arroz", 40)}}
	for i := 0; i < 12; i++ {
		at := fixedNow.Add(-time.Duration(i+1) * time.Hour)
		s.Transactions = append(s.Transactions,
			transaction(fmt.Sprintf("t%02d", i), entity.TransactionTypePurchase, "p1", 1, "9.99", at))
	}
	s.Transactions = append(s.Transactions,
		transaction("old", entity.TransactionTypePurchase, "p1", 1, "9.99", fixedNow.Add(-8*24*time.Hour)))

	out := BuildOverview(s, fixedNow, 10)

	require.Len(t, out.RecentTransactions, 10)
	assert.Equal(t, 10, out.RecentTransactionsCount)
	assert.Equal(t, "t00", out.RecentTransactions[0].ID)
	assert.Equal(t, "Arroz", out.RecentTransactions[0].ProductName)
	for i := 1; i < len(out.RecentTransactions); i++ {
		assert.True(t, out.RecentTransactions[i-1].CreatedAt.After(out.RecentTransactions[i].CreatedAt))
	}
	for _, r := range out.RecentTransactions {
		assert.NotEqual(t, "old", r.ID)
	}
}

func TestBuildOverview_MasVendidos(t *testing.T) {
	products := []*entity.Product{
		product("a", "A", 10), product("b", "B", 10), product("c", "C", 10),
		product("d", "D", 10), product("e", "E", 10), product("f", "F", 10),
	}
	at := fixedNow.Add(-time.Hour)
	s := Snapshot{
		Products: products,
		Transactions: []*entity.Transaction{
			transaction("1", entity.TransactionTypeSale, "a", 1, "1", at),
			transaction("2", entity.TransactionTypeSale, "b", 7, "1", at),
			transaction("3", entity.TransactionTypeSale, "c", 3, "1", at),
			transaction("4", entity.TransactionTypeSale, "c", 3, "1", at),
			transaction("5", entity.TransactionTypeSale, "d", 2, "1", at),
			transaction("6", entity.TransactionTypeSale, "e", 4, "1", at),
			transaction("7", entity.TransactionTypeSale, "f", 5, "1", at),
			transaction("8", entity.TransactionTypePurchase, "a", 100, "1", at),
		},
	}

	out := BuildOverview(s, fixedNow, 10)

	require.Len(t, out.TopSellingProducts, 5)
	var ids []string
	for _, row := range out.TopSellingProducts {
		ids = append(ids, row.ProductID)
	}
	assert.Equal(t, []string{"b", "c", "f", "e", "d"}, ids)
	assert.Equal(t, 6, out.TopSellingProducts[1].QuantitySold)
	assert.Equal(t, "B", out.TopSellingProducts[0].ProductName)
}

func TestBuildOverview_TendenciaMensual(t *testing.T) {
	s := Snapshot{
		Products: []*entity.Product{product("p1", "Arroz", 40)},
		Transactions: []*entity.Transaction{
			transaction("t1", entity.TransactionTypeSale, "p1", 1, "10.50", time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)),
			transaction("t2", entity.TransactionTypeSale, "p1", 1, "4.50", time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)),
			transaction("t3", entity.TransactionTypeSale, "p1", 1, "20", time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)),
			transaction("t4", entity.TransactionTypeSale, "p1", 1, "99", time.Date(2024, time.November, 3, 9, 0, 0, 0, time.UTC)),
			transaction("t5", entity.TransactionTypePurchase, "p1", 1, "7", time.Date(2025, time.May, 3, 9, 0, 0, 0, time.UTC)),
		},
	}

	out := BuildOverview(s, fixedNow, 10)

	require.Len(t, out.MonthlySalesTrend, 2)
	assert.Equal(t, "15", out.MonthlySalesTrend["2025-06"].String())
	assert.Equal(t, "20", out.MonthlySalesTrend["2025-03"].String())
	_, old := out.MonthlySalesTrend["2024-11"]
	assert.False(t, old, "ventas de hace más de 6 meses no entran en la tendencia")
}

func TestBuildOverview_SinDatos(t *testing.T) {
	out := BuildOverview(Snapshot{}, fixedNow, 10)

	assert.True(t, out.TotalSales.IsZero())
	assert.NotNil(t, out.LowStockProducts)
	assert.NotNil(t, out.RecentTransactions)
	assert.NotNil(t, out.TopSellingProducts)
	assert.Empty(t, out.MonthlySalesTrend)
	assert.Empty(t, out.TransactionTypeDistribution)
}

func TestBuildAlerts_StockBajoYVencimientos(t *testing.T) {
	in2Days := fixedNow.Add(49 * time.Hour)
	expired := fixedNow.Add(-36 * time.Hour)
	far := fixedNow.Add(60 * 24 * time.Hour)

	empty := product("empty", "Vacío", 0)
	low := product("low", "Bajo", 4)
	ok := product("ok", "Normal", 50)
	ok.ExpiryDate = &in2Days
	old := product("old", "Vencido", 30)
	old.ExpiryDate = &expired
	later := product("later", "Lejano", 30)
	later.ExpiryDate = &far

	out := BuildAlerts([]*entity.Product{empty, low, ok, old, later}, fixedNow, 10, 30*24*time.Hour)

	require.Len(t, out.LowStockAlerts, 2)
	assert.Equal(t, "empty", out.LowStockAlerts[0].ID)
	assert.Equal(t, dto.SeverityCritical, out.LowStockAlerts[0].Severity)
	assert.Equal(t, "low", out.LowStockAlerts[1].ID)
	assert.Equal(t, dto.SeverityWarning, out.LowStockAlerts[1].Severity)
	assert.Equal(t, 10, out.LowStockAlerts[1].Threshold)

	require.Len(t, out.OutOfStockAlerts, 1)
	assert.Equal(t, "empty", out.OutOfStockAlerts[0].ID)

	require.Len(t, out.ExpiryAlerts, 2)
	days := map[string]int{}
	for _, a := range out.ExpiryAlerts {
		days[a.ID] = a.DaysUntilExpiry
	}
	assert.Equal(t, map[string]int{"ok": 2, "old": -1}, days)
}

func TestBuildAlerts_UmbralInclusivo(t *testing.T) {
	out := BuildAlerts([]*entity.Product{product("edge", "Borde", 10), product("above", "Arriba", 11)}, fixedNow, 10, time.Hour)

	require.Len(t, out.LowStockAlerts, 1)
	assert.Equal(t, "edge", out.LowStockAlerts[0].ID)
	assert.Empty(t, out.OutOfStockAlerts)
	assert.Empty(t, out.ExpiryAlerts)
}

func TestBuildTopProducts_Orden(t *testing.T) {
	categories := []*entity.Category{{ID: "c1", Name: "Granos"}}
	a := product("a", "A", 5)
	a.CategoryID = "c1"
	b := product("b", "B", 20)
	b.CategoryID = "missing"
	c := product("c", "C", 5)
	c.CategoryID = "c1"
	d := product("d", "D", 1)

	out := BuildTopProducts([]*entity.Product{a, b, c, d}, categories, 3)

	require.Len(t, out, 3)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "N/A", out[0].CategoryName)
	// empate en 5: se conserva el orden de entrada
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, "c", out[2].ID)
	assert.Equal(t, "Granos", out[1].CategoryName)
}

func TestDaysBetween_DiasCalendario(t *testing.T) {
	assert.Equal(t, 0, daysBetween(fixedNow, fixedNow.Add(23*time.Hour)))
	assert.Equal(t, 1, daysBetween(fixedNow, fixedNow.Add(25*time.Hour)))
	assert.Equal(t, 0, daysBetween(fixedNow, fixedNow.Add(-23*time.Hour)))
	assert.Equal(t, -2, daysBetween(fixedNow, fixedNow.Add(-50*time.Hour)))
}

func newDashboard(t *testing.T) (*DashboardUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Granos", CreatedAt: fixedNow}))
	for _, p := range []*entity.Product{product("p1", "Arroz", 3), product("p2", "Frijol", 80), product("p3", "Lenteja", 0)} {
		p.CategoryID = "c1"
		require.NoError(t, store.Products().Create(ctx, p))
	}
	require.NoError(t, store.Transactions().Create(ctx,
		transaction("t1", entity.TransactionTypeSale, "p1", 2, "19.98", fixedNow.Add(-time.Hour))))
	require.NoError(t, store.Transactions().Create(ctx,
		transaction("t2", entity.TransactionTypePurchase, "p2", 10, "99.90", fixedNow.Add(-2*time.Hour))))

	uc := NewDashboardUseCase(
		store.Products(), store.Categories(), store.Suppliers(), store.Users(), store.Transactions(),
		Config{},
	).WithClock(func() time.Time { return fixedNow })
	return uc, store
}

func TestDashboardUseCase_OverviewIdempotente(t *testing.T) {
	uc, _ := newDashboard(t)
	ctx := context.Background()

	first, err := uc.Overview(ctx)
	require.NoError(t, err)
	second, err := uc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, first.TotalProducts)
	assert.Equal(t, 1, first.TotalCategories)
	assert.Equal(t, 83, first.TotalStock)
	assert.Equal(t, 2, first.LowStockCount)
	assert.Equal(t, "19.98", first.TotalSales.String())
	assert.Equal(t, "99.9", first.TotalPurchases.String())
	assert.Equal(t, "-79.92", first.NetProfit.String())
}

func TestDashboardUseCase_Alertas(t *testing.T) {
	uc, _ := newDashboard(t)

	out, err := uc.Alerts(context.Background())
	require.NoError(t, err)

	assert.Len(t, out.LowStockAlerts, 2)
	require.Len(t, out.OutOfStockAlerts, 1)
	assert.Equal(t, "p3", out.OutOfStockAlerts[0].ID)
	assert.Empty(t, out.ExpiryAlerts)
}

func TestDashboardUseCase_UmbralCeroSoloAgotados(t *testing.T) {
	_, store := newDashboard(t)
	zero := 0
	uc := NewDashboardUseCase(
		store.Products(), store.Categories(), store.Suppliers(), store.Users(), store.Transactions(),
		Config{LowStockThreshold: &zero},
	).WithClock(func() time.Time { return fixedNow })
	ctx := context.Background()

	alerts, err := uc.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts.LowStockAlerts, 1)
	assert.Equal(t, "p3", alerts.LowStockAlerts[0].ID)
	assert.Equal(t, 0, alerts.LowStockAlerts[0].Threshold)

	overview, err := uc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.LowStockCount)

	// sin umbral configurado se usa el valor por defecto
	alerts, err = NewDashboardUseCase(
		store.Products(), store.Categories(), store.Suppliers(), store.Users(), store.Transactions(),
		Config{},
	).Alerts(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts.LowStockAlerts, 2)
}

func TestDashboardUseCase_TopProductos(t *testing.T) {
	uc, _ := newDashboard(t)
	ctx := context.Background()

	out, err := uc.TopProducts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "p2", out[0].ID)
	assert.Equal(t, "Granos", out[0].CategoryName)

	out, err = uc.TopProducts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
