package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

const (
	lowStockPreviewSize = 5
	recentWindow        = 7 * 24 * time.Hour
	recentLimit         = 10
	topSellersLimit     = 5
	trendMonths         = 6
	categoryFallback    = "N/A"
)

// Snapshot lecturas del catálogo y del libro mayor sobre las que se calculan los agregados.
type Snapshot struct {
	Products      []*entity.Product
	Categories    []*entity.Category
	Transactions  []*entity.Transaction
	SupplierCount int
	UserCount     int
}

// BuildOverview calcula el resumen del dashboard. Es pura: mismo snapshot y now, mismo resultado.
func BuildOverview(s Snapshot, now time.Time, threshold int) dto.DashboardOverviewDTO {
	out := dto.DashboardOverviewDTO{
		TotalProducts:               len(s.Products),
		TotalCategories:             len(s.Categories),
		TotalSuppliers:              s.SupplierCount,
		TotalUsers:                  s.UserCount,
		TotalTransactions:           len(s.Transactions),
		LowStockProducts:            []dto.LowStockPreview{},
		RecentTransactions:          []dto.RecentTransaction{},
		TransactionTypeDistribution: map[string]int{},
		TopSellingProducts:          []dto.TopSellerDTO{},
		MonthlySalesTrend:           map[string]decimal.Decimal{},
	}

	byID := make(map[string]*entity.Product, len(s.Products))
	for _, p := range s.Products {
		byID[p.ID] = p
		out.TotalStock += p.StockQuantity
		if p.StockQuantity <= threshold {
			out.LowStockCount++
			if len(out.LowStockProducts) < lowStockPreviewSize {
				out.LowStockProducts = append(out.LowStockProducts, dto.LowStockPreview{
					ID: p.ID, Name: p.Name, SKU: p.SKU, StockQuantity: p.StockQuantity,
				})
			}
		}
	}

	sales, purchases := decimal.Zero, decimal.Zero
	sold := map[string]int{}
	trendFrom := now.AddDate(0, -trendMonths, 0)
	recentFrom := now.Add(-recentWindow)
	var recent []*entity.Transaction

	for _, t := range s.Transactions {
		out.TransactionTypeDistribution[t.Type]++
		switch t.Type {
		case entity.TransactionTypeSale:
			sales = sales.Add(t.TotalPrice)
			sold[t.ProductID] += t.TotalProduct
			if t.CreatedAt.After(trendFrom) {
				key := t.CreatedAt.Format("2006-01")
				out.MonthlySalesTrend[key] = out.MonthlySalesTrend[key].Add(t.TotalPrice)
			}
		case entity.TransactionTypePurchase:
			purchases = purchases.Add(t.TotalPrice)
		}
		if t.CreatedAt.After(recentFrom) {
			recent = append(recent, t)
		}
	}

	out.TotalSales = sales.Round(2)
	out.TotalPurchases = purchases.Round(2)
	out.NetProfit = sales.Sub(purchases).Round(2)
	for k, v := range out.MonthlySalesTrend {
		out.MonthlySalesTrend[k] = v.Round(2)
	}

	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].CreatedAt.After(recent[j].CreatedAt)
		}
		return recent[i].ID < recent[j].ID
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	for _, t := range recent {
		row := dto.RecentTransaction{
			ID: t.ID, Type: t.Type, Quantity: t.TotalProduct, TotalPrice: t.TotalPrice, CreatedAt: t.CreatedAt,
		}
		if p := byID[t.ProductID]; p != nil {
			row.ProductName = p.Name
		}
		out.RecentTransactions = append(out.RecentTransactions, row)
	}
	out.RecentTransactionsCount = len(out.RecentTransactions)

	out.TopSellingProducts = topSellers(sold, byID)
	return out
}

// topSellers ordena por unidades vendidas; los empates se resuelven por nombre e id.
func topSellers(sold map[string]int, byID map[string]*entity.Product) []dto.TopSellerDTO {
	list := make([]dto.TopSellerDTO, 0, len(sold))
	for id, qty := range sold {
		row := dto.TopSellerDTO{ProductID: id, QuantitySold: qty}
		if p := byID[id]; p != nil {
			row.ProductName = p.Name
		}
		list = append(list, row)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].QuantitySold != list[j].QuantitySold {
			return list[i].QuantitySold > list[j].QuantitySold
		}
		if list[i].ProductName != list[j].ProductName {
			return list[i].ProductName < list[j].ProductName
		}
		return list[i].ProductID < list[j].ProductID
	})
	if len(list) > topSellersLimit {
		list = list[:topSellersLimit]
	}
	return list
}

// BuildAlerts calcula las alertas de bajo stock, agotados y vencimiento.
// expiryWindow incluye productos ya vencidos (días negativos).
func BuildAlerts(products []*entity.Product, now time.Time, threshold int, expiryWindow time.Duration) dto.InventoryAlertsDTO {
	out := dto.InventoryAlertsDTO{
		LowStockAlerts:   []dto.LowStockAlert{},
		OutOfStockAlerts: []dto.OutOfStockAlert{},
		ExpiryAlerts:     []dto.ExpiryAlert{},
	}
	limit := now.Add(expiryWindow)
	for _, p := range products {
		if p.StockQuantity <= threshold {
			severity := dto.SeverityWarning
			if p.StockQuantity == 0 {
				severity = dto.SeverityCritical
			}
			out.LowStockAlerts = append(out.LowStockAlerts, dto.LowStockAlert{
				ID: p.ID, Name: p.Name, SKU: p.SKU,
				CurrentStock: p.StockQuantity, Threshold: threshold, Severity: severity,
			})
		}
		if p.StockQuantity == 0 {
			out.OutOfStockAlerts = append(out.OutOfStockAlerts, dto.OutOfStockAlert{ID: p.ID, Name: p.Name, SKU: p.SKU})
		}
		if p.ExpiryDate != nil && p.ExpiryDate.Before(limit) {
			out.ExpiryAlerts = append(out.ExpiryAlerts, dto.ExpiryAlert{
				ID: p.ID, Name: p.Name, SKU: p.SKU,
				ExpiryDate:      *p.ExpiryDate,
				DaysUntilExpiry: daysBetween(now, *p.ExpiryDate),
			})
		}
	}
	return out
}

// daysBetween días completos de from a to, truncados hacia cero.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// BuildTopProducts ordena por stock disponible descendente y corta en limit.
// Los empates conservan el orden de entrada.
func BuildTopProducts(products []*entity.Product, categories []*entity.Category, limit int) []dto.TopProductDTO {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	sorted := make([]*entity.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StockQuantity > sorted[j].StockQuantity
	})
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	out := make([]dto.TopProductDTO, 0, len(sorted))
	for _, p := range sorted {
		category, ok := names[p.CategoryID]
		if !ok {
			category = categoryFallback
		}
		out = append(out, dto.TopProductDTO{
			ID: p.ID, Name: p.Name, SKU: p.SKU,
			StockQuantity: p.StockQuantity, Price: p.Price, CategoryName: category,
		})
	}
	return out
}
