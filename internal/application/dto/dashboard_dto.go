package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardOverviewDTO respuesta de GET /api/dashboard/overview.
type DashboardOverviewDTO struct {
	TotalProducts     int `json:"totalProducts"`
	TotalCategories   int `json:"totalCategories"`
	TotalSuppliers    int `json:"totalSuppliers"`
	TotalUsers        int `json:"totalUsers"`
	TotalTransactions int `json:"totalTransactions"`
	TotalStock        int `json:"totalStock"`

	LowStockCount    int               `json:"lowStockCount"`
	LowStockProducts []LowStockPreview `json:"lowStockProducts"`

	RecentTransactionsCount int                 `json:"recentTransactionsCount"`
	RecentTransactions      []RecentTransaction `json:"recentTransactions"`

	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
	NetProfit      decimal.Decimal `json:"netProfit"`

	// TransactionTypeDistribution solo incluye tipos con al menos una transacción.
	TransactionTypeDistribution map[string]int             `json:"transactionTypeDistribution"`
	TopSellingProducts          []TopSellerDTO             `json:"topSellingProducts"`
	MonthlySalesTrend           map[string]decimal.Decimal `json:"monthlySalesTrend"` // clave "YYYY-MM"
}

// LowStockPreview fila del resumen de bajo stock.
type LowStockPreview struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	StockQuantity int    `json:"stockQuantity"`
}

// RecentTransaction fila de transacciones recientes.
type RecentTransaction struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TopSellerDTO producto más vendido por unidades.
type TopSellerDTO struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	QuantitySold int    `json:"quantitySold"`
}

// InventoryAlertsDTO respuesta de GET /api/dashboard/alerts.
type InventoryAlertsDTO struct {
	LowStockAlerts   []LowStockAlert   `json:"lowStockAlerts"`
	OutOfStockAlerts []OutOfStockAlert `json:"outOfStockAlerts"`
	ExpiryAlerts     []ExpiryAlert     `json:"expiryAlerts"`
}

// Severidades de alerta de bajo stock.
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
)

// LowStockAlert producto en o bajo el umbral.
type LowStockAlert struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"currentStock"`
	Threshold    int    `json:"threshold"`
	Severity     string `json:"severity"`
}

// OutOfStockAlert producto con stock cero.
type OutOfStockAlert struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// ExpiryAlert producto que vence dentro de la ventana (o ya vencido).
type ExpiryAlert struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SKU             string    `json:"sku"`
	ExpiryDate      time.Time `json:"expiryDate"`
	DaysUntilExpiry int       `json:"daysUntilExpiry"`
}

// TopProductDTO producto ordenado por stock disponible.
type TopProductDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	StockQuantity int             `json:"stockQuantity"`
	Price         decimal.Decimal `json:"price"`
	CategoryName  string          `json:"categoryName"`
}
