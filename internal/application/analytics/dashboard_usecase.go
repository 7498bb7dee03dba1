// Package analytics contiene los agregados del dashboard: resumen, alertas de
// inventario y ranking de productos por stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const (
	defaultLowStockThreshold = 10
	defaultExpiryWindowDays  = 30
	defaultTopProducts       = 10
	maxTopProducts           = 100
)

// Config umbrales de las alertas.
type Config struct {
	// LowStockThreshold nil usa el valor por defecto; 0 alerta solo productos agotados.
	LowStockThreshold *int
	ExpiryWindowDays  int
}

// lowStockThreshold resuelve el umbral efectivo.
func (c Config) lowStockThreshold() int {
	if c.LowStockThreshold == nil || *c.LowStockThreshold < 0 {
		return defaultLowStockThreshold
	}
	return *c.LowStockThreshold
}

// DashboardUseCase calcula los agregados en cada llamada a partir de lecturas frescas.
//
// Fuente de datos: repositorios de catálogo y libro mayor (solo lectura, sin bloqueos).
// No guarda estado entre llamadas.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	ledgerRepo   repository.TransactionRepository
	cfg          Config
	threshold    int
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	ledgerRepo repository.TransactionRepository,
	cfg Config,
) *DashboardUseCase {
	if cfg.ExpiryWindowDays <= 0 {
		cfg.ExpiryWindowDays = defaultExpiryWindowDays
	}
	return &DashboardUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		ledgerRepo:   ledgerRepo,
		cfg:          cfg,
		threshold:    cfg.lowStockThreshold(),
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj usado para las ventanas de tiempo.
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Overview construye el resumen general.
//
// Cinco lecturas en paralelo:
//  1. productos
//  2. categorías
//  3. transacciones
//  4. conteo de proveedores
//  5. conteo de usuarios
func (uc *DashboardUseCase) Overview(ctx context.Context) (*dto.DashboardOverviewDTO, error) {
	var s Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if s.Products, err = uc.productRepo.ListAll(gctx); err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if s.Categories, err = uc.categoryRepo.ListAll(gctx); err != nil {
			return fmt.Errorf("dashboard: categorías: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if s.Transactions, err = uc.ledgerRepo.ListAll(gctx); err != nil {
			return fmt.Errorf("dashboard: transacciones: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if s.SupplierCount, err = uc.supplierRepo.Count(gctx); err != nil {
			return fmt.Errorf("dashboard: proveedores: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if s.UserCount, err = uc.userRepo.Count(gctx); err != nil {
			return fmt.Errorf("dashboard: usuarios: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := BuildOverview(s, uc.now(), uc.threshold)
	return &out, nil
}

// Alerts construye las alertas de inventario.
func (uc *DashboardUseCase) Alerts(ctx context.Context) (*dto.InventoryAlertsDTO, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("alertas: productos: %w", err)
	}
	window := time.Duration(uc.cfg.ExpiryWindowDays) * 24 * time.Hour
	out := BuildAlerts(products, uc.now(), uc.threshold, window)
	return &out, nil
}

// TopProducts devuelve los limit productos con más stock (por defecto 10).
func (uc *DashboardUseCase) TopProducts(ctx context.Context, limit int) ([]dto.TopProductDTO, error) {
	if limit <= 0 {
		limit = defaultTopProducts
	}
	if limit > maxTopProducts {
		limit = maxTopProducts
	}
	var s Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if s.Products, err = uc.productRepo.ListAll(gctx); err != nil {
			return fmt.Errorf("top productos: productos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if s.Categories, err = uc.categoryRepo.ListAll(gctx); err != nil {
			return fmt.Errorf("top productos: categorías: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return BuildTopProducts(s.Products, s.Categories, limit), nil
}
