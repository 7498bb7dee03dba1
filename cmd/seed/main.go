// Command seed crea el esquema y datos de demostración: un administrador,
// categorías, proveedores y productos. Se puede ejecutar varias veces.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

type seedProduct struct {
	sku, name, category string
	price               string
	stock               int
	expiresInDays       int // 0 = no vence
}

var (
	seedCategories = []string{"Bebidas", "Lácteos", "Aseo"}
	seedSuppliers  = []entity.Supplier{
		{Name: "Distribuidora Central", ContactInfo: "ventas@central.example", Address: "Calle 10 # 5-20"},
		{Name: "Lácteos del Valle", ContactInfo: "pedidos@valle.example", Address: "Km 3 vía al mar"},
	}
	seedProducts = []seedProduct{
		{"BEB-001", "Agua 600ml", "Bebidas", "1.50", 120, 0},
		{"BEB-002", "Jugo de naranja 1L", "Bebidas", "3.25", 8, 20},
		{"LAC-001", "Leche entera 1L", "Lácteos", "1.99", 40, 7},
		{"LAC-002", "Yogur natural", "Lácteos", "0.99", 0, 3},
		{"ASE-001", "Jabón líquido 500ml", "Aseo", "4.75", 15, 0},
	}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// la semilla siempre necesita el esquema
	dbCfg := cfg.DB
	dbCfg.AutoMigrate = true
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	suppliers := postgres.NewSupplierRepository(pool)
	products := postgres.NewProductRepository(pool)
	now := time.Now()

	// Administrador
	email := envOr("SEED_ADMIN_EMAIL", "admin@example.com")
	if existing, err := users.GetByEmail(ctx, email); err != nil {
		log.Fatal().Err(err).Msg("buscar administrador")
	} else if existing == nil {
		password := envOr("SEED_ADMIN_PASSWORD", "admin12345")
		if os.Getenv("SEED_ADMIN_PASSWORD") == "" {
			log.Warn().Msg("usando contraseña de administrador por defecto; defina SEED_ADMIN_PASSWORD")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		admin := &entity.User{
			ID: uuid.New().String(), Name: "Administrador", Email: email,
			PasswordHash: string(hash), Role: entity.RoleAdmin, CreatedAt: now,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("crear administrador")
		}
		log.Info().Str("email", email).Msg("administrador creado")
	}

	// Categorías (el nombre es único)
	existingCats, err := categories.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar categorías")
	}
	catByName := make(map[string]string, len(existingCats))
	for _, c := range existingCats {
		catByName[c.Name] = c.ID
	}
	for _, name := range seedCategories {
		if _, ok := catByName[name]; ok {
			continue
		}
		c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now}
		if err := categories.Create(ctx, c); err != nil {
			log.Fatal().Err(err).Str("category", name).Msg("crear categoría")
		}
		catByName[name] = c.ID
	}

	// Proveedores solo en una base vacía
	if n, err := suppliers.Count(ctx); err != nil {
		log.Fatal().Err(err).Msg("contar proveedores")
	} else if n == 0 {
		for _, s := range seedSuppliers {
			s.ID = uuid.New().String()
			s.CreatedAt = now
			if err := suppliers.Create(ctx, &s); err != nil {
				log.Fatal().Err(err).Str("supplier", s.Name).Msg("crear proveedor")
			}
		}
	}

	created := 0
	for _, sp := range seedProducts {
		p := &entity.Product{
			ID:            uuid.New().String(),
			CategoryID:    catByName[sp.category],
			SKU:           usecase.NormalizeSKU(sp.sku),
			Name:          sp.name,
			Price:         decimal.RequireFromString(sp.price),
			StockQuantity: sp.stock,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if sp.expiresInDays > 0 {
			exp := now.AddDate(0, 0, sp.expiresInDays)
			p.ExpiryDate = &exp
		}
		switch err := products.Create(ctx, p); {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
		default:
			log.Fatal().Err(err).Str("sku", sp.sku).Msg("crear producto")
		}
	}
	log.Info().Int("products", created).Msg("datos de demostración cargados")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
