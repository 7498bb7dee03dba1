// Package memory implementa los repositorios y el TxRunner en memoria.
// Se usa en desarrollo sin base de datos (STORE_DRIVER=memory) y en las pruebas.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Store guarda copias de las entidades. Las lecturas y escrituras sueltas usan mu;
// las unidades atómicas del TxRunner se serializan además con txMu.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	products     map[string]entity.Product
	categories   map[string]entity.Category
	suppliers    map[string]entity.Supplier
	users        map[string]entity.User
	transactions map[string]entity.Transaction
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]entity.Product),
		categories:   make(map[string]entity.Category),
		suppliers:    make(map[string]entity.Supplier),
		users:        make(map[string]entity.User),
		transactions: make(map[string]entity.Transaction),
	}
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Transactions devuelve el libro mayor fuera de transacción.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// TxRunner devuelve el ejecutor de unidades atómicas sobre este almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// txState escrituras pendientes de una unidad atómica; se aplican solo si fn termina sin error.
type txState struct {
	products     map[string]entity.Product
	transactions []entity.Transaction
}

func (s *Store) apply(st *txState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range st.products {
		s.products[id] = p
	}
	for _, t := range st.transactions {
		s.transactions[t.ID] = t
	}
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con repositorios que escriben sobre un estado pendiente.
// Solo una unidad corre a la vez, lo que equivale a bloquear la fila del producto.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn de forma atómica: o se aplican todas sus escrituras o ninguna.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	ledgerRepo repository.TransactionRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	st := &txState{products: make(map[string]entity.Product)}
	if err := fn(&ProductRepo{s: r.s, tx: st}, &SupplierRepo{s: r.s}, &TransactionRepo{s: r.s, tx: st}); err != nil {
		return err
	}
	r.s.apply(st)
	return nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return list[offset:end]
}

// newestFirst ordena por created_at descendente y, a igualdad, por id.
func newestFirst(a, b time.Time, idA, idB string) int {
	if c := b.Compare(a); c != 0 {
		return c
	}
	return strings.Compare(idA, idB)
}

func oldestFirst(a, b time.Time, idA, idB string) int {
	if c := a.Compare(b); c != 0 {
		return c
	}
	return strings.Compare(idA, idB)
}

func sortProducts(list []*entity.Product, cmpFn func(a, b time.Time, idA, idB string) int) {
	slices.SortFunc(list, func(a, b *entity.Product) int {
		return cmpFn(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}
