package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// CategoryRepo categorías en memoria; el nombre es único.
type CategoryRepo struct {
	s *Store
}

func (r *CategoryRepo) nameTaken(name, exceptID string) bool {
	for id, existing := range r.s.categories {
		if id != exceptID && existing.Name == name {
			return true
		}
	}
	return false
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(c.Name, "") {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.categories[c.ID]
	if !ok {
		return domain.NotFoundf("categoría", c.ID)
	}
	if r.nameTaken(c.Name, c.ID) {
		return domain.ErrDuplicate
	}
	current.Name = c.Name
	r.s.categories[c.ID] = current
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.NotFoundf("categoría", id)
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return fmt.Errorf("%w: la categoría %s tiene productos", domain.ErrInUse, id)
		}
	}
	delete(r.s.categories, id)
	return nil
}

// ListAll lista las categorías por nombre.
func (r *CategoryRepo) ListAll(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	slices.SortFunc(out, func(a, b *entity.Category) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error) {
	all, _ := r.ListAll(ctx)
	return paginate(all, limit, offset), len(all), nil
}

func (r *CategoryRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.categories), nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.suppliers[sup.ID]
	if !ok {
		return domain.NotFoundf("proveedor", sup.ID)
	}
	current.Name = sup.Name
	current.ContactInfo = sup.ContactInfo
	current.Address = sup.Address
	r.s.suppliers[sup.ID] = current
	return nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.NotFoundf("proveedor", id)
	}
	for _, t := range r.s.transactions {
		if t.SupplierID == id {
			return fmt.Errorf("%w: el proveedor %s tiene transacciones", domain.ErrInUse, id)
		}
	}
	delete(r.s.suppliers, id)
	return nil
}

// ListAll lista los proveedores por nombre.
func (r *SupplierRepo) ListAll(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		out = append(out, &sup)
	}
	r.s.mu.RUnlock()
	slices.SortFunc(out, func(a, b *entity.Supplier) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, int, error) {
	all, _ := r.ListAll(ctx)
	return paginate(all, limit, offset), len(all), nil
}

func (r *SupplierRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.suppliers), nil
}

// UserRepo usuarios en memoria; el email es único sin distinguir mayúsculas.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.users[u.ID]
	if !ok {
		return domain.NotFoundf("usuario", u.ID)
	}
	current.Name = u.Name
	current.PhoneNumber = u.PhoneNumber
	current.Role = u.Role
	current.PasswordHash = u.PasswordHash
	r.s.users[u.ID] = current
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.NotFoundf("usuario", id)
	}
	for _, t := range r.s.transactions {
		if t.UserID == id {
			return fmt.Errorf("%w: el usuario %s tiene transacciones", domain.ErrInUse, id)
		}
	}
	delete(r.s.users, id)
	return nil
}

// List lista usuarios paginados, más recientes primero.
func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	r.s.mu.RLock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, &u)
	}
	r.s.mu.RUnlock()
	slices.SortFunc(out, func(a, b *entity.User) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return paginate(out, limit, offset), len(out), nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}
