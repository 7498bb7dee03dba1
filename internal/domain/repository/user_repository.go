package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update reescribe nombre, teléfono, rol y hash de contraseña.
	Update(ctx context.Context, user *entity.User) error
	// Delete devuelve ErrInUse si el usuario registró transacciones.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, int, error)
	Count(ctx context.Context) (int, error)
}
