package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// UserUseCase administración de usuarios y perfil propio. El alta sigue en auth.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func (uc *UserUseCase) load(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFoundf("usuario", id)
	}
	return user, nil
}

// GetByID obtiene un usuario sin el hash de la contraseña.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserDTO, error) {
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserDTO(user), nil
}

// List lista usuarios con paginación, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.UserDTO, dto.PageResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out := make([]dto.UserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserDTO(u))
	}
	return out, dto.NewPageResponse(page, total), nil
}

// Update cambios de un administrador: nombre, teléfono, rol y contraseña.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserDTO, error) {
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*in.Role))
		if !entity.IsValidRole(role) {
			return nil, domain.Invalidf("rol inválido: %s", *in.Role)
		}
		user.Role = role
	}
	if err := applyProfile(user, in.Name, in.PhoneNumber, in.Password); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserDTO(user), nil
}

// UpdateProfile cambios del propio usuario; el rol se conserva.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyProfile(user, in.Name, in.PhoneNumber, in.Password); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserDTO(user), nil
}

func applyProfile(user *entity.User, name, phone, password *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return domain.Invalidf("el nombre no puede estar vacío")
		}
		user.Name = n
	}
	if phone != nil {
		user.PhoneNumber = strings.TrimSpace(*phone)
	}
	if password != nil {
		if len(*password) < 8 {
			return domain.Invalidf("la contraseña debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	return nil
}

// Delete elimina un usuario. Un administrador no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.Invalidf("no puede eliminar su propia cuenta")
	}
	return uc.repo.Delete(ctx, id)
}
