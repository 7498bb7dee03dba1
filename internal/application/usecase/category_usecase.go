package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func categoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", domain.Invalidf("el nombre de la categoría es requerido")
	}
	return name, nil
}

// Create crea una categoría. El nombre es único (ErrDuplicate).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryDTO, error) {
	name, err := categoryName(in.Name)
	if err != nil {
		return nil, err
	}
	category := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryDTO(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryDTO, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFoundf("categoría", id)
	}
	return toCategoryDTO(category), nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryDTO, error) {
	name, err := categoryName(in.Name)
	if err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFoundf("categoría", id)
	}
	category.Name = name
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryDTO(category), nil
}

// Delete elimina una categoría sin productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List lista categorías por nombre con paginación.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CategoryDTO, dto.PageResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	return toCategoryDTOs(list), dto.NewPageResponse(page, total), nil
}

// ListAll lista todas las categorías sin paginar.
func (uc *CategoryUseCase) ListAll(ctx context.Context) ([]dto.CategoryDTO, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryDTOs(list), nil
}

func toCategoryDTOs(list []*entity.Category) []dto.CategoryDTO {
	out := make([]dto.CategoryDTO, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryDTO(c))
	}
	return out
}

func toCategoryDTO(c *entity.Category) *dto.CategoryDTO {
	return &dto.CategoryDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
