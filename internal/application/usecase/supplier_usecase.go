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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalidf("el nombre del proveedor es requerido")
	}
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        name,
		ContactInfo: strings.TrimSpace(in.ContactInfo),
		Address:     strings.TrimSpace(in.Address),
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierDTO(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierDTO, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor", id)
	}
	return toSupplierDTO(supplier), nil
}

// Update aplica los campos presentes en in.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierDTO, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor", id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalidf("el nombre del proveedor no puede estar vacío")
		}
		supplier.Name = name
	}
	if in.ContactInfo != nil {
		supplier.ContactInfo = strings.TrimSpace(*in.ContactInfo)
	}
	if in.Address != nil {
		supplier.Address = strings.TrimSpace(*in.Address)
	}
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierDTO(supplier), nil
}

// Delete elimina un proveedor que no aparece en el libro mayor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SupplierDTO, dto.PageResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	return toSupplierDTOs(list), dto.NewPageResponse(page, total), nil
}

// ListAll lista todos los proveedores sin paginar.
func (uc *SupplierUseCase) ListAll(ctx context.Context) ([]dto.SupplierDTO, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toSupplierDTOs(list), nil
}

func toSupplierDTOs(list []*entity.Supplier) []dto.SupplierDTO {
	out := make([]dto.SupplierDTO, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierDTO(s))
	}
	return out
}

func toSupplierDTO(s *entity.Supplier) *dto.SupplierDTO {
	return &dto.SupplierDTO{
		ID:          s.ID,
		Name:        s.Name,
		ContactInfo: s.ContactInfo,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
	}
}
