package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// NormalizeSKU recorta y pasa a mayúsculas; dos SKU son iguales si su forma normalizada coincide.
func NormalizeSKU(sku string) string {
	// Un Caser no se comparte entre goroutines.
	return cases.Upper(language.Und).String(strings.TrimSpace(sku))
}

// ProductUseCase casos de uso de catálogo para productos. El stock se maneja vía el motor de stock.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto con el stock inicial indicado.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductDTO, error) {
	sku := NormalizeSKU(in.SKU)
	if sku == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalidf("nombre y sku son requeridos")
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.Invalidf("el precio debe ser mayor que 0")
	}
	if in.StockQuantity < 0 {
		return nil, domain.Invalidf("el stock no puede ser negativo")
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFoundf("categoría", in.CategoryID)
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CategoryID:    category.ID,
		SKU:           sku,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		ExpiryDate:    in.ExpiryDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductDTO(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDTO, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto", id)
	}
	return ToProductDTO(product), nil
}

// Update aplica los campos presentes en in. El SKU sigue siendo único y el stock no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductDTO, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("producto", id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalidf("el nombre no puede estar vacío")
		}
		product.Name = name
	}
	if in.SKU != nil {
		sku := NormalizeSKU(*in.SKU)
		if sku == "" {
			return nil, domain.Invalidf("el sku no puede estar vacío")
		}
		if sku != product.SKU {
			existing, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
		}
		product.SKU = sku
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.Invalidf("el precio debe ser mayor que 0")
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.NotFoundf("categoría", *in.CategoryID)
		}
		product.CategoryID = category.ID
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	// el stock pudo cambiar mientras tanto; se devuelve lo guardado
	return uc.GetByID(ctx, id)
}

// Delete elimina un producto sin transacciones (ErrInUse en otro caso).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List lista productos con paginación, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductDTO, dto.PageResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	return toProductDTOs(list), dto.NewPageResponse(page, total), nil
}

// ListByCategory lista los productos de una categoría.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string, page dto.PageRequest) ([]dto.ProductDTO, dto.PageResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	if category == nil {
		return nil, dto.PageResponse{}, domain.NotFoundf("categoría", categoryID)
	}
	page.DefaultPage()
	list, total, err := uc.repo.ListByCategory(ctx, categoryID, page.Limit(), page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	return toProductDTOs(list), dto.NewPageResponse(page, total), nil
}

// ListLowStock lista productos con stock menor o igual a threshold.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, threshold int, page dto.PageRequest) ([]dto.ProductDTO, dto.PageResponse, error) {
	if threshold < 0 {
		return nil, dto.PageResponse{}, domain.Invalidf("el umbral no puede ser negativo")
	}
	page.DefaultPage()
	list, total, err := uc.repo.ListLowStock(ctx, threshold, page.Limit(), page.Offset())
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	return toProductDTOs(list), dto.NewPageResponse(page, total), nil
}

func toProductDTOs(list []*entity.Product) []dto.ProductDTO {
	out := make([]dto.ProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductDTO(p))
	}
	return out
}

// ToProductDTO mapea la entidad a su representación HTTP.
func ToProductDTO(p *entity.Product) *dto.ProductDTO {
	if p == nil {
		return nil
	}
	return &dto.ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		ExpiryDate:    p.ExpiryDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
