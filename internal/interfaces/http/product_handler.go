package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/pkg/validator"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc                *usecase.ProductUseCase
	stock             *inventory.StockMutationUseCase
	lowStockThreshold int
}

// NewProductHandler construye el handler. lowStockThreshold es el umbral por defecto de /low-stock.
func NewProductHandler(uc *usecase.ProductUseCase, stock *inventory.StockMutationUseCase, lowStockThreshold int) *ProductHandler {
	return &ProductHandler{uc: uc, stock: stock, lowStockThreshold: lowStockThreshold}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validator.ValidateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductResponse{
		Envelope: dto.Envelope{Status: fiber.StatusCreated, Message: "producto creado"},
		Product:  out,
	})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductResponse{Envelope: ok("éxito"), Product: out})
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page  query  int  false  "Página (desde 0)"  default(0)
// @Param        size  query  int  false  "Tamaño"            default(10)
// @Success      200   {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, page, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductListResponse{Envelope: ok("éxito"), Products: list, PageResponse: page})
}

// ListByCategory godoc
// @Summary      Listar productos de una categoría
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200   {object}  dto.ProductListResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/category/{categoryId} [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	list, page, err := h.uc.ListByCategory(c.UserContext(), c.Params("categoryId"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductListResponse{Envelope: ok("éxito"), Products: list, PageResponse: page})
}

// ListLowStock godoc
// @Summary      Listar productos con poco stock
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral"  default(10)
// @Success      200   {object}  dto.ProductListResponse
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) ListLowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", h.lowStockThreshold)
	list, page, err := h.uc.ListLowStock(c.UserContext(), threshold, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductListResponse{Envelope: ok("éxito"), Products: list, PageResponse: page})
}

// AdjustStock godoc
// @Summary      Ajuste directo de stock (sin transacción)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true  "ID del producto"
// @Param        quantity   query  int     true  "Cantidad"
// @Param        operation  query  string  true  "add | subtract | set"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [put]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	raw := c.Query("quantity")
	if raw == "" {
		return badRequest(c, "VALIDATION", "quantity es requerido")
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return badRequest(c, "VALIDATION", "quantity debe ser un entero")
	}
	product, err := h.stock.AdjustStock(c.UserContext(), c.Params("id"), quantity, c.Query("operation"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductResponse{Envelope: ok("stock actualizado"), Product: usecase.ToProductDTO(product)})
}

// Update godoc
// @Summary      Actualizar datos de catálogo de un producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validator.ValidateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductResponse{Envelope: ok("producto actualizado"), Product: out})
}

// Delete godoc
// @Summary      Eliminar producto sin transacciones
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(ok("producto eliminado"))
}
