package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/validator"
)

// TransactionHandler expone el motor de stock y el libro mayor (protegido).
type TransactionHandler struct {
	stock    *inventory.StockMutationUseCase
	ledger   *ledger.LedgerUseCase
	receipts *ledger.ReceiptUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(stock *inventory.StockMutationUseCase, ledgerUC *ledger.LedgerUseCase, receipts *ledger.ReceiptUseCase) *TransactionHandler {
	return &TransactionHandler{stock: stock, ledger: ledgerUC, receipts: receipts}
}

type mutationFunc func(ctx context.Context, in inventory.MutationInput) (*entity.Transaction, error)

func (h *TransactionHandler) mutate(c *fiber.Ctx, fn mutationFunc, message string) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validator.ValidateStruct(in); err != nil {
		return writeError(c, err)
	}
	tx, err := fn(c.UserContext(), inventory.FromRequest(GetUserID(c), in))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.GetByID(c.UserContext(), tx.ID)
	if err != nil {
		// la mutación ya está confirmada: se responde sin nombres resueltos
		plain := ledger.ToTransactionDTO(tx)
		out = &plain
	}
	return c.Status(fiber.StatusOK).JSON(dto.TransactionResponse{Envelope: ok(message), Transaction: out})
}

// Purchase godoc
// @Summary      Registrar compra a proveedor
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "productId, quantity, supplierId?"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/purchase [post]
func (h *TransactionHandler) Purchase(c *fiber.Ctx) error {
	return h.mutate(c, h.stock.Purchase, "compra registrada")
}

// Sell godoc
// @Summary      Registrar venta
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "productId, quantity"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/sell [post]
func (h *TransactionHandler) Sell(c *fiber.Ctx) error {
	return h.mutate(c, h.stock.Sell, "venta registrada")
}

// Return godoc
// @Summary      Registrar devolución a proveedor
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "productId, quantity, supplierId?"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/return [post]
func (h *TransactionHandler) Return(c *fiber.Ctx) error {
	return h.mutate(c, h.stock.ReturnToSupplier, "devolución registrada")
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Page: c.QueryInt("page", 0), Size: c.QueryInt("size", 0)}
	p.DefaultPage()
	return p
}

// List godoc
// @Summary      Listar transacciones (más recientes primero)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        page  query  int  false  "Página (desde 0)"  default(0)
// @Param        size  query  int  false  "Tamaño"            default(10)
// @Success      200   {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	list, page, err := h.ledger.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransactionListResponse{Envelope: ok("éxito"), Transactions: list, PageResponse: &page})
}

// ListByType godoc
// @Summary      Listar transacciones por tipo
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type  path   string  true   "PURCHASE | SALE | RETURN_TO_SUPPLIER"
// @Param        page  query  int     false  "Página (desde 0)"
// @Param        size  query  int     false  "Tamaño"
// @Success      200   {object}  dto.TransactionListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/type/{type} [get]
func (h *TransactionHandler) ListByType(c *fiber.Ctx) error {
	list, page, err := h.ledger.ListByType(c.UserContext(), c.Params("type"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransactionListResponse{Envelope: ok("éxito"), Transactions: list, PageResponse: &page})
}

// ListByProduct godoc
// @Summary      Listar transacciones de un producto
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200   {object}  dto.TransactionListResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/product/{productId} [get]
func (h *TransactionHandler) ListByProduct(c *fiber.Ctx) error {
	list, err := h.ledger.ListByProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransactionListResponse{Envelope: ok("éxito"), Transactions: list})
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ledger.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransactionResponse{Envelope: ok("éxito"), Transaction: out})
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true  "ID de la transacción"
// @Param        status  query  string  true  "PENDING | PROCESSING | COMPLETED"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/status [put]
func (h *TransactionHandler) UpdateStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return badRequest(c, "VALIDATION", "status es requerido")
	}
	out, err := h.ledger.UpdateStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransactionResponse{Envelope: ok("estado de transacción actualizado"), Transaction: out})
}

// DownloadReceipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         transactions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/receipt [get]
func (h *TransactionHandler) DownloadReceipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.DownloadReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
