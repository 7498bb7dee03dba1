package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/pkg/validator"
)

// errorStatus clasifica err en (status HTTP, código).
func errorStatus(err error) (int, string) {
	var (
		stockErr *domain.InsufficientStockError
		fields   validator.Errors
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &stockErr):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.As(err, &fields):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusBadRequest, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInUse):
		return fiber.StatusConflict, "IN_USE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.As(err, &fiberErr):
		return fiberErr.Code, "HTTP_ERROR"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde con el envelope de error correspondiente a err.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Status: status, Code: code, Message: err.Error()})
}

// badRequest responde 400 con un código propio del handler.
func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Status: fiber.StatusBadRequest, Code: code, Message: message,
	})
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (rutas
// inexistentes, cuerpo demasiado grande, pánicos recuperados) salen con el mismo envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

func ok(message string) dto.Envelope {
	return dto.Envelope{Status: fiber.StatusOK, Message: message}
}
