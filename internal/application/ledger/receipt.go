package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// ReceiptGenerator genera el comprobante PDF de una transacción.
type ReceiptGenerator interface {
	GenerateTransactionReceipt(ctx context.Context, tx dto.TransactionDTO) ([]byte, error)
}

// ReceiptUseCase arma el comprobante de una transacción del libro mayor.
type ReceiptUseCase struct {
	ledger    *LedgerUseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(ledger *LedgerUseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{ledger: ledger, generator: generator}
}

// DownloadReceipt devuelve (pdfBytes, filename). domain.ErrNotFound si la transacción no existe.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, transactionID string) ([]byte, string, error) {
	tx, err := uc.ledger.GetByID(ctx, transactionID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateTransactionReceipt(ctx, *tx)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("transaccion-%s.pdf", tx.ID), nil
}
