package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

func TestFormatMoney_MilesYDecimales(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0,00"},
		{"9.99", "$9,99"},
		{"1234567.5", "$1.234.567,50"},
		{"-19.98", "-$19,98"},
		{"100", "$100,00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatMoney(decimal.RequireFromString(tc.in)), tc.in)
	}
}

func TestShortID_Mayusculas(t *testing.T) {
	assert.Equal(t, "ABCDEF12", shortID("abcdef12-3456"))
	assert.Equal(t, "AB", shortID("ab"))
}

func TestGenerateTransactionReceipt_Compra(t *testing.T) {
	gen := NewMarotoReceiptGenerator("Tienda Central")
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	doc, err := gen.GenerateTransactionReceipt(context.Background(), dto.TransactionDTO{
		ID:           "7d1c2f3a-0000-4000-8000-000000000001",
		Type:         "PURCHASE",
		Status:       "COMPLETED",
		TotalProduct: 3,
		TotalPrice:   decimal.RequireFromString("29.97"),
		ProductID:    "aaaaaaaa-0000-4000-8000-000000000001",
		UserID:       "00000000-0000-0000-0000-000000000001",
		SupplierID:   "dddddddd-0000-4000-8000-000000000001",
		Description:  "Compra de arroz",
		Note:         "entrega parcial",
		Product:      &dto.ProductSummaryDTO{ID: "aaaaaaaa-0000-4000-8000-000000000001", Name: "Arroz 1kg", SKU: "ARZ-1"},
		SupplierName: "Distribuidora Andina",
		UserName:     "Laura",
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestGenerateTransactionReceipt_DevolucionTotalNegativoSinNombres(t *testing.T) {
	gen := NewMarotoReceiptGenerator("")

	doc, err := gen.GenerateTransactionReceipt(context.Background(), dto.TransactionDTO{
		ID:           "7d1c2f3a-0000-4000-8000-000000000002",
		Type:         "RETURN_TO_SUPPLIER",
		Status:       "COMPLETED",
		TotalProduct: 2,
		TotalPrice:   decimal.RequireFromString("-19.98"),
		ProductID:    "aaaaaaaa-0000-4000-8000-000000000001",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")
}
