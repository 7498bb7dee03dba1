package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ProductID  string `json:"productId" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
	Email      string `json:"email" validate:"omitempty,email"`
}

func TestValidateStruct_MensajesPorCampo(t *testing.T) {
	require.NoError(t, ValidateStruct(sample{ProductID: "p", Quantity: 1}))
	require.NoError(t, ValidateStruct(sample{ProductID: "p", Quantity: 1, Email: "a@b.co"}))

	err := ValidateStruct(sample{Quantity: 0, Email: "x"})
	require.Error(t, err)

	var fields Errors
	require.True(t, errors.As(err, &fields))
	require.Len(t, fields, 3)
	assert.Equal(t, "productId", fields[0].Field)
	assert.Equal(t, "required", fields[0].Tag)
	assert.Equal(t, "quantity", fields[1].Field)
	assert.Equal(t, "gt", fields[1].Tag)
	assert.Equal(t, "0", fields[1].Param)
	assert.Equal(t, "email", fields[2].Field)
	assert.Contains(t, err.Error(), "quantity: gt=0")
}
