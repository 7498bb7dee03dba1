package inventory

import "github.com/jhoicas/stock-ledger-api/internal/application/dto"

// FromRequest adapta el request HTTP a MutationInput con el usuario autenticado como actor.
func FromRequest(userID string, in dto.TransactionRequest) MutationInput {
	return MutationInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UserID:      userID,
		SupplierID:  in.SupplierID,
		Description: in.Description,
		Note:        in.Note,
	}
}
