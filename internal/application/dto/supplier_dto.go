package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	ContactInfo string `json:"contactInfo" validate:"max=200"`
	Address     string `json:"address" validate:"max=300"`
}

// UpdateSupplierRequest campos opcionales; solo se aplican los presentes.
type UpdateSupplierRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactInfo *string `json:"contactInfo" validate:"omitempty,max=200"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
}

// SupplierDTO salida de un proveedor.
type SupplierDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contactInfo,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SupplierResponse respuesta con un solo proveedor.
type SupplierResponse struct {
	Envelope
	Supplier *SupplierDTO `json:"supplier"`
}

// SupplierListResponse lista de proveedores; la paginación se omite en /all.
type SupplierListResponse struct {
	Envelope
	Suppliers []SupplierDTO `json:"suppliers"`
	*PageResponse
}
