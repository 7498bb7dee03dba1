package entity

import "time"

// Supplier proveedor de mercancía; referenciado opcionalmente por compras y devoluciones.
type Supplier struct {
	ID          string
	Name        string
	ContactInfo string
	Address     string
	CreatedAt   time.Time
}
