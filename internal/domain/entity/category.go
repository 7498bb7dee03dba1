package entity

import "time"

// Category agrupa productos.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
