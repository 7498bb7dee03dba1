package dto

import "time"

// CategoryRequest entrada para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryDTO salida de una categoría.
type CategoryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryResponse respuesta con una sola categoría.
type CategoryResponse struct {
	Envelope
	Category *CategoryDTO `json:"category"`
}

// CategoryListResponse lista de categorías; la paginación se omite en /all.
type CategoryListResponse struct {
	Envelope
	Categories []CategoryDTO `json:"categories"`
	*PageResponse
}
