package dto

const (
	defaultPageSize = 10
	maxPageSize     = 100
	// Con maxPage y maxPageSize el offset cabe en un int de 32 bits.
	maxPage = 1_000_000
)

// PageRequest paginación para listados (page empieza en 0).
type PageRequest struct {
	Page int `query:"page" validate:"min=0"`
	Size int `query:"size" validate:"min=0,max=100"`
}

// DefaultPage aplica valores por defecto si Page/Size están fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
}

// Limit y Offset traducen la página a la forma que usan los repositorios.
func (p PageRequest) Limit() int  { return p.Size }
func (p PageRequest) Offset() int { return p.Page * p.Size }

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

// NewPageResponse calcula el total de páginas a partir del total de elementos.
func NewPageResponse(p PageRequest, total int) PageResponse {
	pages := 0
	if p.Size > 0 {
		pages = (total + p.Size - 1) / p.Size
	}
	return PageResponse{Page: p.Page, Size: p.Size, TotalPages: pages, TotalElements: total}
}

// Envelope campos comunes a todas las respuestas.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DataResponse envelope genérico con un campo data.
type DataResponse struct {
	Envelope
	Data any `json:"data,omitempty"`
}
