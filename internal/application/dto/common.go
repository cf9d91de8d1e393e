package dto

import "math"

// PageRequest paginación por página (page >= 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Límites de paginación del historial.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
	// MaxPage mantiene (page-1)*limit dentro de int.
	MaxPage = math.MaxInt / MaxLimit
)

// DefaultPage aplica valores por defecto y recorta page a [1, MaxPage] y limit a [1, MaxLimit].
func (p *PageRequest) DefaultPage() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset desplazamiento SQL de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	ItemsOnPage int  `json:"items_on_page"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPagination arma el bloque de paginación a partir del total.
func NewPagination(p PageRequest, total, onPage int) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{
		TotalItems:  total,
		TotalPages:  pages,
		CurrentPage: p.Page,
		PageSize:    p.Limit,
		ItemsOnPage: onPage,
		HasNext:     p.Page < pages,
		HasPrevious: p.Page > 1,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
