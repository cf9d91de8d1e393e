package entity

import "time"

// Category representa una categoría de productos. Los reportes de ingresos agrupan por Name.
type Category struct {
	ID        string
	Name      string
	SKU       string // código corto único
	CreatedAt time.Time
	UpdatedAt time.Time
}
