package entity

import "time"

// Platform canal de venta donde se origina un pedido (tienda web, marketplace, etc.).
type Platform struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
