package dto

import "time"

// CreateCategoryRequest body para POST /api/v1/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePlatformRequest body para POST /api/v1/platforms.
type CreatePlatformRequest struct {
	Name string `json:"name"`
}

// PlatformResponse salida de una plataforma de venta.
type PlatformResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
