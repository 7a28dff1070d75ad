package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

// CreateProductRequest entrada para crear un producto. Los numéricos vacíos valen 0.
type CreateProductRequest struct {
	Name  string           `json:"name" validate:"required,min=1,max=200"`
	SKU   string           `json:"sku"`
	Stock numeric.Optional `json:"stock" swaggertype:"number"`
	Cost  numeric.Optional `json:"cost" swaggertype:"number"`
	Price numeric.Optional `json:"price" swaggertype:"number"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU   *string          `json:"sku"`
	Stock numeric.Optional `json:"stock" swaggertype:"number"`
	Cost  numeric.Optional `json:"cost" swaggertype:"number"`
	Price numeric.Optional `json:"price" swaggertype:"number"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       *string         `json:"sku"`
	Stock     int             `json:"stock"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
