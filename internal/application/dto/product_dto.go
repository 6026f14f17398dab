package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Ref            string          `json:"ref" validate:"required,min=1"`
	Name           string          `json:"name" validate:"required,min=1"`
	Category       string          `json:"category" validate:"required"`
	Icon           string          `json:"icon"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	Stock          int             `json:"stock" validate:"min=0"`
	MinStock       int             `json:"min_stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualización parcial de un producto.
// El stock no se edita por aquí: solo lo mueven compras, ventas y cancelaciones.
type UpdateProductRequest struct {
	Ref            *string          `json:"ref"`
	Name           *string          `json:"name"`
	Category       *string          `json:"category"`
	Icon           *string          `json:"icon"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	RetailPrice    *decimal.Decimal `json:"retail_price"`
	MinStock       *int             `json:"min_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Ref            string          `json:"ref"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Icon           string          `json:"icon,omitempty"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	Stock          int             `json:"stock"`
	MinStock       int             `json:"min_stock"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductStatsResponse agregados de valor del inventario activo.
type ProductStatsResponse struct {
	TotalUnits       int             `json:"total_units"`
	TotalCostValue   decimal.Decimal `json:"total_cost_value"`
	TotalRetailValue decimal.Decimal `json:"total_retail_value"`
}
