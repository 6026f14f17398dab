package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de una compra al proveedor.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"required"`
}

// CreatePurchaseRequest entrada para registrar una compra.
type CreatePurchaseRequest struct {
	OrderNumber   string                `json:"order_number"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1"`
	ShippingCost  decimal.Decimal       `json:"shipping_cost"`
	PaymentMethod string                `json:"payment_method" validate:"required"`
	Notes         string                `json:"notes"`
}

// PurchaseItemResponse línea de compra en respuestas.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	OrderNumber   string                 `json:"order_number,omitempty"`
	ShippingCost  decimal.Decimal        `json:"shipping_cost"`
	TotalCost     decimal.Decimal        `json:"total_cost"`
	PaymentMethod string                 `json:"payment_method"`
	Notes         string                 `json:"notes,omitempty"`
	PurchasedAt   time.Time              `json:"purchased_at"`
	Items         []PurchaseItemResponse `json:"items"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PurchaseSummaryResponse agregados históricos de compras.
type PurchaseSummaryResponse struct {
	TotalInvested    decimal.Decimal `json:"total_invested"`
	TotalUnits       int             `json:"total_units"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date"`
}
