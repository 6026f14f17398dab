package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta.
type SaleItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitRevenue decimal.Decimal `json:"unit_revenue" validate:"required"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	Channel       string            `json:"channel" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
	Notes         string            `json:"notes"`
}

// UpdateSaleStatusRequest entrada para cambiar el estado de una venta.
type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SaleItemResponse línea de venta con el snapshot de costo y ganancia.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitRevenue decimal.Decimal `json:"unit_revenue"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	UnitProfit  decimal.Decimal `json:"unit_profit"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	Folio         int                `json:"folio"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Channel       string             `json:"channel"`
	PaymentMethod string             `json:"payment_method"`
	TotalRevenue  decimal.Decimal    `json:"total_revenue"`
	TotalCost     decimal.Decimal    `json:"total_cost"`
	NetProfit     decimal.Decimal    `json:"net_profit"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	SoldAt        time.Time          `json:"sold_at"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SaleSummaryResponse agregados de ventas COMPLETED del período.
type SaleSummaryResponse struct {
	TotalRevenue decimal.Decimal            `json:"total_revenue"`
	TotalCost    decimal.Decimal            `json:"total_cost"`
	NetProfit    decimal.Decimal            `json:"net_profit"`
	Margin       decimal.Decimal            `json:"margin"` // % sobre revenue
	ByChannel    map[string]decimal.Decimal `json:"by_channel"`
}

// ProductRankingEntry entrada del ranking de productos más vendidos.
type ProductRankingEntry struct {
	ProductID     string          `json:"product_id"`
	Ref           string          `json:"ref"`
	Name          string          `json:"name"`
	Icon          string          `json:"icon,omitempty"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
}
