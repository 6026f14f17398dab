package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear una clienta.
type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Phone     string `json:"phone"`
	Instagram string `json:"instagram"`
	Notes     string `json:"notes"`
}

// UpdateCustomerRequest actualización parcial de una clienta.
type UpdateCustomerRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Instagram *string `json:"instagram"`
	Notes     *string `json:"notes"`
}

// CustomerResponse clienta con agregados derivados del historial COMPLETED.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Instagram      string          `json:"instagram,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalPurchases int             `json:"total_purchases"`
	LastPurchase   *time.Time      `json:"last_purchase"`
	Level          string          `json:"level"` // VIP | Frecuente | Regular (derivado, nunca almacenado)
}

// CustomerListResponse lista de clientas.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int                `json:"total"`
}

// CustomerDetailResponse clienta con historial de ventas.
type CustomerDetailResponse struct {
	CustomerResponse
	Sales []SaleResponse `json:"sales"`
}
