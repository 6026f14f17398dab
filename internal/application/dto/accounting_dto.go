package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto manual.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"required,min=1"`
}

// TransactionResponse salida de una entrada del libro contable.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	SaleID      string          `json:"sale_id,omitempty"`
	PurchaseID  string          `json:"purchase_id,omitempty"`
}

// TransactionListResponse lista de movimientos contables.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Total int                   `json:"total"`
}

// CategoryAmountDTO monto por categoría de gasto.
type CategoryAmountDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// AccountingSummaryResponse resumen del período.
type AccountingSummaryResponse struct {
	TotalIncome      decimal.Decimal     `json:"total_income"`
	TotalExpense     decimal.Decimal     `json:"total_expense"`
	NetProfit        decimal.Decimal     `json:"net_profit"`
	Margin           decimal.Decimal     `json:"margin"` // % sobre ingresos
	ExpenseBreakdown []CategoryAmountDTO `json:"expense_breakdown"`
}

// MonthlyLedgerEntry ingresos/gastos/ganancia de un mes.
type MonthlyLedgerEntry struct {
	Month   string          `json:"month"` // yyyy-MM
	Label   string          `json:"label"` // ej. "Ene 2026"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

// PerHundredEntry desglose de cada $100 cobrados: cuánto se va en cada
// categoría de gasto y cuánto queda de ganancia.
type PerHundredEntry struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Per100   decimal.Decimal `json:"per_100"`
}

// PerHundredResponse reporte "por cada $100".
type PerHundredResponse struct {
	PerHundred []PerHundredEntry `json:"per_hundred"`
}
