package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockProductDTO producto por debajo de su umbral mínimo.
type LowStockProductDTO struct {
	ID       string `json:"id"`
	Ref      string `json:"ref"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

// ActivityEntryDTO entrada del feed de actividad reciente.
type ActivityEntryDTO struct {
	Type        string          `json:"type"` // sale | purchase
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Channel     string          `json:"channel,omitempty"`
}

// MonthlyPointDTO punto de una serie mensual para gráficas.
type MonthlyPointDTO struct {
	Month string          `json:"month"` // yyyy-MM
	Label string          `json:"label"` // ej. "Ene"
	Value decimal.Decimal `json:"value"`
}

// DashboardResponse KPIs consolidados del mes en curso.
type DashboardResponse struct {
	TotalRevenue        decimal.Decimal            `json:"total_revenue"`
	TotalProfit         decimal.Decimal            `json:"total_profit"`
	ProfitMargin        decimal.Decimal            `json:"profit_margin"` // % redondeado a 2 decimales
	TotalPaidToSupplier decimal.Decimal            `json:"total_paid_to_supplier"`
	UnitsSold           int                        `json:"units_sold"`
	LowStockProducts    []LowStockProductDTO       `json:"low_stock_products"`
	RevenueByChannel    map[string]decimal.Decimal `json:"revenue_by_channel"`
	TopProducts         []ProductRankingEntry      `json:"top_products"`
	RecentActivity      []ActivityEntryDTO         `json:"recent_activity"`
	MonthlyRevenue      []MonthlyPointDTO          `json:"monthly_revenue"`
	MonthlyProfit       []MonthlyPointDTO          `json:"monthly_profit"`
}
