package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals agregados de ventas COMPLETED en un período.
type SalesTotals struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
}

// ChannelRevenue ingresos por canal de venta.
type ChannelRevenue struct {
	Channel string
	Revenue decimal.Decimal
}

// ProductSalesResult resultado crudo del ranking de productos vendidos.
type ProductSalesResult struct {
	ProductID     string
	Ref           string
	Name          string
	Icon          string
	TotalQuantity int
	TotalRevenue  decimal.Decimal
	TotalProfit   decimal.Decimal
}

// CategoryAmount monto acumulado por categoría de gasto.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlyLedger ingresos y gastos del libro contable agrupados por mes.
type MonthlyLedger struct {
	Month   time.Time // primer día del mes
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthlySales revenue y profit de ventas COMPLETED agrupados por mes.
type MonthlySales struct {
	Month   time.Time
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// PurchaseTotals agregados históricos de compras al proveedor.
type PurchaseTotals struct {
	TotalInvested decimal.Decimal
	TotalUnits    int
	LastPurchase  *time.Time
}

// ActivityEntry entrada del feed de actividad reciente (venta o compra).
type ActivityEntry struct {
	Type        string // "sale" | "purchase"
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Channel     string // vacío para compras
}

// AnalyticsRepository define las consultas de lectura para reportes y dashboard.
// Las implementaciones son read-only; las agregaciones se resuelven en SQL con
// COALESCE para devolver cero en períodos sin datos. Los rangos de fecha nulos
// significan "sin límite".
type AnalyticsRepository interface {
	// GetSalesTotals devuelve revenue, cost y profit de las ventas COMPLETED del período.
	GetSalesTotals(ctx context.Context, userID string, startDate, endDate *time.Time) (SalesTotals, error)

	// GetRevenueByChannel agrupa el revenue COMPLETED del período por canal.
	GetRevenueByChannel(ctx context.Context, userID string, startDate, endDate *time.Time) ([]ChannelRevenue, error)

	// GetSalesByProduct devuelve el ranking de productos por ganancia descendente.
	// limit <= 0 significa sin límite.
	GetSalesByProduct(ctx context.Context, userID string, startDate, endDate *time.Time, limit int) ([]ProductSalesResult, error)

	// GetUnitsSold devuelve las unidades vendidas en ventas COMPLETED del período.
	GetUnitsSold(ctx context.Context, userID string, startDate, endDate *time.Time) (int, error)

	// GetPurchaseTotals devuelve inversión total, unidades y fecha de la última compra.
	GetPurchaseTotals(ctx context.Context, userID string) (PurchaseTotals, error)

	// GetPurchasesCost devuelve el total pagado al proveedor en el período.
	GetPurchasesCost(ctx context.Context, userID string, startDate, endDate *time.Time) (decimal.Decimal, error)

	// GetLedgerTotals devuelve ingresos y gastos del libro contable en el período.
	GetLedgerTotals(ctx context.Context, userID string, startDate, endDate *time.Time) (income, expense decimal.Decimal, err error)

	// GetExpenseBreakdown agrupa los gastos del período por categoría.
	GetExpenseBreakdown(ctx context.Context, userID string, startDate, endDate *time.Time) ([]CategoryAmount, error)

	// GetMonthlyLedger devuelve ingresos/gastos por mes para los últimos `months` meses.
	GetMonthlyLedger(ctx context.Context, userID string, months int) ([]MonthlyLedger, error)

	// GetMonthlySales devuelve revenue/profit de ventas COMPLETED por mes.
	GetMonthlySales(ctx context.Context, userID string, months int) ([]MonthlySales, error)

	// GetRecentActivity devuelve las últimas ventas y compras mezcladas por fecha.
	GetRecentActivity(ctx context.Context, userID string, limit int) ([]ActivityEntry, error)
}
