package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reportes y dashboard.
// Las agregaciones se resuelven en SQL con COALESCE para que un período sin
// datos devuelva ceros, nunca NULL. Las ventas canceladas no cuentan en
// ningún reporte de ventas: todo filtra por status = 'COMPLETED'.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// dateRange agrega las condiciones de rango sobre la columna dada.
// startDate/endDate nulos significan "sin límite".
func dateRange(column string, args []any, startDate, endDate *time.Time) (string, []any) {
	cond := ""
	if startDate != nil {
		args = append(args, *startDate)
		cond += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		cond += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}
	return cond, args
}

// GetSalesTotals devuelve revenue, cost y profit de las ventas COMPLETED del
// período.
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, userID string, startDate, endDate *time.Time) (repository.SalesTotals, error) {
	args := []any{userID}
	cond, args := dateRange("sold_at", args, startDate, endDate)
	query := `
	SELECT
	    COALESCE(SUM(total_revenue), 0) AS revenue,
	    COALESCE(SUM(total_cost), 0)    AS cost,
	    COALESCE(SUM(net_profit), 0)    AS profit
	FROM sales
	WHERE user_id = $1 AND status = 'COMPLETED'` + cond

	var totals repository.SalesTotals
	err := r.pool.QueryRow(ctx, query, args...).Scan(&totals.Revenue, &totals.Cost, &totals.Profit)
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("analytics.GetSalesTotals: %w", err)
	}
	return totals, nil
}

// GetRevenueByChannel agrupa el revenue COMPLETED del período por canal.
func (r *AnalyticsRepo) GetRevenueByChannel(ctx context.Context, userID string, startDate, endDate *time.Time) ([]repository.ChannelRevenue, error) {
	args := []any{userID}
	cond, args := dateRange("sold_at", args, startDate, endDate)
	query := `
	SELECT channel, COALESCE(SUM(total_revenue), 0) AS revenue
	FROM sales
	WHERE user_id = $1 AND status = 'COMPLETED'` + cond + `
	GROUP BY channel
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetRevenueByChannel: %w", err)
	}
	defer rows.Close()

	var out []repository.ChannelRevenue
	for rows.Next() {
		var row repository.ChannelRevenue
		if err := rows.Scan(&row.Channel, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetRevenueByChannel scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetSalesByProduct devuelve el ranking de productos por ganancia descendente.
// limit <= 0 significa sin límite.
func (r *AnalyticsRepo) GetSalesByProduct(ctx context.Context, userID string, startDate, endDate *time.Time, limit int) ([]repository.ProductSalesResult, error) {
	args := []any{userID}
	cond, args := dateRange("s.sold_at", args, startDate, endDate)
	query := `
	SELECT
	    p.id, p.ref, p.name, COALESCE(p.icon, ''),
	    COALESCE(SUM(i.quantity), 0)                      AS total_quantity,
	    COALESCE(SUM(i.quantity * i.unit_revenue), 0)     AS total_revenue,
	    COALESCE(SUM(i.quantity * i.unit_profit), 0)      AS total_profit
	FROM sale_items i
	JOIN sales s    ON s.id = i.sale_id
	JOIN products p ON p.id = i.product_id
	WHERE s.user_id = $1 AND s.status = 'COMPLETED'` + cond + `
	GROUP BY p.id, p.ref, p.name, p.icon
	ORDER BY total_profit DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByProduct: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(
			&row.ProductID, &row.Ref, &row.Name, &row.Icon,
			&row.TotalQuantity, &row.TotalRevenue, &row.TotalProfit,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByProduct scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetUnitsSold devuelve las unidades vendidas en ventas COMPLETED del período.
func (r *AnalyticsRepo) GetUnitsSold(ctx context.Context, userID string, startDate, endDate *time.Time) (int, error) {
	args := []any{userID}
	cond, args := dateRange("s.sold_at", args, startDate, endDate)
	query := `
	SELECT COALESCE(SUM(i.quantity), 0)
	FROM sale_items i
	JOIN sales s ON s.id = i.sale_id
	WHERE s.user_id = $1 AND s.status = 'COMPLETED'` + cond

	var units int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&units); err != nil {
		return 0, fmt.Errorf("analytics.GetUnitsSold: %w", err)
	}
	return units, nil
}

// GetPurchaseTotals devuelve inversión total, unidades compradas y fecha de la
// última compra al proveedor.
func (r *AnalyticsRepo) GetPurchaseTotals(ctx context.Context, userID string) (repository.PurchaseTotals, error) {
	query := `
	SELECT
	    COALESCE(SUM(p.total_cost), 0)                        AS total_invested,
	    COALESCE((SELECT SUM(i.quantity)
	              FROM purchase_items i
	              JOIN purchases pp ON pp.id = i.purchase_id
	              WHERE pp.user_id = $1), 0)                   AS total_units,
	    MAX(p.purchased_at)                                    AS last_purchase
	FROM purchases p
	WHERE p.user_id = $1`

	var totals repository.PurchaseTotals
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&totals.TotalInvested, &totals.TotalUnits, &totals.LastPurchase,
	)
	if err != nil {
		return repository.PurchaseTotals{}, fmt.Errorf("analytics.GetPurchaseTotals: %w", err)
	}
	return totals, nil
}

// GetPurchasesCost devuelve el total pagado al proveedor en el período.
func (r *AnalyticsRepo) GetPurchasesCost(ctx context.Context, userID string, startDate, endDate *time.Time) (decimal.Decimal, error) {
	args := []any{userID}
	cond, args := dateRange("purchased_at", args, startDate, endDate)
	query := `
	SELECT COALESCE(SUM(total_cost), 0)
	FROM purchases
	WHERE user_id = $1` + cond

	var cost decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cost); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetPurchasesCost: %w", err)
	}
	return cost, nil
}

// GetLedgerTotals devuelve ingresos y gastos del libro contable en el período.
// Los movimientos anulados suman cero por sí mismos: su amount es 0.
func (r *AnalyticsRepo) GetLedgerTotals(ctx context.Context, userID string, startDate, endDate *time.Time) (income, expense decimal.Decimal, err error) {
	args := []any{userID}
	cond, args := dateRange("date", args, startDate, endDate)
	query := `
	SELECT
	    COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0)  AS income,
	    COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0) AS expense
	FROM transactions
	WHERE user_id = $1` + cond

	err = r.pool.QueryRow(ctx, query, args...).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetLedgerTotals: %w", err)
	}
	return income, expense, nil
}

// GetExpenseBreakdown agrupa los gastos del período por categoría.
func (r *AnalyticsRepo) GetExpenseBreakdown(ctx context.Context, userID string, startDate, endDate *time.Time) ([]repository.CategoryAmount, error) {
	args := []any{userID}
	cond, args := dateRange("date", args, startDate, endDate)
	query := `
	SELECT category, COALESCE(SUM(amount), 0) AS amount
	FROM transactions
	WHERE user_id = $1 AND type = 'EXPENSE'` + cond + `
	GROUP BY category
	ORDER BY amount DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetExpenseBreakdown: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryAmount
	for rows.Next() {
		var row repository.CategoryAmount
		if err := rows.Scan(&row.Category, &row.Amount); err != nil {
			return nil, fmt.Errorf("analytics.GetExpenseBreakdown scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetMonthlyLedger devuelve ingresos y gastos por mes de los últimos `months`
// meses. Los meses sin movimientos no aparecen; el use case completa la serie.
func (r *AnalyticsRepo) GetMonthlyLedger(ctx context.Context, userID string, months int) ([]repository.MonthlyLedger, error) {
	query := `
	SELECT
	    date_trunc('month', date)                                 AS month,
	    COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0)   AS income,
	    COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0)  AS expense
	FROM transactions
	WHERE user_id = $1
	  AND date >= date_trunc('month', now()) - ($2 - 1) * INTERVAL '1 month'
	GROUP BY month
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyLedger: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyLedger
	for rows.Next() {
		var row repository.MonthlyLedger
		if err := rows.Scan(&row.Month, &row.Income, &row.Expense); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyLedger scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetMonthlySales devuelve revenue y profit de ventas COMPLETED por mes.
func (r *AnalyticsRepo) GetMonthlySales(ctx context.Context, userID string, months int) ([]repository.MonthlySales, error) {
	query := `
	SELECT
	    date_trunc('month', sold_at)     AS month,
	    COALESCE(SUM(total_revenue), 0)  AS revenue,
	    COALESCE(SUM(net_profit), 0)     AS profit
	FROM sales
	WHERE user_id = $1 AND status = 'COMPLETED'
	  AND sold_at >= date_trunc('month', now()) - ($2 - 1) * INTERVAL '1 month'
	GROUP BY month
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlySales: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlySales
	for rows.Next() {
		var row repository.MonthlySales
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Profit); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlySales scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetRecentActivity devuelve las últimas ventas y compras mezcladas por fecha
// descendente.
func (r *AnalyticsRepo) GetRecentActivity(ctx context.Context, userID string, limit int) ([]repository.ActivityEntry, error) {
	query := `
	SELECT * FROM (
	    SELECT 'sale' AS type, s.id, s.sold_at AS date,
	           'Venta #' || s.folio AS description,
	           s.total_revenue AS amount, s.channel
	    FROM sales s
	    WHERE s.user_id = $1 AND s.status <> 'CANCELLED'
	    UNION ALL
	    SELECT 'purchase' AS type, p.id, p.purchased_at AS date,
	           'Compra a AVEMARÍA' || COALESCE(' — Pedido ' || p.order_number, '') AS description,
	           p.total_cost AS amount, '' AS channel
	    FROM purchases p
	    WHERE p.user_id = $1
	) activity
	ORDER BY date DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetRecentActivity: %w", err)
	}
	defer rows.Close()

	var out []repository.ActivityEntry
	for rows.Next() {
		var row repository.ActivityEntry
		if err := rows.Scan(&row.Type, &row.ID, &row.Date, &row.Description, &row.Amount, &row.Channel); err != nil {
			return nil, fmt.Errorf("analytics.GetRecentActivity scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
