package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, folio, user_id, COALESCE(customer_id::TEXT, ''), channel, payment_method, total_revenue, total_cost, net_profit, status, COALESCE(notes, ''), sold_at, created_at`

// Create persiste la cabecera de la venta. El folio lo asigna la secuencia de
// la base de datos y queda en sale.Folio: consecutivo aunque haya ventas
// concurrentes o canceladas.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, user_id, customer_id, channel, payment_method, total_revenue, total_cost, net_profit, status, notes, sold_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING folio`
	err := r.q.QueryRow(context.Background(), query,
		s.ID, s.UserID, nullIfEmpty(s.CustomerID), s.Channel, s.PaymentMethod,
		s.TotalRevenue, s.TotalCost, s.NetProfit, s.Status, nullIfEmpty(s.Notes),
		s.SoldAt, s.CreatedAt,
	).Scan(&s.Folio)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta con su snapshot de costo.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_revenue, unit_cost, unit_profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity,
		item.UnitRevenue, item.UnitCost, item.UnitProfit,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus líneas. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsFor(s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return s, nil
}

// ListByUser lista las ventas del usuario con filtros, las más recientes
// primero, y el total sin paginar.
func (r *SaleRepo) ListByUser(userID string, filter repository.SaleFilter, limit, offset int) ([]*entity.Sale, int, error) {
	where := " WHERE user_id = $1"
	args := []any{userID}
	if filter.Channel != "" {
		args = append(args, filter.Channel)
		where += fmt.Sprintf(" AND channel = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND sold_at >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND sold_at <= $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM sales"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM sales%s ORDER BY sold_at DESC, folio DESC LIMIT $%d OFFSET $%d`,
		saleColumns, where, len(args)-1, len(args))

	sales, err := r.querySales(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// ListByCustomer lista el historial de ventas de una clienta, el más reciente
// primero.
func (r *SaleRepo) ListByCustomer(customerID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE customer_id = $1 ORDER BY sold_at DESC, folio DESC`
	return r.querySales(query, customerID)
}

// UpdateStatus cambia el estado de una venta. La única mutación permitida.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	query := `UPDATE sales SET status = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkCancelled cambia el estado a CANCELLED con un UPDATE condicional. Cero
// filas afectadas significa que otra petición canceló primero (o que la venta
// no existe): el caller no debe devolver stock.
func (r *SaleRepo) MarkCancelled(id string) (bool, error) {
	query := `UPDATE sales SET status = $2 WHERE id = $1 AND status <> $2`
	tag, err := r.q.Exec(context.Background(), query, id, entity.SaleStatusCancelled)
	if err != nil {
		return false, fmt.Errorf("mark sale cancelled: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.Folio, &s.UserID, &s.CustomerID, &s.Channel, &s.PaymentMethod,
		&s.TotalRevenue, &s.TotalCost, &s.NetProfit, &s.Status, &s.Notes,
		&s.SoldAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) querySales(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("list sales scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range out {
		items, err := r.itemsFor(s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return out, nil
}

func (r *SaleRepo) itemsFor(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_revenue, unit_cost, unit_profit
		FROM sale_items WHERE sale_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.Quantity,
			&item.UnitRevenue, &item.UnitCost, &item.UnitProfit,
		); err != nil {
			return nil, fmt.Errorf("sale items scan: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
