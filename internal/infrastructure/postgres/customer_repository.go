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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
// Los agregados (gasto acumulado, compras, última compra) se calculan en SQL
// sobre las ventas COMPLETED; las canceladas nunca cuentan.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste una clienta nueva.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, instagram, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Instagram), nullIfEmpty(c.Notes),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene una clienta. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `
		SELECT id, name, COALESCE(phone, ''), COALESCE(instagram, ''), COALESCE(notes, ''), created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Instagram, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos de contacto de una clienta.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, instagram = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Instagram), nullIfEmpty(c.Notes), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const customerStatsQuery = `
	SELECT
	    c.id, c.name, COALESCE(c.phone, ''), COALESCE(c.instagram, ''), COALESCE(c.notes, ''), c.created_at, c.updated_at,
	    COALESCE(SUM(s.total_revenue), 0) AS total_spent,
	    COUNT(s.id)                       AS total_purchases,
	    MAX(s.sold_at)                    AS last_purchase
	FROM customers c
	LEFT JOIN sales s ON s.customer_id = c.id AND s.status = 'COMPLETED'`

// ListWithStats lista todas las clientas con sus agregados de ventas COMPLETED.
func (r *CustomerRepo) ListWithStats() ([]repository.CustomerStats, error) {
	query := customerStatsQuery + `
	GROUP BY c.id
	ORDER BY total_spent DESC, c.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []repository.CustomerStats
	for rows.Next() {
		stats, err := scanCustomerStats(rows)
		if err != nil {
			return nil, fmt.Errorf("list customers scan: %w", err)
		}
		out = append(out, *stats)
	}
	return out, rows.Err()
}

// GetStats obtiene una clienta con sus agregados. Devuelve (nil, nil) si no
// existe.
func (r *CustomerRepo) GetStats(id string) (*repository.CustomerStats, error) {
	query := customerStatsQuery + `
	WHERE c.id = $1
	GROUP BY c.id`
	stats, err := scanCustomerStats(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer stats: %w", err)
	}
	return stats, nil
}

func scanCustomerStats(row pgx.Row) (*repository.CustomerStats, error) {
	var stats repository.CustomerStats
	err := row.Scan(
		&stats.Customer.ID, &stats.Customer.Name, &stats.Customer.Phone,
		&stats.Customer.Instagram, &stats.Customer.Notes,
		&stats.Customer.CreatedAt, &stats.Customer.UpdatedAt,
		&stats.TotalSpent, &stats.TotalPurchases, &stats.LastPurchase,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
