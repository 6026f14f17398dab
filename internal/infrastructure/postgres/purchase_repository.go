package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
// Las compras son inmutables: solo INSERT y lecturas.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de la compra.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, user_id, order_number, shipping_cost, total_cost, payment_method, notes, purchased_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.UserID, nullIfEmpty(p.OrderNumber), p.ShippingCost, p.TotalCost,
		p.PaymentMethod, nullIfEmpty(p.Notes), p.PurchasedAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de compra.
func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseID, item.ProductID, item.Quantity, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID obtiene una compra con sus líneas. Devuelve (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, user_id, COALESCE(order_number, ''), shipping_cost, total_cost, payment_method, COALESCE(notes, ''), purchased_at, created_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.UserID, &p.OrderNumber, &p.ShippingCost, &p.TotalCost,
		&p.PaymentMethod, &p.Notes, &p.PurchasedAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	items, err := r.itemsFor(p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

// ListByUser lista las compras del usuario con sus líneas, las más recientes
// primero, y el total sin paginar.
func (r *PurchaseRepo) ListByUser(userID string, filter repository.PurchaseFilter, limit, offset int) ([]*entity.Purchase, int, error) {
	where := " WHERE user_id = $1"
	args := []any{userID}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND purchased_at >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND purchased_at <= $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM purchases"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, user_id, COALESCE(order_number, ''), shipping_cost, total_cost, payment_method, COALESCE(notes, ''), purchased_at, created_at
		FROM purchases%s
		ORDER BY purchased_at DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.OrderNumber, &p.ShippingCost, &p.TotalCost,
			&p.PaymentMethod, &p.Notes, &p.PurchasedAt, &p.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("list purchases scan: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, p := range out {
		items, err := r.itemsFor(p.ID)
		if err != nil {
			return nil, 0, err
		}
		p.Items = items
	}
	return out, total, nil
}

func (r *PurchaseRepo) itemsFor(purchaseID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, product_id, quantity, unit_cost
		FROM purchase_items WHERE purchase_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("purchase items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseItem
	for rows.Next() {
		var item entity.PurchaseItem
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.ProductID, &item.Quantity, &item.UnitCost); err != nil {
			return nil, fmt.Errorf("purchase items scan: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
