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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro contable sobre PostgreSQL (usable con pool o tx).
// Append-only salvo MarkCancelled.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, user_id, type, amount, category, description, date, COALESCE(sale_id::TEXT, ''), COALESCE(purchase_id::TEXT, ''), created_at`

// Create persiste un movimiento contable.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, category, description, date, sale_id, purchase_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.UserID, t.Type, t.Amount, t.Category, t.Description, t.Date,
		nullIfEmpty(t.SaleID), nullIfEmpty(t.PurchaseID), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// GetBySaleID obtiene el ingreso ligado a una venta. Devuelve (nil, nil) si
// no existe.
func (r *TransactionRepo) GetBySaleID(saleID string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE sale_id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by sale: %w", err)
	}
	return t, nil
}

// ListByUser lista los movimientos del usuario, los más recientes primero.
func (r *TransactionRepo) ListByUser(userID string, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("list transactions scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MarkCancelled deja el movimiento en cero y antepone la marca de cancelación
// a la descripción. La fila se conserva para auditoría. Es idempotente: no
// duplica la marca si ya está.
func (r *TransactionRepo) MarkCancelled(id string) error {
	query := `
		UPDATE transactions
		SET amount = 0,
		    description = CASE WHEN description LIKE $2 || '%' THEN description ELSE $2 || description END
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, entity.CancelledTag)
	if err != nil {
		return fmt.Errorf("mark transaction cancelled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category, &t.Description,
		&t.Date, &t.SaleID, &t.PurchaseID, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
