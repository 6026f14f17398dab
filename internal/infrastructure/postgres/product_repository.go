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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, ref, name, category, COALESCE(icon, ''), wholesale_price, retail_price, stock, min_stock, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Ref, &p.Name, &p.Category, &p.Icon,
		&p.WholesalePrice, &p.RetailPrice, &p.Stock, &p.MinStock,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, ref, name, category, icon, wholesale_price, retail_price, stock, min_stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Ref, p.Name, p.Category, nullIfEmpty(p.Icon),
		p.WholesalePrice, p.RetailPrice, p.Stock, p.MinStock,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ref %q", domain.ErrDuplicate, p.Ref)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByRef obtiene un producto por referencia. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByRef(ref string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ref = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by ref: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables. El stock no se toca por aquí.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET ref = $2, name = $3, category = $4, icon = $5,
		    wholesale_price = $6, retail_price = $7, min_stock = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Ref, p.Name, p.Category, nullIfEmpty(p.Icon),
		p.WholesalePrice, p.RetailPrice, p.MinStock, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ref %q", domain.ErrDuplicate, p.Ref)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate marca el producto como inactivo (soft delete).
func (r *ProductRepo) Deactivate(id string) error {
	query := `UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos activos con filtros opcionales.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = true`
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR ref ILIKE $%d)", len(args), len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.LowStock {
		query += " AND stock <= min_stock"
	}
	query += " ORDER BY category, ref"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListLowStock lista los productos activos en o por debajo del umbral mínimo.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	return r.List(repository.ProductFilter{LowStock: true})
}

// Stats devuelve unidades y valor del inventario activo (a costo y a venta).
func (r *ProductRepo) Stats() (*repository.ProductStats, error) {
	query := `
		SELECT
		    COALESCE(SUM(stock), 0)                   AS total_units,
		    COALESCE(SUM(stock * wholesale_price), 0) AS total_cost_value,
		    COALESCE(SUM(stock * retail_price), 0)    AS total_retail_value
		FROM products
		WHERE is_active = true`
	var s repository.ProductStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalUnits, &s.TotalCostValue, &s.TotalRetailValue,
	)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	return &s, nil
}

// IncrementStock suma unidades al stock de un producto.
func (r *ProductRepo) IncrementStock(productID string, quantity int) error {
	query := `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, productID, quantity)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock descuenta unidades solo si el stock alcanza. La verificación
// y el descuento son la misma sentencia: dos transacciones concurrentes no
// pueden descontar juntas más de lo disponible.
func (r *ProductRepo) DecrementStock(productID string, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND is_active = true AND stock >= $2`
	tag, err := r.q.Exec(context.Background(), query, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
