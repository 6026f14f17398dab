package repository

import (
	"github.com/shopspring/decimal"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search   string // busca en name y ref, case-insensitive
	Category string
	LowStock bool // solo productos con stock <= min_stock
}

// ProductStats agregados del inventario activo.
type ProductStats struct {
	TotalUnits       int
	TotalCostValue   decimal.Decimal // Σ stock × wholesale_price
	TotalRetailValue decimal.Decimal // Σ stock × retail_price
}

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// DecrementStock es el único camino para descontar existencias: ejecuta un
// UPDATE condicional (stock >= cantidad) y reporta si afectó la fila. La
// verificación de suficiencia y el descuento son UNA sola sentencia bajo la
// transacción, no una lectura seguida de escritura.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByRef(ref string) (*entity.Product, error)
	Update(product *entity.Product) error
	Deactivate(id string) error
	List(filter ProductFilter) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	Stats() (*ProductStats, error)

	IncrementStock(productID string, quantity int) error
	DecrementStock(productID string, quantity int) (bool, error)
}
