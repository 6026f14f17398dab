package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto (bisutería AVEMARÍA).
const (
	CategoryCandongas = "CANDONGAS"
	CategoryTopos     = "TOPOS"
	CategoryGrandes   = "GRANDES"
	CategorySets      = "SETS"
	CategoryEarcuffs  = "EARCUFFS"
	CategoryCollares  = "COLLARES"
	CategoryPulseras  = "PULSERAS"
	CategoryOtro      = "OTRO"
)

// ProductCategories lista cerrada de categorías válidas.
var ProductCategories = []string{
	CategoryCandongas, CategoryTopos, CategoryGrandes, CategorySets,
	CategoryEarcuffs, CategoryCollares, CategoryPulseras, CategoryOtro,
}

// ValidProductCategory indica si la categoría pertenece a la enumeración cerrada.
func ValidProductCategory(c string) bool {
	for _, v := range ProductCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Product representa una referencia del inventario.
// Stock nunca queda negativo tras una operación confirmada: el descuento se hace
// con un UPDATE condicional (stock >= cantidad) dentro de la transacción.
// IsActive implementa borrado suave; una referencia inactiva puede seguir
// recibiendo compras (reposición histórica) pero no venderse.
type Product struct {
	ID             string
	Ref            string // código de referencia, único y estable
	Name           string
	Category       string
	Icon           string // emoji opcional para la UI
	WholesalePrice decimal.Decimal // costo mayorista por unidad
	RetailPrice    decimal.Decimal // precio de venta sugerido
	Stock          int
	MinStock       int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
