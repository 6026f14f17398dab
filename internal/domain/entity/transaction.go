package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento contable.
const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

// Categorías de gasto (enumeración cerrada). Los ingresos usan CategoryOtroGasto
// como categoría única por ahora.
const (
	CategoryCompraAvemaria = "COMPRA_AVEMARIA"
	CategoryEnvios         = "ENVIOS"
	CategoryEmpaques       = "EMPAQUES"
	CategoryPublicidad     = "PUBLICIDAD"
	CategoryOtroGasto      = "OTRO"
)

// ExpenseCategories categorías válidas para gastos manuales.
var ExpenseCategories = []string{
	CategoryCompraAvemaria, CategoryEnvios, CategoryEmpaques, CategoryPublicidad, CategoryOtroGasto,
}

// ValidExpenseCategory indica si la categoría de gasto es válida.
func ValidExpenseCategory(c string) bool {
	for _, v := range ExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

// CancelledTag prefijo que marca la descripción de un movimiento anulado
// por cancelación de venta. La fila se conserva para auditoría con Amount = 0.
const CancelledTag = "[CANCELADA] "

// Transaction es una entrada del libro contable (ingreso o gasto).
// Es el registro de auditoría que alimenta los reportes: solo se agrega;
// la única mutación permitida es el ajuste a cero al cancelar la venta ligada.
type Transaction struct {
	ID          string
	UserID      string
	Type        string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	SaleID      string // opcional: venta que originó el ingreso
	PurchaseID  string // opcional: compra que originó el gasto
	CreatedAt   time.Time
}
