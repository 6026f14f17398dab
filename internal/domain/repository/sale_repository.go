package repository

import (
	"time"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	Channel    string
	CustomerID string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleRepository define el puerto de persistencia para Sale.
// Create asigna el folio consecutivo (secuencia de la base de datos) y lo deja
// en sale.Folio. Los totales de una venta nunca se actualizan después de creada;
// la única mutación posterior permitida es el estado.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	ListByUser(userID string, filter SaleFilter, limit, offset int) ([]*entity.Sale, int, error)
	ListByCustomer(customerID string) ([]*entity.Sale, error)
	UpdateStatus(id, status string) error

	// MarkCancelled pasa la venta a CANCELLED solo si aún no lo está y reporta
	// si afectó la fila. Condición y cambio en una sola sentencia: dos
	// cancelaciones concurrentes no pueden devolver el stock dos veces.
	MarkCancelled(id string) (bool, error)
}
