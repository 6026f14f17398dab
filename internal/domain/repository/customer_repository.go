package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
)

// CustomerStats clienta con sus agregados de ventas COMPLETED.
// El nivel NO viene de la base de datos: lo deriva el use case con
// domain/customer.Level a partir de estos agregados.
type CustomerStats struct {
	Customer       entity.Customer
	TotalSpent     decimal.Decimal
	TotalPurchases int
	LastPurchase   *time.Time
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	ListWithStats() ([]CustomerStats, error)
	GetStats(id string) (*CustomerStats, error)
}
