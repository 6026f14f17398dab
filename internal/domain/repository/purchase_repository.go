package repository

import (
	"time"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
)

// PurchaseFilter filtros del listado de compras.
type PurchaseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// PurchaseRepository define el puerto de persistencia para Purchase.
// Las compras son inmutables: no hay Update ni Delete.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	ListByUser(userID string, filter PurchaseFilter, limit, offset int) ([]*entity.Purchase, int, error)
}
