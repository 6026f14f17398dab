package repository

import (
	"time"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
)

// TransactionFilter filtros del listado de movimientos contables.
type TransactionFilter struct {
	Type      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionRepository define el puerto del libro contable (append-only).
// MarkCancelled es la única mutación permitida: pone Amount en cero y antepone
// entity.CancelledTag a la descripción; la fila se conserva para auditoría.
type TransactionRepository interface {
	Create(transaction *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	GetBySaleID(saleID string) (*entity.Transaction, error)
	ListByUser(userID string, filter TransactionFilter) ([]*entity.Transaction, error)
	MarkCancelled(id string) error
}
