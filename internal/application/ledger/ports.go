// Package ledger contiene los casos de uso del libro de inventario: registrar
// compras al proveedor, registrar ventas y cancelarlas, manteniendo stock,
// venta y movimiento contable consistentes dentro de una sola transacción.
package ledger

import (
	"context"

	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción SQL con repositorios
// atados a esa transacción. Si fn retorna error se hace Rollback; si no, Commit.
// Es la única frontera de atomicidad del ledger: no hay locks en proceso,
// porque pueden correr varias instancias del servidor a la vez.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
		transactionRepo repository.TransactionRepository,
	) error) error
}
