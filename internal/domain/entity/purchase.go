package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados (Colombia).
const (
	PaymentTransferencia = "TRANSFERENCIA"
	PaymentNequi         = "NEQUI"
	PaymentDaviplata     = "DAVIPLATA"
	PaymentEfectivo      = "EFECTIVO"
	PaymentContraEntrega = "CONTRA_ENTREGA" // solo ventas
)

// ValidPurchasePaymentMethod métodos de pago válidos para compras al proveedor.
func ValidPurchasePaymentMethod(m string) bool {
	switch m {
	case PaymentTransferencia, PaymentNequi, PaymentDaviplata, PaymentEfectivo:
		return true
	}
	return false
}

// Purchase representa un pedido al proveedor AVEMARÍA.
// Se crea una única vez y es inmutable: no existe ruta de edición ni cancelación.
// TotalCost = Σ(quantity × unitCost) + ShippingCost.
type Purchase struct {
	ID            string
	UserID        string
	OrderNumber   string // número de pedido del proveedor, texto libre opcional
	ShippingCost  decimal.Decimal
	TotalCost     decimal.Decimal
	PaymentMethod string
	Notes         string
	PurchasedAt   time.Time
	CreatedAt     time.Time

	Items []*PurchaseItem
}

// PurchaseItem línea de un pedido: cantidad y costo unitario al momento de la compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitCost   decimal.Decimal
}
