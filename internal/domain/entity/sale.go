package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta.
const (
	ChannelWhatsapp   = "WHATSAPP"
	ChannelInstagram  = "INSTAGRAM"
	ChannelPresencial = "PRESENCIAL"
)

// SaleChannels lista cerrada de canales.
var SaleChannels = []string{ChannelWhatsapp, ChannelInstagram, ChannelPresencial}

// ValidSaleChannel indica si el canal pertenece a la enumeración cerrada.
func ValidSaleChannel(c string) bool {
	for _, v := range SaleChannels {
		if v == c {
			return true
		}
	}
	return false
}

// ValidSalePaymentMethod métodos de pago válidos para ventas.
func ValidSalePaymentMethod(m string) bool {
	switch m {
	case PaymentTransferencia, PaymentNequi, PaymentDaviplata, PaymentEfectivo, PaymentContraEntrega:
		return true
	}
	return false
}

// Estados de una venta. CANCELLED es terminal: dispara la devolución de stock
// y el ajuste a cero del movimiento contable exactamente una vez.
const (
	SaleStatusCompleted      = "COMPLETED"
	SaleStatusPendingPayment = "PENDING_PAYMENT"
	SaleStatusCancelled      = "CANCELLED"
)

// ValidSaleStatus indica si el estado pertenece a la enumeración cerrada.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusCompleted, SaleStatusPendingPayment, SaleStatusCancelled:
		return true
	}
	return false
}

// Sale representa una venta a una clienta.
//
// Los totales se calculan una sola vez al crear la venta y son un snapshot
// inmutable: NetProfit = TotalRevenue - TotalCost = Σ(qty × unitProfit).
// La cancelación solo cambia Status; nunca reescribe los totales, por lo que
// todo reporte de ingresos debe filtrar por Status.
type Sale struct {
	ID            string
	Folio         int // consecutivo legible, asignado por la base de datos
	UserID        string
	CustomerID    string // opcional
	Channel       string
	PaymentMethod string
	TotalRevenue  decimal.Decimal
	TotalCost     decimal.Decimal
	NetProfit     decimal.Decimal
	Status        string
	Notes         string
	SoldAt        time.Time
	CreatedAt     time.Time

	Items []*SaleItem
}

// SaleItem línea de venta. UnitCost es el precio mayorista del producto al
// momento de la venta (snapshot); UnitProfit = UnitRevenue - UnitCost.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	Quantity    int
	UnitRevenue decimal.Decimal
	UnitCost    decimal.Decimal
	UnitProfit  decimal.Decimal
}
