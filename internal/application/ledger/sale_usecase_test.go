package ledger_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

const testUserID = "00000000-0000-0000-0000-0000000000aa"

// Caso 1: venta de dos productos → totales correctos, stock descontado,
// ingreso asentado en el libro con la descripción "Venta #<folio> (<canal>)".
func TestRecordSale_VentaCompleta(t *testing.T) {
	w := newLedgerWorld(candongas(10), collar(5))

	resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		Channel:       entity.ChannelWhatsapp,
		PaymentMethod: entity.PaymentNequi,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 4, UnitRevenue: dec("30000")},
			{ProductID: collar(0).ID, Quantity: 2, UnitRevenue: dec("45000")},
		},
	})
	require.NoError(t, err)

	// Totales: revenue 4×30000 + 2×45000, costo 4×12000 + 2×20000.
	assert.True(t, resp.TotalRevenue.Equal(dec("210000")), "revenue: %s", resp.TotalRevenue)
	assert.True(t, resp.TotalCost.Equal(dec("88000")), "cost: %s", resp.TotalCost)
	assert.True(t, resp.NetProfit.Equal(dec("122000")), "profit: %s", resp.NetProfit)
	assert.Equal(t, 1, resp.Folio)
	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)

	// Stock descontado.
	p, _ := w.products.GetByID(candongas(0).ID)
	assert.Equal(t, 6, p.Stock)
	p, _ = w.products.GetByID(collar(0).ID)
	assert.Equal(t, 3, p.Stock)

	// Ingreso en el libro ligado a la venta.
	txn, err := w.transactions.GetBySaleID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, entity.TransactionIncome, txn.Type)
	assert.True(t, txn.Amount.Equal(dec("210000")))
	assert.Equal(t, "Venta #1 (WHATSAPP)", txn.Description)
}

// Caso 2: el snapshot de costo por línea es el precio mayorista al momento de
// la venta; subir el precio después no reescribe la ganancia histórica.
func TestRecordSale_SnapshotDeCosto(t *testing.T) {
	w := newLedgerWorld(candongas(10))

	resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		Channel:       entity.ChannelInstagram,
		PaymentMethod: entity.PaymentTransferencia,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 1, UnitRevenue: dec("30000")},
		},
	})
	require.NoError(t, err)

	p, _ := w.products.GetByID(candongas(0).ID)
	p.WholesalePrice = dec("18000")
	require.NoError(t, w.products.Update(p))

	sale, err := w.sales.GetByID(resp.ID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].UnitCost.Equal(dec("12000")), "el costo unitario debe quedar congelado")
	assert.True(t, sale.Items[0].UnitProfit.Equal(dec("18000")))
}

// Caso 3: la venta con clienta incluye su nombre en la descripción del ingreso.
func TestRecordSale_ConClienta(t *testing.T) {
	w := newLedgerWorld(candongas(10))
	require.NoError(t, w.customers.Create(&entity.Customer{
		ID:   "33333333-3333-3333-3333-333333333333",
		Name: "María Fernanda",
	}))

	resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		CustomerID:    "33333333-3333-3333-3333-333333333333",
		Channel:       entity.ChannelPresencial,
		PaymentMethod: entity.PaymentEfectivo,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 1, UnitRevenue: dec("30000")},
		},
	})
	require.NoError(t, err)

	txn, _ := w.transactions.GetBySaleID(resp.ID)
	require.NotNil(t, txn)
	assert.Equal(t, "Venta #1 — María Fernanda (PRESENCIAL)", txn.Description)
}

// Caso 4: stock insuficiente → ErrInsufficientStock y CERO mutaciones: el
// descuento de la primera línea se revierte junto con todo lo demás.
func TestRecordSale_StockInsuficienteSinMutaciones(t *testing.T) {
	w := newLedgerWorld(candongas(10), collar(1))

	_, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		Channel:       entity.ChannelWhatsapp,
		PaymentMethod: entity.PaymentDaviplata,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 2, UnitRevenue: dec("30000")},
			{ProductID: collar(0).ID, Quantity: 3, UnitRevenue: dec("45000")},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// El error nombra producto, disponible y solicitado.
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "COL-014", stockErr.ProductRef)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	// Nada cambió: ni stock, ni ventas, ni libro.
	p, _ := w.products.GetByID(candongas(0).ID)
	assert.Equal(t, 10, p.Stock)
	p, _ = w.products.GetByID(collar(0).ID)
	assert.Equal(t, 1, p.Stock)
	_, total, _ := w.sales.ListByUser(testUserID, repository.SaleFilter{}, 50, 0)
	assert.Equal(t, 0, total)
	txns, _ := w.transactions.ListByUser(testUserID, repository.TransactionFilter{})
	assert.Empty(t, txns)
}

// Caso 5: validación de entrada (canal, método de pago, cantidades, precios).
func TestRecordSale_EntradaInvalida(t *testing.T) {
	w := newLedgerWorld(candongas(10))
	base := dto.CreateSaleRequest{
		Channel:       entity.ChannelWhatsapp,
		PaymentMethod: entity.PaymentNequi,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 1, UnitRevenue: dec("30000")},
		},
	}

	cases := []struct {
		name   string
		mutate func(*dto.CreateSaleRequest)
	}{
		{"sin items", func(r *dto.CreateSaleRequest) { r.Items = nil }},
		{"canal desconocido", func(r *dto.CreateSaleRequest) { r.Channel = "TIKTOK" }},
		{"pago desconocido", func(r *dto.CreateSaleRequest) { r.PaymentMethod = "CHEQUE" }},
		{"cantidad cero", func(r *dto.CreateSaleRequest) { r.Items[0].Quantity = 0 }},
		{"precio cero", func(r *dto.CreateSaleRequest) { r.Items[0].UnitRevenue = dec("0") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			req.Items = append([]dto.SaleItemRequest(nil), base.Items...)
			tc.mutate(&req)
			_, err := w.saleUC.RecordSale(context.Background(), testUserID, req)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err: %v", err)
		})
	}

	// Producto inexistente o inactivo → NOT_FOUND.
	req := base
	req.Items = []dto.SaleItemRequest{{ProductID: "no-existe", Quantity: 1, UnitRevenue: dec("30000")}}
	_, err := w.saleUC.RecordSale(context.Background(), testUserID, req)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// Caso 6: los folios son consecutivos por orden de creación.
func TestRecordSale_FoliosConsecutivos(t *testing.T) {
	w := newLedgerWorld(candongas(10))

	for want := 1; want <= 3; want++ {
		resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
			Channel:       entity.ChannelWhatsapp,
			PaymentMethod: entity.PaymentNequi,
			Items: []dto.SaleItemRequest{
				{ProductID: candongas(0).ID, Quantity: 1, UnitRevenue: dec("30000")},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, want, resp.Folio)
	}
}

// Caso 7: cancelar devuelve el stock, marca CANCELLED, deja el ingreso en cero
// con la descripción marcada y NO toca los totales de la venta.
func TestCancelSale_DevuelveStockYAnulaIngreso(t *testing.T) {
	w := newLedgerWorld(candongas(10))

	resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		Channel:       entity.ChannelWhatsapp,
		PaymentMethod: entity.PaymentNequi,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 4, UnitRevenue: dec("30000")},
		},
	})
	require.NoError(t, err)
	p, _ := w.products.GetByID(candongas(0).ID)
	require.Equal(t, 6, p.Stock)

	cancelled, err := w.saleUC.CancelSale(context.Background(), testUserID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, cancelled.Status)

	// Stock restaurado al valor original.
	p, _ = w.products.GetByID(candongas(0).ID)
	assert.Equal(t, 10, p.Stock)

	// El ingreso se conserva para auditoría: monto cero y descripción marcada.
	txn, _ := w.transactions.GetBySaleID(resp.ID)
	require.NotNil(t, txn)
	assert.True(t, txn.Amount.IsZero())
	assert.True(t, strings.HasPrefix(txn.Description, entity.CancelledTag))

	// Los totales de la venta quedan intactos (snapshot inmutable).
	sale, _ := w.sales.GetByID(resp.ID)
	assert.True(t, sale.TotalRevenue.Equal(dec("120000")))
	assert.True(t, sale.NetProfit.Equal(dec("72000")))
}

// Caso 8: cancelar dos veces es idempotente: la segunda no vuelve a sumar stock.
func TestCancelSale_Idempotente(t *testing.T) {
	w := newLedgerWorld(candongas(10))

	resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		Channel:       entity.ChannelWhatsapp,
		PaymentMethod: entity.PaymentNequi,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 4, UnitRevenue: dec("30000")},
		},
	})
	require.NoError(t, err)

	_, err = w.saleUC.CancelSale(context.Background(), testUserID, resp.ID)
	require.NoError(t, err)
	again, err := w.saleUC.CancelSale(context.Background(), testUserID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, again.Status)

	p, _ := w.products.GetByID(candongas(0).ID)
	assert.Equal(t, 10, p.Stock, "la segunda cancelación no debe duplicar la devolución")
}

// Dos cancelaciones que pasan ambas la verificación previa de estado: la que
// llega segunda a la transacción encuentra la venta ya cancelada (el cambio de
// estado es condicional) y no vuelve a devolver stock ni a tocar el libro.
func TestCancelSale_CancelacionesConcurrentes(t *testing.T) {
	w := newLedgerWorld(candongas(10))

	resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		Channel:       entity.ChannelWhatsapp,
		PaymentMethod: entity.PaymentNequi,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 4, UnitRevenue: dec("30000")},
		},
	})
	require.NoError(t, err)

	// La petición competidora se cuela entre la lectura previa de la primera
	// cancelación y su transacción, y completa la cancelación entera.
	w.runner.before = func() {
		_, err := w.saleUC.CancelSale(context.Background(), testUserID, resp.ID)
		require.NoError(t, err)
	}

	cancelled, err := w.saleUC.CancelSale(context.Background(), testUserID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, cancelled.Status)

	// El stock se devolvió exactamente una vez.
	p, _ := w.products.GetByID(candongas(0).ID)
	assert.Equal(t, 10, p.Stock)

	// Y la descripción del asiento se marcó exactamente una vez.
	txn, _ := w.transactions.GetBySaleID(resp.ID)
	require.NotNil(t, txn)
	assert.True(t, txn.Amount.IsZero())
	assert.True(t, strings.HasPrefix(txn.Description, entity.CancelledTag))
	assert.False(t, strings.HasPrefix(txn.Description, entity.CancelledTag+entity.CancelledTag))
}

// Caso 9: SetStatus con CANCELLED se enruta por la cancelación completa;
// otras transiciones no tocan stock ni libro.
func TestSetStatus_Transiciones(t *testing.T) {
	w := newLedgerWorld(candongas(10))

	resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		Channel:       entity.ChannelWhatsapp,
		PaymentMethod: entity.PaymentContraEntrega,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 2, UnitRevenue: dec("30000")},
		},
	})
	require.NoError(t, err)

	// COMPLETED → PENDING_PAYMENT: solo cambia el estado.
	updated, err := w.saleUC.SetStatus(context.Background(), testUserID, resp.ID, entity.SaleStatusPendingPayment)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPendingPayment, updated.Status)
	p, _ := w.products.GetByID(candongas(0).ID)
	assert.Equal(t, 8, p.Stock)

	// PENDING_PAYMENT → CANCELLED: devuelve stock y anula el ingreso.
	updated, err = w.saleUC.SetStatus(context.Background(), testUserID, resp.ID, entity.SaleStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, updated.Status)
	p, _ = w.products.GetByID(candongas(0).ID)
	assert.Equal(t, 10, p.Stock)

	// Estado fuera de la enumeración.
	_, err = w.saleUC.SetStatus(context.Background(), testUserID, resp.ID, "DEVUELTA")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Caso 10: la venta de otro usuario no es visible ni cancelable.
func TestSale_PropiedadPorUsuario(t *testing.T) {
	w := newLedgerWorld(candongas(10))

	resp, err := w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
		Channel:       entity.ChannelWhatsapp,
		PaymentMethod: entity.PaymentNequi,
		Items: []dto.SaleItemRequest{
			{ProductID: candongas(0).ID, Quantity: 1, UnitRevenue: dec("30000")},
		},
	})
	require.NoError(t, err)

	otherUser := "00000000-0000-0000-0000-0000000000bb"
	_, err = w.saleUC.GetSale(context.Background(), otherUser, resp.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	_, err = w.saleUC.CancelSale(context.Background(), otherUser, resp.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// Caso 11: dos ventas concurrentes que juntas exceden el stock → exactamente
// una pasa. Con stock 5 y dos ventas de 3, el stock final es 2, nunca -1.
func TestRecordSale_ConcurrenciaSinSobreventa(t *testing.T) {
	w := newLedgerWorld(candongas(5))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = w.saleUC.RecordSale(context.Background(), testUserID, dto.CreateSaleRequest{
				Channel:       entity.ChannelWhatsapp,
				PaymentMethod: entity.PaymentNequi,
				Items: []dto.SaleItemRequest{
					{ProductID: candongas(0).ID, Quantity: 3, UnitRevenue: dec("30000")},
				},
			})
		}(i)
	}
	wg.Wait()

	okCount, conflictCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			conflictCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una venta debe pasar")
	assert.Equal(t, 1, conflictCount, "la otra debe fallar por stock")

	p, _ := w.products.GetByID(candongas(0).ID)
	assert.Equal(t, 2, p.Stock)
}
