package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

// SaleUseCase registra y cancela ventas de forma transaccional.
//
// En el registro, la verificación de stock y el descuento son UNA sola
// sentencia condicional dentro de la transacción (DecrementStock): dos ventas
// concurrentes del mismo producto no pueden pasar ambas la verificación por
// cantidades que juntas excedan el disponible.
type SaleUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	saleRepo        repository.SaleRepository
	customerRepo    repository.CustomerRepository
	transactionRepo repository.TransactionRepository
	analyticsRepo   repository.AnalyticsRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	transactionRepo repository.TransactionRepository,
	analyticsRepo repository.AnalyticsRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:        txRunner,
		productRepo:     productRepo,
		saleRepo:        saleRepo,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		analyticsRepo:   analyticsRepo,
	}
}

// RecordSale crea una venta COMPLETED con folio consecutivo: descuenta stock
// con la sentencia condicional, toma snapshot del costo mayorista por línea,
// calcula los totales y asienta el ingreso en el libro contable. Todo dentro
// de una transacción; cualquier fallo revierte stock, venta y asiento.
func (uc *SaleUseCase) RecordSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: debe incluir al menos un producto", domain.ErrInvalidInput)
	}
	if !entity.ValidSaleChannel(in.Channel) {
		return nil, fmt.Errorf("%w: canal %q", domain.ErrInvalidInput, in.Channel)
	}
	if !entity.ValidSalePaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
		}
		if !item.UnitRevenue.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el precio de venta debe ser positivo", domain.ErrInvalidInput)
		}
	}

	var customerName string
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: clienta %s", domain.ErrNotFound, in.CustomerID)
		}
		customerName = customer.Name
	}

	// Pre-chequeo fuera de la transacción para rechazar temprano con un error
	// claro. La garantía real contra carreras es el decremento condicional de
	// dentro de la transacción, que revalida stock y existencia en una sentencia.
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
		}
		if product.Stock < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductRef:  product.Ref,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		totalRevenue := decimal.Zero
		totalCost := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(in.Items))

		for _, item := range in.Items {
			// Relee el producto dentro de la tx: el snapshot de costo debe ser
			// el precio mayorista vigente al momento de la venta.
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
			}

			ok, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.InsufficientStockError{
					ProductRef:  product.Ref,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}

			unitCost := product.WholesalePrice
			qty := decimal.NewFromInt(int64(item.Quantity))
			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				UnitRevenue: item.UnitRevenue,
				UnitCost:    unitCost,
				UnitProfit:  item.UnitRevenue.Sub(unitCost),
			})
			totalRevenue = totalRevenue.Add(item.UnitRevenue.Mul(qty))
			totalCost = totalCost.Add(unitCost.Mul(qty))
		}

		sale = &entity.Sale{
			ID:            saleID,
			UserID:        userID,
			CustomerID:    in.CustomerID,
			Channel:       in.Channel,
			PaymentMethod: in.PaymentMethod,
			TotalRevenue:  totalRevenue,
			TotalCost:     totalCost,
			NetProfit:     totalRevenue.Sub(totalCost),
			Status:        entity.SaleStatusCompleted,
			Notes:         in.Notes,
			SoldAt:        now,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		sale.Items = items

		description := fmt.Sprintf("Venta #%d", sale.Folio)
		if customerName != "" {
			description += " — " + customerName
		}
		description += fmt.Sprintf(" (%s)", in.Channel)
		return transactionRepo.Create(&entity.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			Type:        entity.TransactionIncome,
			Amount:      totalRevenue,
			Category:    entity.CategoryOtroGasto,
			Description: description,
			Date:        now,
			SaleID:      saleID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// CancelSale devuelve el stock de cada línea, marca la venta CANCELLED y deja
// el asiento contable ligado en cero con su descripción marcada (la fila se
// conserva para auditoría). Los totales de la venta no se tocan.
//
// Idempotente: cancelar una venta ya cancelada no tiene efecto sobre stock ni
// libro contable; devuelve la venta tal cual.
func (uc *SaleUseCase) CancelSale(ctx context.Context, userID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if sale.Status == entity.SaleStatusCancelled {
		return toSaleResponse(sale), nil
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		// El cambio de estado es condicional: si otra petición canceló entre
		// la lectura de arriba y esta transacción, no se devuelve stock otra vez.
		flipped, err := saleRepo.MarkCancelled(sale.ID)
		if err != nil {
			return err
		}
		if !flipped {
			return nil
		}
		for _, item := range sale.Items {
			if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		transaction, err := transactionRepo.GetBySaleID(sale.ID)
		if err != nil {
			return err
		}
		if transaction != nil {
			return transactionRepo.MarkCancelled(transaction.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sale.Status = entity.SaleStatusCancelled
	return toSaleResponse(sale), nil
}

// SetStatus cambia el estado de una venta. Las transiciones que no cancelan
// (ej. PENDING_PAYMENT → COMPLETED) son una actualización simple sin efectos
// sobre stock ni libro; CANCELLED se enruta por CancelSale.
func (uc *SaleUseCase) SetStatus(ctx context.Context, userID, saleID, status string) (*dto.SaleResponse, error) {
	if !entity.ValidSaleStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	if status == entity.SaleStatusCancelled {
		return uc.CancelSale(ctx, userID, saleID)
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if err := uc.saleRepo.UpdateStatus(sale.ID, status); err != nil {
		return nil, err
	}
	sale.Status = status
	return toSaleResponse(sale), nil
}

// GetSale obtiene una venta por ID con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, userID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toSaleResponse(sale), nil
}

// ListSales lista las ventas del usuario, paginadas y filtrables.
func (uc *SaleUseCase) ListSales(ctx context.Context, userID string, filter repository.SaleFilter, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, total, err := uc.saleRepo.ListByUser(userID, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}
	for _, s := range sales {
		out.Items = append(out.Items, *toSaleResponse(s))
	}
	return out, nil
}

// Summary devuelve revenue, costo, ganancia, margen y revenue por canal de las
// ventas COMPLETED del período. Los reportes siempre filtran por estado para
// no contar ventas canceladas.
func (uc *SaleUseCase) Summary(ctx context.Context, userID string, startDate, endDate *time.Time) (*dto.SaleSummaryResponse, error) {
	totals, err := uc.analyticsRepo.GetSalesTotals(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	byChannel, err := uc.analyticsRepo.GetRevenueByChannel(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	margin := decimal.Zero
	if totals.Revenue.GreaterThan(decimal.Zero) {
		margin = totals.Profit.Div(totals.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}
	channels := make(map[string]decimal.Decimal, len(entity.SaleChannels))
	for _, c := range entity.SaleChannels {
		channels[c] = decimal.Zero
	}
	for _, row := range byChannel {
		channels[row.Channel] = row.Revenue
	}
	return &dto.SaleSummaryResponse{
		TotalRevenue: totals.Revenue,
		TotalCost:    totals.Cost,
		NetProfit:    totals.Profit,
		Margin:       margin,
		ByChannel:    channels,
	}, nil
}

// ByProduct devuelve el ranking de productos vendidos ordenado por ganancia.
func (uc *SaleUseCase) ByProduct(ctx context.Context, userID string) ([]dto.ProductRankingEntry, error) {
	rows, err := uc.analyticsRepo.GetSalesByProduct(ctx, userID, nil, nil, 0)
	if err != nil {
		return nil, err
	}
	ranking := make([]dto.ProductRankingEntry, 0, len(rows))
	for _, row := range rows {
		ranking = append(ranking, dto.ProductRankingEntry{
			ProductID:     row.ProductID,
			Ref:           row.Ref,
			Name:          row.Name,
			Icon:          row.Icon,
			TotalQuantity: row.TotalQuantity,
			TotalRevenue:  row.TotalRevenue,
			TotalProfit:   row.TotalProfit,
		})
	}
	return ranking, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		Folio:         s.Folio,
		CustomerID:    s.CustomerID,
		Channel:       s.Channel,
		PaymentMethod: s.PaymentMethod,
		TotalRevenue:  s.TotalRevenue,
		TotalCost:     s.TotalCost,
		NetProfit:     s.NetProfit,
		Status:        s.Status,
		Notes:         s.Notes,
		SoldAt:        s.SoldAt,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitRevenue: item.UnitRevenue,
			UnitCost:    item.UnitCost,
			UnitProfit:  item.UnitProfit,
		})
	}
	return resp
}
