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

// PurchaseUseCase registra compras al proveedor AVEMARÍA de forma transaccional:
// suma stock a cada producto, crea la compra con sus líneas y asienta el gasto
// en el libro contable, todo o nada.
type PurchaseUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	purchaseRepo  repository.PurchaseRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	analyticsRepo repository.AnalyticsRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		purchaseRepo:  purchaseRepo,
		analyticsRepo: analyticsRepo,
	}
}

// RecordPurchase valida la entrada, y dentro de una transacción suma el stock
// de cada producto, crea la compra con sus líneas y asienta un gasto
// COMPRA_AVEMARIA por el total. Si cualquier paso falla no persiste nada.
//
// Reponer un producto inactivo está permitido (reposición histórica); lo único
// exigido es que el producto exista.
func (uc *PurchaseUseCase) RecordPurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: debe incluir al menos un producto", domain.ErrInvalidInput)
	}
	if !entity.ValidPurchasePaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.ShippingCost.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el costo de envío no puede ser negativo", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
		}
		if !item.UnitCost.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el costo unitario debe ser positivo", domain.ErrInvalidInput)
		}
	}

	// Todos los productos deben existir (lectura fuera de la tx; se revalida
	// implícitamente porque el UPDATE de stock no afecta filas inexistentes).
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductID)
		}
	}

	itemsCost := decimal.Zero
	for _, item := range in.Items {
		itemsCost = itemsCost.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	totalCost := itemsCost.Add(in.ShippingCost)

	now := time.Now()
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		UserID:        userID,
		OrderNumber:   in.OrderNumber,
		ShippingCost:  in.ShippingCost,
		TotalCost:     totalCost,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		PurchasedAt:   now,
		CreatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SaleRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		for _, item := range in.Items {
			if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range in.Items {
			line := &entity.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: purchase.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitCost:   item.UnitCost,
			}
			if err := purchaseRepo.CreateItem(line); err != nil {
				return err
			}
			purchase.Items = append(purchase.Items, line)
		}

		description := "Compra a AVEMARÍA"
		if in.OrderNumber != "" {
			description += " — Pedido " + in.OrderNumber
		}
		return transactionRepo.Create(&entity.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			Type:        entity.TransactionExpense,
			Amount:      totalCost,
			Category:    entity.CategoryCompraAvemaria,
			Description: description,
			Date:        now,
			PurchaseID:  purchase.ID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// GetPurchase obtiene una compra por ID con sus líneas.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, userID, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	if purchase.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toPurchaseResponse(purchase), nil
}

// ListPurchases lista las compras del usuario, paginadas y filtrables por fecha.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, userID string, filter repository.PurchaseFilter, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	purchases, total, err := uc.purchaseRepo.ListByUser(userID, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseListResponse{
		Items: make([]dto.PurchaseResponse, 0, len(purchases)),
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}
	for _, p := range purchases {
		out.Items = append(out.Items, *toPurchaseResponse(p))
	}
	return out, nil
}

// Summary devuelve inversión total, unidades compradas y fecha de la última compra.
func (uc *PurchaseUseCase) Summary(ctx context.Context, userID string) (*dto.PurchaseSummaryResponse, error) {
	totals, err := uc.analyticsRepo.GetPurchaseTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseSummaryResponse{
		TotalInvested:    totals.TotalInvested,
		TotalUnits:       totals.TotalUnits,
		LastPurchaseDate: totals.LastPurchase,
	}, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:            p.ID,
		OrderNumber:   p.OrderNumber,
		ShippingCost:  p.ShippingCost,
		TotalCost:     p.TotalCost,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		PurchasedAt:   p.PurchasedAt,
		Items:         make([]dto.PurchaseItemResponse, 0, len(p.Items)),
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}
	return resp
}
