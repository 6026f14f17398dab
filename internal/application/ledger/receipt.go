package ledger

import (
	"context"
	"fmt"

	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

// ReceiptItemForPDF línea de venta enriquecida con el nombre del producto.
type ReceiptItemForPDF struct {
	entity.SaleItem
	ProductName string
	ProductIcon string
}

// ReceiptPDFGenerator genera el comprobante gráfico de una venta.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, user *entity.User, customer *entity.Customer, items []ReceiptItemForPDF) ([]byte, error)
}

// ReceiptUseCase genera el comprobante PDF de una venta para enviar a la
// clienta por WhatsApp o Instagram.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadSaleReceipt recupera la venta con sus líneas, la enriquece con los
// nombres de producto y genera el comprobante.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe.
//   - domain.ErrForbidden        si la venta no pertenece al usuario del token.
//   - domain.ErrInvalidInput     si la venta está cancelada.
func (uc *ReceiptUseCase) DownloadSaleReceipt(
	ctx context.Context,
	userID, saleID string,
) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if sale.UserID != userID {
		return nil, "", domain.ErrForbidden
	}
	if sale.Status == entity.SaleStatusCancelled {
		return nil, "", fmt.Errorf("%w: la venta está cancelada", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}

	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("receipt: obtener clienta: %w", err)
		}
	}

	enriched := make([]ReceiptItemForPDF, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := "Producto " + item.ProductID // fallback
		icon := ""
		if product, pErr := uc.productRepo.GetByID(item.ProductID); pErr == nil && product != nil {
			name = product.Name
			icon = product.Icon
		}
		enriched = append(enriched, ReceiptItemForPDF{
			SaleItem:    *item,
			ProductName: name,
			ProductIcon: icon,
		})
	}

	pdfBytes, err = uc.generator.GenerateSaleReceipt(ctx, sale, user, customer, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("venta_%d.pdf", sale.Folio)
	return pdfBytes, filename, nil
}
