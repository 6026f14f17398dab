package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo. El stock no se edita por
// aquí: solo lo mueven compras, ventas y cancelaciones (el núcleo del libro).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto nuevo. La referencia es única en el catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Ref == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: ref y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidProductCategory(in.Category) {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	if in.WholesalePrice.LessThan(decimal.Zero) || in.RetailPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.Stock < 0 || in.MinStock < 0 {
		return nil, fmt.Errorf("%w: stock y stock mínimo no pueden ser negativos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByRef(in.Ref)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un producto con ref %q", domain.ErrDuplicate, in.Ref)
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Ref:            in.Ref,
		Name:           in.Name,
		Category:       in.Category,
		Icon:           in.Icon,
		WholesalePrice: in.WholesalePrice,
		RetailPrice:    in.RetailPrice,
		Stock:          in.Stock,
		MinStock:       in.MinStock,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza parcialmente un producto. Cambiar WholesalePrice solo
// afecta ventas futuras: las líneas ya vendidas conservan su snapshot.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Ref != nil && *in.Ref != product.Ref {
		existing, err := uc.repo.GetByRef(*in.Ref)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: ya existe un producto con ref %q", domain.ErrDuplicate, *in.Ref)
		}
		product.Ref = *in.Ref
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		if !entity.ValidProductCategory(*in.Category) {
			return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, *in.Category)
		}
		product.Category = *in.Category
	}
	if in.Icon != nil {
		product.Icon = *in.Icon
	}
	if in.WholesalePrice != nil {
		if in.WholesalePrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el precio mayorista no puede ser negativo", domain.ErrInvalidInput)
		}
		product.WholesalePrice = *in.WholesalePrice
	}
	if in.RetailPrice != nil {
		if in.RetailPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el precio de venta no puede ser negativo", domain.ErrInvalidInput)
		}
		product.RetailPrice = *in.RetailPrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: el stock mínimo no puede ser negativo", domain.ErrInvalidInput)
		}
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate desactiva un producto (soft delete). El historial de ventas y
// compras que lo referencia se conserva intacto.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

// List lista productos activos con filtros de búsqueda, categoría y stock bajo.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// LowStock lista los productos activos en o por debajo de su umbral mínimo.
func (uc *ProductUseCase) LowStock() ([]dto.LowStockProductDTO, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.LowStockProductDTO{
			ID:       p.ID,
			Ref:      p.Ref,
			Name:     p.Name,
			Icon:     p.Icon,
			Stock:    p.Stock,
			MinStock: p.MinStock,
		})
	}
	return out, nil
}

// Stats devuelve unidades totales y valor del inventario a costo y a precio
// de venta.
func (uc *ProductUseCase) Stats() (*dto.ProductStatsResponse, error) {
	stats, err := uc.repo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.ProductStatsResponse{
		TotalUnits:       stats.TotalUnits,
		TotalCostValue:   stats.TotalCostValue,
		TotalRetailValue: stats.TotalRetailValue,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Ref:            p.Ref,
		Name:           p.Name,
		Category:       p.Category,
		Icon:           p.Icon,
		WholesalePrice: p.WholesalePrice,
		RetailPrice:    p.RetailPrice,
		Stock:          p.Stock,
		MinStock:       p.MinStock,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
