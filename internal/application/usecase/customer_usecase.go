package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/customer"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientas. Toda lectura sale con los
// agregados del historial COMPLETED y el nivel derivado.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, saleRepo: saleRepo}
}

// Create registra una clienta nueva.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if len(in.Name) < 2 {
		return nil, fmt.Errorf("%w: el nombre debe tener al menos 2 caracteres", domain.ErrInvalidInput)
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Instagram: in.Instagram,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(repository.CustomerStats{Customer: *c})
	return &resp, nil
}

// Update actualiza parcialmente una clienta.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if len(*in.Name) < 2 {
			return nil, fmt.Errorf("%w: el nombre debe tener al menos 2 caracteres", domain.ErrInvalidInput)
		}
		c.Name = *in.Name
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Instagram != nil {
		c.Instagram = *in.Instagram
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	c.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(c); err != nil {
		return nil, err
	}
	stats, err := uc.customerRepo.GetStats(id)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &repository.CustomerStats{Customer: *c}
	}
	resp := toCustomerResponse(*stats)
	return &resp, nil
}

// List lista las clientas con sus agregados y nivel.
func (uc *CustomerUseCase) List() (*dto.CustomerListResponse, error) {
	list, err := uc.customerRepo.ListWithStats()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, stats := range list {
		items = append(items, toCustomerResponse(stats))
	}
	return &dto.CustomerListResponse{Items: items, Total: len(items)}, nil
}

// GetDetail devuelve una clienta con su historial completo de ventas.
func (uc *CustomerUseCase) GetDetail(id string) (*dto.CustomerDetailResponse, error) {
	stats, err := uc.customerRepo.GetStats(id)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, domain.ErrNotFound
	}
	sales, err := uc.saleRepo.ListByCustomer(id)
	if err != nil {
		return nil, err
	}
	detail := &dto.CustomerDetailResponse{
		CustomerResponse: toCustomerResponse(*stats),
		Sales:            make([]dto.SaleResponse, 0, len(sales)),
	}
	for _, s := range sales {
		detail.Sales = append(detail.Sales, *toSaleResponse(s))
	}
	return detail, nil
}

func toCustomerResponse(stats repository.CustomerStats) dto.CustomerResponse {
	c := stats.Customer
	return dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Instagram:      c.Instagram,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		TotalSpent:     stats.TotalSpent,
		TotalPurchases: stats.TotalPurchases,
		LastPurchase:   stats.LastPurchase,
		Level:          customer.Level(stats.TotalSpent, stats.TotalPurchases),
	}
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
