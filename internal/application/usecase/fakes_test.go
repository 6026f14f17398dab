package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeProductRepo catálogo en memoria para los tests del CRUD.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByRef(ref string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Ref == ref {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Ref), needle) {
				continue
			}
		}
		if filter.LowStock && p.Stock > p.MinStock {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	return r.List(repository.ProductFilter{LowStock: true})
}

func (r *fakeProductRepo) Stats() (*repository.ProductStats, error) {
	stats := &repository.ProductStats{}
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		qty := decimal.NewFromInt(int64(p.Stock))
		stats.TotalUnits += p.Stock
		stats.TotalCostValue = stats.TotalCostValue.Add(p.WholesalePrice.Mul(qty))
		stats.TotalRetailValue = stats.TotalRetailValue.Add(p.RetailPrice.Mul(qty))
	}
	return stats, nil
}

func (r *fakeProductRepo) IncrementStock(productID string, quantity int) error {
	if p, ok := r.products[productID]; ok {
		p.Stock += quantity
	}
	return nil
}

func (r *fakeProductRepo) DecrementStock(productID string, quantity int) (bool, error) {
	p, ok := r.products[productID]
	if !ok || !p.IsActive || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

// fakeCustomerRepo clientas en memoria con agregados configurables.
type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	stats     map[string]repository.CustomerStats
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: make(map[string]*entity.Customer),
		stats:     make(map[string]repository.CustomerStats),
	}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) ListWithStats() ([]repository.CustomerStats, error) {
	out := make([]repository.CustomerStats, 0, len(r.customers))
	for id, c := range r.customers {
		stats := r.stats[id]
		stats.Customer = *c
		out = append(out, stats)
	}
	return out, nil
}

func (r *fakeCustomerRepo) GetStats(id string) (*repository.CustomerStats, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	stats := r.stats[id]
	stats.Customer = *c
	return &stats, nil
}

// fakeSaleRepo solo implementa lo que los tests de clientas necesitan.
type fakeSaleRepo struct {
	sales []*entity.Sale
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error        { r.sales = append(r.sales, s); return nil }
func (r *fakeSaleRepo) CreateItem(*entity.SaleItem) error  { return nil }
func (r *fakeSaleRepo) UpdateStatus(id, status string) error { return nil }
func (r *fakeSaleRepo) MarkCancelled(id string) (bool, error) { return false, nil }

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) ListByUser(userID string, filter repository.SaleFilter, limit, offset int) ([]*entity.Sale, int, error) {
	return r.sales, len(r.sales), nil
}

func (r *fakeSaleRepo) ListByCustomer(customerID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeTransactionRepo libro contable en memoria.
type fakeTransactionRepo struct {
	transactions []*entity.Transaction
}

func (r *fakeTransactionRepo) Create(t *entity.Transaction) error {
	cp := *t
	r.transactions = append(r.transactions, &cp)
	return nil
}

func (r *fakeTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetBySaleID(saleID string) (*entity.Transaction, error) {
	for _, t := range r.transactions {
		if t.SaleID == saleID {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) ListByUser(userID string, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTransactionRepo) MarkCancelled(id string) error {
	for _, t := range r.transactions {
		if t.ID == id {
			t.Amount = decimal.Zero
			if !strings.HasPrefix(t.Description, entity.CancelledTag) {
				t.Description = entity.CancelledTag + t.Description
			}
		}
	}
	return nil
}

// fakeAnalyticsRepo devuelve agregados fijos configurados por cada test.
type fakeAnalyticsRepo struct {
	income        decimal.Decimal
	expense       decimal.Decimal
	breakdown     []repository.CategoryAmount
	monthlyLedger []repository.MonthlyLedger
}

func (r *fakeAnalyticsRepo) GetSalesTotals(ctx context.Context, userID string, start, end *time.Time) (repository.SalesTotals, error) {
	return repository.SalesTotals{}, nil
}

func (r *fakeAnalyticsRepo) GetRevenueByChannel(ctx context.Context, userID string, start, end *time.Time) ([]repository.ChannelRevenue, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) GetSalesByProduct(ctx context.Context, userID string, start, end *time.Time, limit int) ([]repository.ProductSalesResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) GetUnitsSold(ctx context.Context, userID string, start, end *time.Time) (int, error) {
	return 0, nil
}

func (r *fakeAnalyticsRepo) GetPurchaseTotals(ctx context.Context, userID string) (repository.PurchaseTotals, error) {
	return repository.PurchaseTotals{}, nil
}

func (r *fakeAnalyticsRepo) GetPurchasesCost(ctx context.Context, userID string, start, end *time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeAnalyticsRepo) GetLedgerTotals(ctx context.Context, userID string, start, end *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return r.income, r.expense, nil
}

func (r *fakeAnalyticsRepo) GetExpenseBreakdown(ctx context.Context, userID string, start, end *time.Time) ([]repository.CategoryAmount, error) {
	return r.breakdown, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyLedger(ctx context.Context, userID string, months int) ([]repository.MonthlyLedger, error) {
	return r.monthlyLedger, nil
}

func (r *fakeAnalyticsRepo) GetMonthlySales(ctx context.Context, userID string, months int) ([]repository.MonthlySales, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) GetRecentActivity(ctx context.Context, userID string, limit int) ([]repository.ActivityEntry, error) {
	return nil, nil
}
