package ledger_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minegocio/avemaria-api/internal/application/ledger"
	"github.com/minegocio/avemaria-api/internal/domain"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios. El fakeTxRunner toma un snapshot del
// estado antes de ejecutar la función y lo restaura si falla, imitando el
// rollback de la base de datos: así los tests verifican atomicidad de verdad.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByRef(ref string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Ref == ref {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *fakeProductRepo) List(_ repository.ProductFilter) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Stats() (*repository.ProductStats, error) {
	return &repository.ProductStats{}, nil
}

func (r *fakeProductRepo) IncrementStock(productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += quantity
	return nil
}

// DecrementStock replica la sentencia condicional: verificación y descuento
// bajo el mismo lock, reporta false si el stock no alcanza.
func (r *fakeProductRepo) DecrementStock(productID string, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

func (r *fakeProductRepo) snapshot() map[string]*entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Product, len(r.products))
	for id, p := range r.products {
		cp := *p
		snap[id] = &cp
	}
	return snap
}

func (r *fakeProductRepo) restore(snap map[string]*entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = snap
}

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[string]*entity.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]*entity.Purchase)}
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.Items = nil
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[item.PurchaseID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *item
	p.Items = append(p.Items, &cp)
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePurchaseRepo) ListByUser(userID string, _ repository.PurchaseFilter, _, _ int) ([]*entity.Purchase, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     map[string]*entity.Sale
	nextFolio int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.Sale), nextFolio: 1}
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Folio = r.nextFolio
	r.nextFolio++
	cp := *s
	cp.Items = nil
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[item.SaleID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *item
	s.Items = append(s.Items, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSaleRepo) ListByUser(userID string, _ repository.SaleFilter, _, _ int) ([]*entity.Sale, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (r *fakeSaleRepo) ListByCustomer(customerID string) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	return nil
}

func (r *fakeSaleRepo) MarkCancelled(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok || s.Status == entity.SaleStatusCancelled {
		return false, nil
	}
	s.Status = entity.SaleStatusCancelled
	return true, nil
}

func (r *fakeSaleRepo) snapshot() (map[string]*entity.Sale, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Sale, len(r.sales))
	for id, s := range r.sales {
		cp := *s
		cp.Items = append([]*entity.SaleItem(nil), s.Items...)
		snap[id] = &cp
	}
	return snap, r.nextFolio
}

func (r *fakeSaleRepo) restore(snap map[string]*entity.Sale, nextFolio int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = snap
	r.nextFolio = nextFolio
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*entity.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[string]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Create(t *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTransactionRepo) GetBySaleID(saleID string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.SaleID == saleID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) ListByUser(userID string, _ repository.TransactionFilter) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) MarkCancelled(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Amount = t.Amount.Sub(t.Amount) // cero conservando exp
	if !strings.HasPrefix(t.Description, entity.CancelledTag) {
		t.Description = entity.CancelledTag + t.Description
	}
	return nil
}

func (r *fakeTransactionRepo) snapshot() map[string]*entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.Transaction, len(r.transactions))
	for id, t := range r.transactions {
		cp := *t
		snap[id] = &cp
	}
	return snap
}

func (r *fakeTransactionRepo) restore(snap map[string]*entity.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = snap
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		cp := *c
		r.customers[c.ID] = &cp
	}
	return r
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

func (r *fakeCustomerRepo) ListWithStats() ([]repository.CustomerStats, error) { return nil, nil }

func (r *fakeCustomerRepo) GetStats(id string) (*repository.CustomerStats, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return &repository.CustomerStats{Customer: *c}, nil
}

// fakeTxRunner serializa las "transacciones" con un mutex (aislamiento) y
// restaura el snapshot completo cuando la función devuelve error (rollback).
type fakeTxRunner struct {
	mu           sync.Mutex
	products     *fakeProductRepo
	purchases    *fakePurchaseRepo
	sales        *fakeSaleRepo
	transactions *fakeTransactionRepo

	// before se ejecuta una sola vez justo antes de abrir la transacción.
	// Permite intercalar una operación competidora entre la lectura previa
	// del use case y su transacción.
	before func()
}

func newFakeTxRunner(p *fakeProductRepo, pu *fakePurchaseRepo, s *fakeSaleRepo, t *fakeTransactionRepo) *fakeTxRunner {
	return &fakeTxRunner{products: p, purchases: pu, sales: s, transactions: t}
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ProductRepository,
	repository.PurchaseRepository,
	repository.SaleRepository,
	repository.TransactionRepository,
) error) error {
	if r.before != nil {
		hook := r.before
		r.before = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	productSnap := r.products.snapshot()
	saleSnap, nextFolio := r.sales.snapshot()
	txnSnap := r.transactions.snapshot()

	if err := fn(r.products, r.purchases, r.sales, r.transactions); err != nil {
		r.products.restore(productSnap)
		r.sales.restore(saleSnap, nextFolio)
		r.transactions.restore(txnSnap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos de ejemplo
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txnFilter() repository.TransactionFilter {
	return repository.TransactionFilter{}
}

func candongas(stock int) *entity.Product {
	return &entity.Product{
		ID:             "11111111-1111-1111-1111-111111111111",
		Ref:            "CAN-001",
		Name:           "Candongas doradas",
		Category:       entity.CategoryCandongas,
		WholesalePrice: dec("12000"),
		RetailPrice:    dec("30000"),
		Stock:          stock,
		MinStock:       3,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
}

func collar(stock int) *entity.Product {
	return &entity.Product{
		ID:             "22222222-2222-2222-2222-222222222222",
		Ref:            "COL-014",
		Name:           "Collar perlas",
		Category:       entity.CategoryCollares,
		WholesalePrice: dec("20000"),
		RetailPrice:    dec("45000"),
		Stock:          stock,
		MinStock:       2,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
}

type ledgerWorld struct {
	products     *fakeProductRepo
	purchases    *fakePurchaseRepo
	sales        *fakeSaleRepo
	transactions *fakeTransactionRepo
	customers    *fakeCustomerRepo
	runner       *fakeTxRunner

	saleUC     *ledger.SaleUseCase
	purchaseUC *ledger.PurchaseUseCase
}

func newLedgerWorld(products ...*entity.Product) *ledgerWorld {
	w := &ledgerWorld{
		products:     newFakeProductRepo(products...),
		purchases:    newFakePurchaseRepo(),
		sales:        newFakeSaleRepo(),
		transactions: newFakeTransactionRepo(),
		customers:    newFakeCustomerRepo(),
	}
	w.runner = newFakeTxRunner(w.products, w.purchases, w.sales, w.transactions)
	w.saleUC = ledger.NewSaleUseCase(w.runner, w.products, w.sales, w.customers, w.transactions, nil)
	w.purchaseUC = ledger.NewPurchaseUseCase(w.runner, w.products, w.purchases, nil)
	return w
}
