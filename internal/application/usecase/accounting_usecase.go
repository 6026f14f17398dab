package usecase

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

// nombres cortos de mes para etiquetas de gráficas.
var monthLabels = [12]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// PerHundredProfitRow etiqueta de la fila de ganancia en el reporte por cada $100.
const PerHundredProfitRow = "GANANCIA"

// AccountingUseCase casos de uso del libro contable: listado, gastos manuales
// y reportes (resumen, mensual y "por cada $100").
type AccountingUseCase struct {
	transactionRepo repository.TransactionRepository
	analyticsRepo   repository.AnalyticsRepository
}

// NewAccountingUseCase construye el caso de uso.
func NewAccountingUseCase(transactionRepo repository.TransactionRepository, analyticsRepo repository.AnalyticsRepository) *AccountingUseCase {
	return &AccountingUseCase{transactionRepo: transactionRepo, analyticsRepo: analyticsRepo}
}

// ListTransactions lista los movimientos del usuario, filtrables por tipo,
// categoría y rango de fechas.
func (uc *AccountingUseCase) ListTransactions(userID string, filter repository.TransactionFilter) (*dto.TransactionListResponse, error) {
	if filter.Type != "" && filter.Type != entity.TransactionIncome && filter.Type != entity.TransactionExpense {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, filter.Type)
	}
	list, err := uc.transactionRepo.ListByUser(userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TransactionResponse{
			ID:          t.ID,
			Type:        t.Type,
			Amount:      t.Amount,
			Category:    t.Category,
			Description: t.Description,
			Date:        t.Date,
			SaleID:      t.SaleID,
			PurchaseID:  t.PurchaseID,
		})
	}
	return &dto.TransactionListResponse{Items: items, Total: len(items)}, nil
}

// CreateExpense registra un gasto manual (envíos, empaques, publicidad...).
// Los ingresos nunca se crean a mano: solo los asienta el registro de ventas.
func (uc *AccountingUseCase) CreateExpense(userID string, in dto.CreateExpenseRequest) (*dto.TransactionResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidInput)
	}
	if !entity.ValidExpenseCategory(in.Category) {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: la descripción es obligatoria", domain.ErrInvalidInput)
	}
	now := time.Now()
	t := &entity.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        entity.TransactionExpense,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        now,
		CreatedAt:   now,
	}
	if err := uc.transactionRepo.Create(t); err != nil {
		return nil, err
	}
	return &dto.TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}, nil
}

// Summary devuelve ingresos, gastos, ganancia neta, margen y el desglose de
// gastos por categoría del período.
func (uc *AccountingUseCase) Summary(ctx context.Context, userID string, startDate, endDate *time.Time) (*dto.AccountingSummaryResponse, error) {
	income, expense, err := uc.analyticsRepo.GetLedgerTotals(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.analyticsRepo.GetExpenseBreakdown(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	profit := income.Sub(expense)
	margin := decimal.Zero
	if income.GreaterThan(decimal.Zero) {
		margin = profit.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
	}
	out := &dto.AccountingSummaryResponse{
		TotalIncome:      income,
		TotalExpense:     expense,
		NetProfit:        profit,
		Margin:           margin,
		ExpenseBreakdown: make([]dto.CategoryAmountDTO, 0, len(breakdown)),
	}
	for _, row := range breakdown {
		out.ExpenseBreakdown = append(out.ExpenseBreakdown, dto.CategoryAmountDTO{
			Category: row.Category,
			Amount:   row.Amount,
		})
	}
	return out, nil
}

// ByMonth devuelve ingresos, gastos y ganancia de los últimos `months` meses,
// incluyendo los meses sin movimientos (en cero).
func (uc *AccountingUseCase) ByMonth(ctx context.Context, userID string, months int) ([]dto.MonthlyLedgerEntry, error) {
	if months <= 0 {
		months = 12
	}
	rows, err := uc.analyticsRepo.GetMonthlyLedger(ctx, userID, months)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]repository.MonthlyLedger, len(rows))
	for _, row := range rows {
		byMonth[row.Month.Format("2006-01")] = row
	}

	// Serie completa de atrás hacia adelante terminando en el mes actual.
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	out := make([]dto.MonthlyLedgerEntry, 0, months)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		row := byMonth[key]
		income := row.Income
		expense := row.Expense
		out = append(out, dto.MonthlyLedgerEntry{
			Month:   key,
			Label:   fmt.Sprintf("%s %d", monthLabels[m.Month()-1], m.Year()),
			Income:  income,
			Expense: expense,
			Profit:  income.Sub(expense),
		})
	}
	return out, nil
}

// PerHundred responde "de cada $100 que entran, ¿cuánto se va en qué?":
// una fila por categoría de gasto con su proporción sobre los ingresos del
// período y una fila final GANANCIA con lo que queda.
func (uc *AccountingUseCase) PerHundred(ctx context.Context, userID string, startDate, endDate *time.Time) (*dto.PerHundredResponse, error) {
	income, _, err := uc.analyticsRepo.GetLedgerTotals(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.analyticsRepo.GetExpenseBreakdown(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	out := &dto.PerHundredResponse{PerHundred: make([]dto.PerHundredEntry, 0, len(breakdown)+1)}
	if !income.GreaterThan(decimal.Zero) {
		// Sin ingresos no hay proporción que repartir.
		return out, nil
	}

	hundred := decimal.NewFromInt(100)
	totalExpense := decimal.Zero
	for _, row := range breakdown {
		totalExpense = totalExpense.Add(row.Amount)
		out.PerHundred = append(out.PerHundred, dto.PerHundredEntry{
			Category: row.Category,
			Amount:   row.Amount,
			Per100:   row.Amount.Div(income).Mul(hundred).Round(2),
		})
	}
	profit := income.Sub(totalExpense)
	out.PerHundred = append(out.PerHundred, dto.PerHundredEntry{
		Category: PerHundredProfitRow,
		Amount:   profit,
		Per100:   profit.Div(income).Mul(hundred).Round(2),
	})
	return out, nil
}
