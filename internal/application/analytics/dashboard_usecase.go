package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/domain/entity"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

const (
	topProductsLimit    = 5
	recentActivityLimit = 10
	trendMonths         = 6
)

var hundred = decimal.NewFromInt(100)

// etiquetas cortas de mes para las series de las gráficas.
var monthShort = [12]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// DashboardUseCase consolida los KPIs del mes en curso: ventas, ganancia,
// pagado al proveedor, stock bajo, top de productos, actividad reciente y las
// series mensuales para las gráficas.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, productRepo: productRepo}
}

// GetDashboard arma el tablero del mes en curso. Las consultas son
// independientes entre sí y se lanzan en paralelo.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start, end := &monthStart, &now

	type totalsResult struct {
		totals repository.SalesTotals
		err    error
	}
	type unitsResult struct {
		units int
		err   error
	}
	type purchasesResult struct {
		cost decimal.Decimal
		err  error
	}
	type channelsResult struct {
		rows []repository.ChannelRevenue
		err  error
	}
	type topResult struct {
		rows []repository.ProductSalesResult
		err  error
	}
	type lowStockResult struct {
		rows []*entity.Product
		err  error
	}
	type activityResult struct {
		rows []repository.ActivityEntry
		err  error
	}
	type monthlyResult struct {
		rows []repository.MonthlySales
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	unitsCh := make(chan unitsResult, 1)
	purchasesCh := make(chan purchasesResult, 1)
	channelsCh := make(chan channelsResult, 1)
	topCh := make(chan topResult, 1)
	lowStockCh := make(chan lowStockResult, 1)
	activityCh := make(chan activityResult, 1)
	monthlyCh := make(chan monthlyResult, 1)

	go func() {
		totals, err := uc.analyticsRepo.GetSalesTotals(ctx, userID, start, end)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		units, err := uc.analyticsRepo.GetUnitsSold(ctx, userID, start, end)
		unitsCh <- unitsResult{units, err}
	}()
	go func() {
		cost, err := uc.analyticsRepo.GetPurchasesCost(ctx, userID, start, end)
		purchasesCh <- purchasesResult{cost, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetRevenueByChannel(ctx, userID, start, end)
		channelsCh <- channelsResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetSalesByProduct(ctx, userID, start, end, topProductsLimit)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.productRepo.ListLowStock()
		lowStockCh <- lowStockResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetRecentActivity(ctx, userID, recentActivityLimit)
		activityCh <- activityResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMonthlySales(ctx, userID, trendMonths)
		monthlyCh <- monthlyResult{rows, err}
	}()

	totalsRes := <-totalsCh
	unitsRes := <-unitsCh
	purchasesRes := <-purchasesCh
	channelsRes := <-channelsCh
	topRes := <-topCh
	lowStockRes := <-lowStockCh
	activityRes := <-activityCh
	monthlyRes := <-monthlyCh

	if totalsRes.err != nil {
		return nil, fmt.Errorf("dashboard: totales de ventas: %w", totalsRes.err)
	}
	if unitsRes.err != nil {
		return nil, fmt.Errorf("dashboard: unidades vendidas: %w", unitsRes.err)
	}
	if purchasesRes.err != nil {
		return nil, fmt.Errorf("dashboard: pagado al proveedor: %w", purchasesRes.err)
	}
	if channelsRes.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos por canal: %w", channelsRes.err)
	}
	if topRes.err != nil {
		return nil, fmt.Errorf("dashboard: top de productos: %w", topRes.err)
	}
	if lowStockRes.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", lowStockRes.err)
	}
	if activityRes.err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", activityRes.err)
	}
	if monthlyRes.err != nil {
		return nil, fmt.Errorf("dashboard: series mensuales: %w", monthlyRes.err)
	}

	margin := decimal.Zero
	if totalsRes.totals.Revenue.IsPositive() {
		margin = totalsRes.totals.Profit.Div(totalsRes.totals.Revenue).Mul(hundred).Round(2)
	}

	byChannel := make(map[string]decimal.Decimal, len(entity.SaleChannels))
	for _, c := range entity.SaleChannels {
		byChannel[c] = decimal.Zero
	}
	for _, row := range channelsRes.rows {
		byChannel[row.Channel] = row.Revenue
	}

	resp := &dto.DashboardResponse{
		TotalRevenue:        totalsRes.totals.Revenue,
		TotalProfit:         totalsRes.totals.Profit,
		ProfitMargin:        margin,
		TotalPaidToSupplier: purchasesRes.cost,
		UnitsSold:           unitsRes.units,
		RevenueByChannel:    byChannel,
		LowStockProducts:    make([]dto.LowStockProductDTO, 0, len(lowStockRes.rows)),
		TopProducts:         make([]dto.ProductRankingEntry, 0, len(topRes.rows)),
		RecentActivity:      make([]dto.ActivityEntryDTO, 0, len(activityRes.rows)),
	}
	for _, p := range lowStockRes.rows {
		resp.LowStockProducts = append(resp.LowStockProducts, dto.LowStockProductDTO{
			ID:       p.ID,
			Ref:      p.Ref,
			Name:     p.Name,
			Icon:     p.Icon,
			Stock:    p.Stock,
			MinStock: p.MinStock,
		})
	}
	for _, row := range topRes.rows {
		resp.TopProducts = append(resp.TopProducts, dto.ProductRankingEntry{
			ProductID:     row.ProductID,
			Ref:           row.Ref,
			Name:          row.Name,
			Icon:          row.Icon,
			TotalQuantity: row.TotalQuantity,
			TotalRevenue:  row.TotalRevenue,
			TotalProfit:   row.TotalProfit,
		})
	}
	for _, row := range activityRes.rows {
		resp.RecentActivity = append(resp.RecentActivity, dto.ActivityEntryDTO{
			Type:        row.Type,
			ID:          row.ID,
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Channel:     row.Channel,
		})
	}
	resp.MonthlyRevenue, resp.MonthlyProfit = buildMonthlySeries(monthlyRes.rows, now, trendMonths)
	return resp, nil
}

// buildMonthlySeries arma las series de revenue y profit de los últimos
// `months` meses, rellenando en cero los meses sin ventas.
func buildMonthlySeries(rows []repository.MonthlySales, now time.Time, months int) (revenue, profit []dto.MonthlyPointDTO) {
	byMonth := make(map[string]repository.MonthlySales, len(rows))
	for _, row := range rows {
		byMonth[row.Month.Format("2006-01")] = row
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	revenue = make([]dto.MonthlyPointDTO, 0, months)
	profit = make([]dto.MonthlyPointDTO, 0, months)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		label := monthShort[m.Month()-1]
		row := byMonth[key]
		revenue = append(revenue, dto.MonthlyPointDTO{Month: key, Label: label, Value: row.Revenue})
		profit = append(profit, dto.MonthlyPointDTO{Month: key, Label: label, Value: row.Profit})
	}
	return revenue, profit
}
