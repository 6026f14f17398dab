package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/minegocio/avemaria-api/internal/application/dto"
	"github.com/minegocio/avemaria-api/internal/application/usecase"
	"github.com/minegocio/avemaria-api/internal/domain/repository"
)

// AccountingHandler maneja las peticiones HTTP del libro contable (protegido).
type AccountingHandler struct {
	uc *usecase.AccountingUseCase
}

// NewAccountingHandler construye el handler.
func NewAccountingHandler(uc *usecase.AccountingUseCase) *AccountingHandler {
	return &AccountingHandler{uc: uc}
}

// ListTransactions godoc
// @Summary      Listar movimientos del libro contable
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "INCOME | EXPENSE"
// @Param        category    query  string  false  "Categoría de gasto"
// @Param        start_date  query  string  false  "yyyy-MM-dd"
// @Param        end_date    query  string  false  "yyyy-MM-dd"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/accounting/transactions [get]
func (h *AccountingHandler) ListTransactions(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato yyyy-MM-dd"})
	}
	filter := repository.TransactionFilter{
		Type:      c.Query("type"),
		Category:  c.Query("category"),
		StartDate: start,
		EndDate:   end,
	}
	out, err := h.uc.ListTransactions(GetUserID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateExpense godoc
// @Summary      Registrar gasto manual
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Monto, categoría y descripción"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounting/expenses [post]
func (h *AccountingHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateExpense(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Summary godoc
// @Summary      Resumen contable del período
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "yyyy-MM-dd"
// @Param        end_date    query  string  false  "yyyy-MM-dd"
// @Success      200  {object}  dto.AccountingSummaryResponse
// @Router       /api/accounting/summary [get]
func (h *AccountingHandler) Summary(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato yyyy-MM-dd"})
	}
	out, err := h.uc.Summary(c.Context(), GetUserID(c), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByMonth godoc
// @Summary      Ingresos, gastos y ganancia mes a mes
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Meses hacia atrás"  default(12)
// @Success      200  {array}  dto.MonthlyLedgerEntry
// @Router       /api/accounting/by-month [get]
func (h *AccountingHandler) ByMonth(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)
	out, err := h.uc.ByMonth(c.Context(), GetUserID(c), months)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PerHundred godoc
// @Summary      Reporte "por cada $100 cobrados"
// @Description  Cuánto de cada $100 de ingreso se va en cada categoría de gasto
// @Description  y cuánto queda de ganancia.
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "yyyy-MM-dd"
// @Param        end_date    query  string  false  "yyyy-MM-dd"
// @Success      200  {object}  dto.PerHundredResponse
// @Router       /api/accounting/per-hundred [get]
func (h *AccountingHandler) PerHundred(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato yyyy-MM-dd"})
	}
	out, err := h.uc.PerHundred(c.Context(), GetUserID(c), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
