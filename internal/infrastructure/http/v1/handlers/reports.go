package handlers

import (
	"github.com/gin-gonic/gin"

	"milkledger/internal/domain/reports"
)

// ReportsHandler serves settlement reports.
type ReportsHandler struct {
	BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(service *reports.Service) *ReportsHandler {
	return &ReportsHandler{service: service}
}

// Overview returns a module's monthly overview.
// GET /api/v1/ledger/:module/overview?month=YYYY-MM
func (h *ReportsHandler) Overview(c *gin.Context) {
	module, ok := h.ParseModule(c)
	if !ok {
		return
	}
	overview, err := h.service.MonthlyOverview(c.Request.Context(), module, c.Query("month"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, overview)
}

// Outstanding returns contacts still carrying an open balance at the end
// of a month, with the grand total.
// GET /api/v1/ledger/:module/outstanding?month=YYYY-MM
func (h *ReportsHandler) Outstanding(c *gin.Context) {
	module, ok := h.ParseModule(c)
	if !ok {
		return
	}
	report, err := h.service.Outstanding(c.Request.Context(), module, c.Query("month"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Profit returns a month's sale billing set against its purchase billing.
// GET /api/v1/reports/profit?month=YYYY-MM
func (h *ReportsHandler) Profit(c *gin.Context) {
	summary, err := h.service.MonthlyProfit(c.Request.Context(), c.Query("month"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// Statement returns a contact's day-by-day month view.
// GET /api/v1/contacts/:id/statement?month=YYYY-MM
func (h *ReportsHandler) Statement(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	statement, err := h.service.Statement(c.Request.Context(), contactID, c.Query("month"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, statement)
}
