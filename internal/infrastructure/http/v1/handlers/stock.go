package handlers

import (
	"github.com/gin-gonic/gin"

	"milkledger/internal/domain/stock"
)

// StockHandler serves reconciled stock views.
type StockHandler struct {
	BaseHandler
	service *stock.Service
}

// NewStockHandler creates a stock handler.
func NewStockHandler(service *stock.Service) *StockHandler {
	return &StockHandler{service: service}
}

// Daily returns the reconciled stock picture of one day.
// GET /api/v1/stock/daily?date=YYYY-MM-DD
func (h *StockHandler) Daily(c *gin.Context) {
	snapshot, err := h.service.DailySnapshot(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, snapshot)
}

// Month returns snapshots for every active day of a month.
// GET /api/v1/stock/month?month=YYYY-MM
func (h *StockHandler) Month(c *gin.Context) {
	snapshots, err := h.service.MonthSnapshots(c.Request.Context(), c.Query("month"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, snapshots)
}
