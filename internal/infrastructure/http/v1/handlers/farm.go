package handlers

import (
	"github.com/gin-gonic/gin"

	"milkledger/internal/core/apperror"
	"milkledger/internal/domain/farm"
	"milkledger/internal/infrastructure/http/v1/dto"
)

// FarmHandler serves the own-production log.
type FarmHandler struct {
	BaseHandler
	service *farm.Service
}

// NewFarmHandler creates a farm handler.
func NewFarmHandler(service *farm.Service) *FarmHandler {
	return &FarmHandler{service: service}
}

// Upsert records a day's production.
// PUT /api/v1/farm/records
func (h *FarmHandler) Upsert(c *gin.Context) {
	var req dto.UpsertFarmRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.service.UpsertProduction(c.Request.Context(), req.Date, req.MorningQty, req.EveningQty)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, record)
}

// List returns the full production log.
// GET /api/v1/farm/records
func (h *FarmHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, records)
}

// Delete removes one day's record.
// DELETE /api/v1/farm/records/:id
func (h *FarmHandler) Delete(c *gin.Context) {
	recordID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), recordID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// SetOpeningStock pins or reverts a day's opening stock: a numeric
// openingStock pins it, an explicit null reverts to the derived value.
// PUT /api/v1/farm/opening-stock
func (h *FarmHandler) SetOpeningStock(c *gin.Context) {
	var req dto.OpeningStockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if !req.OpeningStock.IsSet() {
		h.Error(c, apperror.NewValidation("openingStock must be a number or null"))
		return
	}

	var (
		record *farm.FarmRecord
		err    error
	)
	if v, ok := req.OpeningStock.Manual(); ok {
		record, err = h.service.SetOpeningStock(c.Request.Context(), req.Date, v)
	} else {
		record, err = h.service.RevertOpeningStock(c.Request.Context(), req.Date)
	}
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, record)
}
