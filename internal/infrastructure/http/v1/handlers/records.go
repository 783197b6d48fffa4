package handlers

import (
	"github.com/gin-gonic/gin"

	"milkledger/internal/domain/ledger"
	"milkledger/internal/infrastructure/http/v1/dto"
)

// RecordHandler serves daily milk records and payments.
type RecordHandler struct {
	BaseHandler
	service *ledger.Service
}

// NewRecordHandler creates a record handler.
func NewRecordHandler(service *ledger.Service) *RecordHandler {
	return &RecordHandler{service: service}
}

// Upsert enters a day's quantities for a contact.
// PUT /api/v1/contacts/:id/records
func (h *RecordHandler) Upsert(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpsertRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.service.EnterQuantities(c.Request.Context(), contactID, req.Date, req.MorningQty, req.EveningQty)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, record)
}

// List returns a contact's record history.
// GET /api/v1/contacts/:id/records
func (h *RecordHandler) List(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	records, err := h.service.ListRecords(c.Request.Context(), contactID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, records)
}

// Delete removes one record.
// DELETE /api/v1/records/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	recordID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteRecord(c.Request.Context(), recordID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePayment registers a settlement for a contact.
// POST /api/v1/contacts/:id/payments
func (h *RecordHandler) CreatePayment(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payment, err := h.service.AddPayment(c.Request.Context(), contactID, req.Date, req.Amount, req.Note)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, payment.ID)
}

// ListPayments returns a contact's payment history.
// GET /api/v1/contacts/:id/payments
func (h *RecordHandler) ListPayments(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	payments, err := h.service.ListPayments(c.Request.Context(), contactID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, payments)
}

// UpdatePayment edits a settlement.
// PATCH /api/v1/payments/:id
func (h *RecordHandler) UpdatePayment(c *gin.Context) {
	paymentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payment, err := h.service.UpdatePayment(c.Request.Context(), paymentID, ledger.UpdatePaymentInput{
		Date:   req.Date,
		Amount: req.Amount,
		Note:   req.Note,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, payment)
}

// DeletePayment removes a settlement.
// DELETE /api/v1/payments/:id
func (h *RecordHandler) DeletePayment(c *gin.Context) {
	paymentID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeletePayment(c.Request.Context(), paymentID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
