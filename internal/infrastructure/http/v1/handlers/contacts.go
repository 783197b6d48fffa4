package handlers

import (
	"github.com/gin-gonic/gin"

	"milkledger/internal/domain/ledger"
	"milkledger/internal/infrastructure/http/v1/dto"
)

// ContactHandler serves contact CRUD and rate corrections.
type ContactHandler struct {
	BaseHandler
	service *ledger.Service
}

// NewContactHandler creates a contact handler.
func NewContactHandler(service *ledger.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Create adds a contact to a module.
// POST /api/v1/ledger/:module/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	module, ok := h.ParseModule(c)
	if !ok {
		return
	}
	var req dto.CreateContactRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contact, err := h.service.CreateContact(c.Request.Context(), ledger.CreateContactInput{
		Module:         module,
		Name:           req.Name,
		Phone:          req.Phone,
		RatePerLiter:   req.RatePerLiter,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, contact.ID)
}

// List returns a module's contacts.
// GET /api/v1/ledger/:module/contacts
func (h *ContactHandler) List(c *gin.Context) {
	module, ok := h.ParseModule(c)
	if !ok {
		return
	}
	contacts, err := h.service.ListContacts(c.Request.Context(), module)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, contacts)
}

// Get returns one contact.
// GET /api/v1/contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	contact, err := h.service.GetContact(c.Request.Context(), contactID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, contact)
}

// Update edits a contact's profile.
// PATCH /api/v1/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateContactRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contact, err := h.service.UpdateContact(c.Request.Context(), contactID, ledger.UpdateContactInput{
		Name:           req.Name,
		Phone:          req.Phone,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, contact)
}

// Delete removes a contact and its history.
// DELETE /api/v1/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteContact(c.Request.Context(), contactID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// SetRate changes the global rate and reprices the full history.
// PUT /api/v1/contacts/:id/rate
func (h *ContactHandler) SetRate(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.SetRateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.service.SetGlobalRate(c.Request.Context(), contactID, req.Rate); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: true})
}

// SetMonthRate reprices one month.
// PUT /api/v1/contacts/:id/rate/month
func (h *ContactHandler) SetMonthRate(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.SetMonthRateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.service.SetMonthRate(c.Request.Context(), contactID, req.Month, req.Rate); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: true})
}

// SetDayRate reprices a single day.
// PUT /api/v1/contacts/:id/rate/day
func (h *ContactHandler) SetDayRate(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.SetDayRateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	record, err := h.service.SetDayRate(c.Request.Context(), contactID, req.Date, req.Rate)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, record)
}

// Summary returns a contact's settlement view for one month.
// GET /api/v1/contacts/:id/summary?month=YYYY-MM
func (h *ContactHandler) Summary(c *gin.Context) {
	contactID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	summary, err := h.service.MonthSummary(c.Request.Context(), contactID, c.Query("month"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
