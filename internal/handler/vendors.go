package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ruwaid884/verity-vendor-secure/internal/dto"
	"github.com/Ruwaid884/verity-vendor-secure/internal/service"
)

type VendorsHandler struct{ svc service.VendorService }

func NewVendorsHandler(svc service.VendorService) *VendorsHandler {
	return &VendorsHandler{svc: svc}
}

// Create handles POST /vendors.
func (h *VendorsHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.CreateVendorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Vendor created successfully", resp)
}

// List handles GET /vendors with query filters and pagination.
func (h *VendorsHandler) List(c *gin.Context) {
	var q dto.ListVendorsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid query parameters"})
		return
	}
	page, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	totalPages := page.Total / int64(page.Limit)
	if page.Total%int64(page.Limit) != 0 {
		totalPages++
	}
	respondData(c, http.StatusOK, "", gin.H{
		"vendors": page.Vendors,
		"pagination": dto.Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: totalPages,
		},
	})
}

// Pending handles GET /vendors/pending.
func (h *VendorsHandler) Pending(c *gin.Context) {
	vendors, err := h.svc.PendingApprovals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "", vendors)
}

// Get handles GET /vendors/:id.
func (h *VendorsHandler) Get(c *gin.Context) {
	id, ok := vendorIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, envelope{Success: false, Message: "Vendor not found"})
		return
	}
	respondData(c, http.StatusOK, "", resp)
}

// Update handles PUT /vendors/:id (partial update).
func (h *VendorsHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := vendorIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateVendorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vendor updated successfully", resp)
}

// Submit handles PATCH /vendors/:id/submit.
func (h *VendorsHandler) Submit(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := vendorIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vendor submitted for approval", resp)
}

// Approve handles PATCH /vendors/:id/approve.
func (h *VendorsHandler) Approve(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := vendorIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Approve(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vendor approved", resp)
}

// Reject handles PATCH /vendors/:id/reject. The reason body is optional.
func (h *VendorsHandler) Reject(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := vendorIDParam(c)
	if !ok {
		return
	}

	var req dto.RejectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid JSON body"})
		return
	}
	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}

	resp, err := h.svc.Reject(c.Request.Context(), id, actor, reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vendor rejected", resp)
}

// Activate handles PATCH /vendors/:id/activate.
func (h *VendorsHandler) Activate(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := vendorIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Activate(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vendor activated", resp)
}

// Delete handles DELETE /vendors/:id.
func (h *VendorsHandler) Delete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := vendorIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vendor deleted successfully", nil)
}

// AuditTrail handles GET /vendors/:id/audit.
func (h *VendorsHandler) AuditTrail(c *gin.Context) {
	id, ok := vendorIDParam(c)
	if !ok {
		return
	}
	entries, err := h.svc.AuditTrail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "", entries)
}
