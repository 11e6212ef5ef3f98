package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ruwaid884/verity-vendor-secure/internal/service"
)

type AuditHandler struct{ svc service.VendorService }

func NewAuditHandler(svc service.VendorService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// Recent handles GET /audit/recent?limit= for the admin activity feed.
func (h *AuditHandler) Recent(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	entries, err := h.svc.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "", entries)
}
