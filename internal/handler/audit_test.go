package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Ruwaid884/verity-vendor-secure/internal/dto"
)

func auditTestRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuditHandler(svc)
	r.GET("/audit/recent", injectClaims, h.Recent)
	return r
}

func sampleAuditEntries(n int) []dto.AuditLogResponse {
	out := make([]dto.AuditLogResponse, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, dto.AuditLogResponse{
			ID:        uuid.NewString(),
			Action:    "VENDOR_CREATED",
			CreatedAt: time.Now().UTC(),
		})
	}
	return out
}

func TestRecentActivityHandler(t *testing.T) {
	r := auditTestRouter(&fakeService{auditTrail: sampleAuditEntries(2)})
	w := perform(r, http.MethodGet, "/audit/recent", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env["success"])
	assert.Len(t, env["data"], 2)
}

func TestRecentActivityHandlerRejectsBadLimit(t *testing.T) {
	r := auditTestRouter(&fakeService{})

	for _, limit := range []string{"abc", "0", "-5"} {
		w := perform(r, http.MethodGet, "/audit/recent?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
	}
}

func TestRecentActivityHandlerCustomLimit(t *testing.T) {
	r := auditTestRouter(&fakeService{auditTrail: sampleAuditEntries(1)})
	w := perform(r, http.MethodGet, "/audit/recent?limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
