package dto

import (
	"encoding/json"
	"time"

	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
)

type AuditLogResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	UserID    *string         `json:"userId"`
	VendorID  *string         `json:"vendorId"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"createdAt"`
}

func NewAuditLogResponse(e *model.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:        e.ID.String(),
		Action:    e.Action,
		UserID:    uuidString(e.UserID),
		VendorID:  uuidString(e.VendorID),
		Details:   json.RawMessage(e.Details),
		CreatedAt: e.CreatedAt,
	}
}

func NewAuditLogResponses(entries []model.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(entries))
	for i := range entries {
		out = append(out, *NewAuditLogResponse(&entries[i]))
	}
	return out
}
