package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit action tags — one per side-effecting vendor operation.
const (
	ActionVendorCreated   = "VENDOR_CREATED"
	ActionVendorUpdated   = "VENDOR_UPDATED"
	ActionVendorSubmitted = "VENDOR_SUBMITTED"
	ActionVendorApproved  = "VENDOR_APPROVED"
	ActionVendorRejected  = "VENDOR_REJECTED"
	ActionVendorActivated = "VENDOR_ACTIVATED"
	ActionVendorDeleted   = "VENDOR_DELETED"
)

// AuditLog is an append-only action record. Rows are written once and never
// updated or deleted — the repository deliberately exposes no mutation.
// UserID and VendorID are weak references for lookup only.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Action    string         `gorm:"not null;index"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index"`
	VendorID  *uuid.UUID     `gorm:"type:uuid;index"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"index"`
}

func (AuditLog) TableName() string { return "audit_logs" }
