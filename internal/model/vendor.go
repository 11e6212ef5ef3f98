package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ruwaid884/verity-vendor-secure/internal/apierror"
)

// VendorStatus is the lifecycle state of a vendor record.
// Allowed transitions: draft → submitted → {approved, rejected};
// approved → active. "rejected" and "active" are terminal.
type VendorStatus string

const (
	StatusDraft     VendorStatus = "draft"
	StatusSubmitted VendorStatus = "submitted"
	StatusApproved  VendorStatus = "approved"
	StatusRejected  VendorStatus = "rejected"
	StatusActive    VendorStatus = "active"
)

// ParseStatus validates a status string from external input.
func ParseStatus(s string) (VendorStatus, bool) {
	switch VendorStatus(s) {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected, StatusActive:
		return VendorStatus(s), true
	}
	return "", false
}

// UpdatableStatuses are the states in which profile fields may be edited.
// Submitted and approved records are frozen pending / after review.
var UpdatableStatuses = []VendorStatus{StatusDraft, StatusRejected}

// Vendor is one supplier relationship within a company, moving through the
// onboarding lifecycle. Banking data is optional; the account number is only
// ever stored encrypted and never serialized to clients.
type Vendor struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	VendorUserID *uuid.UUID `gorm:"type:uuid;index"`

	CompanyName string `gorm:"not null"`
	Description *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Phone       *string
	Website     *string
	TaxID       *string `gorm:"column:tax_id"`

	BankName               *string
	RoutingNumber          *string
	AccountNumberEncrypted *string `gorm:"column:account_number_encrypted" json:"-"`
	// AccountType: "checking" | "savings"
	AccountType *string `gorm:"type:varchar(20)"`

	Status         VendorStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	SubmittedAt    *time.Time
	ApprovedAt     *time.Time
	ApproverUserID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Vendor) TableName() string { return "vendors" }

// NewVendor returns a draft record. The ID is generated here rather than by
// the database so all store backends behave identically.
func NewVendor(companyID uuid.UUID, companyName string) *Vendor {
	return &Vendor{
		ID:          uuid.New(),
		CompanyID:   companyID,
		CompanyName: companyName,
		Status:      StatusDraft,
	}
}

// HasRequiredFields reports whether the profile is complete enough to submit.
func (v *Vendor) HasRequiredFields() bool {
	return v.CompanyName != "" &&
		present(v.Address) &&
		present(v.City) &&
		present(v.State) &&
		present(v.ZipCode) &&
		present(v.TaxID)
}

// HasBankingInfo reports whether the record is bank-complete: all four
// banking fields present together.
func (v *Vendor) HasBankingInfo() bool {
	return present(v.BankName) &&
		present(v.RoutingNumber) &&
		present(v.AccountNumberEncrypted) &&
		present(v.AccountType)
}

func (v *Vendor) CanSubmit() bool  { return v.Status == StatusDraft && v.HasRequiredFields() }
func (v *Vendor) CanApprove() bool { return v.Status == StatusSubmitted }
func (v *Vendor) CanReject() bool  { return v.Status == StatusSubmitted }
func (v *Vendor) IsActive() bool   { return v.Status == StatusActive }

// IsUpdatable reports whether profile fields may still be edited.
func (v *Vendor) IsUpdatable() bool {
	return v.Status == StatusDraft || v.Status == StatusRejected
}

// Submit moves draft → submitted. Fails when the record is not a draft or
// the required profile fields are incomplete; never a silent no-op.
func (v *Vendor) Submit() error {
	if !v.CanSubmit() {
		return apierror.InvalidTransition("submit", string(v.Status))
	}
	now := time.Now().UTC()
	v.Status = StatusSubmitted
	v.SubmittedAt = &now
	v.UpdatedAt = now
	return nil
}

// Approve moves submitted → approved and records the approver.
func (v *Vendor) Approve(approverUserID uuid.UUID) error {
	if !v.CanApprove() {
		return apierror.InvalidTransition("approve", string(v.Status))
	}
	now := time.Now().UTC()
	v.Status = StatusApproved
	v.ApprovedAt = &now
	v.ApproverUserID = &approverUserID
	v.UpdatedAt = now
	return nil
}

// Reject moves submitted → rejected. Rejected records may be edited and
// resubmitted is not part of this machine; rejected is terminal here.
func (v *Vendor) Reject() error {
	if !v.CanReject() {
		return apierror.InvalidTransition("reject", string(v.Status))
	}
	v.Status = StatusRejected
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// Activate moves approved → active.
func (v *Vendor) Activate() error {
	if v.Status != StatusApproved {
		return apierror.InvalidTransition("activate", string(v.Status))
	}
	v.Status = StatusActive
	v.UpdatedAt = time.Now().UTC()
	return nil
}

func present(s *string) bool { return s != nil && *s != "" }
