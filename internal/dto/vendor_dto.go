package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateVendorRequest struct {
	CompanyID     string  `json:"companyId"     validate:"required,uuid4"`
	CompanyName   string  `json:"companyName"   validate:"required,min=1,max=255"`
	VendorUserID  *string `json:"vendorUserId"  validate:"omitempty,uuid4"`
	Description   *string `json:"description"   validate:"omitempty,max=1000"`
	Address       *string `json:"address"       validate:"omitempty,max=255"`
	City          *string `json:"city"          validate:"omitempty,max=100"`
	State         *string `json:"state"         validate:"omitempty,max=50"`
	ZipCode       *string `json:"zipCode"       validate:"omitempty,max=20"`
	Phone         *string `json:"phone"         validate:"omitempty,max=30"`
	Website       *string `json:"website"       validate:"omitempty,url,max=255"`
	TaxID         *string `json:"taxId"         validate:"omitempty,max=50"`
	BankName      *string `json:"bankName"      validate:"omitempty,max=255"`
	RoutingNumber *string `json:"routingNumber" validate:"omitempty,len=9,numeric"`
	// AccountNumber arrives in plaintext and is encrypted before storage.
	AccountNumber *string `json:"accountNumber" validate:"omitempty,min=1,max=20"`
	AccountType   *string `json:"accountType"   validate:"omitempty,oneof=checking savings"`
}

// UpdateVendorRequest carries partial updates: only non-nil fields are
// applied. Ownership (companyId, vendorUserId) is immutable after creation.
type UpdateVendorRequest struct {
	CompanyName   *string `json:"companyName"   validate:"omitempty,min=1,max=255"`
	Description   *string `json:"description"   validate:"omitempty,max=1000"`
	Address       *string `json:"address"       validate:"omitempty,max=255"`
	City          *string `json:"city"          validate:"omitempty,max=100"`
	State         *string `json:"state"         validate:"omitempty,max=50"`
	ZipCode       *string `json:"zipCode"       validate:"omitempty,max=20"`
	Phone         *string `json:"phone"         validate:"omitempty,max=30"`
	Website       *string `json:"website"       validate:"omitempty,url,max=255"`
	TaxID         *string `json:"taxId"         validate:"omitempty,max=50"`
	BankName      *string `json:"bankName"      validate:"omitempty,max=255"`
	RoutingNumber *string `json:"routingNumber" validate:"omitempty,len=9,numeric"`
	AccountNumber *string `json:"accountNumber" validate:"omitempty,min=1,max=20"`
	AccountType   *string `json:"accountType"   validate:"omitempty,oneof=checking savings"`
}

type RejectVendorRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

// ListVendorsQuery binds the /vendors query string.
type ListVendorsQuery struct {
	CompanyID    string `form:"companyId"`
	Status       string `form:"status"`
	VendorUserID string `form:"vendorUserId"`
	Search       string `form:"search"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// VendorResponse is the public projection: it deliberately has no field for
// the encrypted account number, so the value cannot cross the boundary.
type VendorResponse struct {
	ID             string     `json:"id"`
	CompanyID      string     `json:"companyId"`
	VendorUserID   *string    `json:"vendorUserId"`
	CompanyName    string     `json:"companyName"`
	Description    *string    `json:"description"`
	Address        *string    `json:"address"`
	City           *string    `json:"city"`
	State          *string    `json:"state"`
	ZipCode        *string    `json:"zipCode"`
	Phone          *string    `json:"phone"`
	Website        *string    `json:"website"`
	TaxID          *string    `json:"taxId"`
	BankName       *string    `json:"bankName"`
	RoutingNumber  *string    `json:"routingNumber"`
	AccountType    *string    `json:"accountType"`
	Status         string     `json:"status"`
	SubmittedAt    *time.Time `json:"submittedAt"`
	ApprovedAt     *time.Time `json:"approvedAt"`
	ApproverUserID *string    `json:"approverUserId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func NewVendorResponse(v *model.Vendor) *VendorResponse {
	return &VendorResponse{
		ID:             v.ID.String(),
		CompanyID:      v.CompanyID.String(),
		VendorUserID:   uuidString(v.VendorUserID),
		CompanyName:    v.CompanyName,
		Description:    v.Description,
		Address:        v.Address,
		City:           v.City,
		State:          v.State,
		ZipCode:        v.ZipCode,
		Phone:          v.Phone,
		Website:        v.Website,
		TaxID:          v.TaxID,
		BankName:       v.BankName,
		RoutingNumber:  v.RoutingNumber,
		AccountType:    v.AccountType,
		Status:         string(v.Status),
		SubmittedAt:    v.SubmittedAt,
		ApprovedAt:     v.ApprovedAt,
		ApproverUserID: uuidString(v.ApproverUserID),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func NewVendorResponses(vendors []model.Vendor) []VendorResponse {
	out := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		out = append(out, *NewVendorResponse(&vendors[i]))
	}
	return out
}

// VendorPage is a page of vendors plus the independent total count.
type VendorPage struct {
	Vendors []VendorResponse
	Page    int
	Limit   int
	Total   int64
}

// Pagination is the wire shape nested under the list envelope.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
