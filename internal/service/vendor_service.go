package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/Ruwaid884/verity-vendor-secure/internal/apierror"
	"github.com/Ruwaid884/verity-vendor-secure/internal/dto"
	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
	"github.com/Ruwaid884/verity-vendor-secure/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AccountCipher reversibly encrypts bank account numbers before storage.
type AccountCipher interface {
	Encrypt(plaintext string) (string, error)
}

// Notifier announces workflow events. Implementations must be best-effort:
// a notification failure never fails the operation that triggered it.
type Notifier interface {
	NotifyVendorSubmitted(ctx context.Context, vendorID uuid.UUID, companyName string)
}

// VendorService orchestrates every vendor lifecycle operation:
// load → guard → mutate → persist → audit-log → return.
type VendorService interface {
	Create(ctx context.Context, req dto.CreateVendorRequest, actorID uuid.UUID) (*dto.VendorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateVendorRequest, actorID uuid.UUID) (*dto.VendorResponse, error)
	Submit(ctx context.Context, id, actorID uuid.UUID) (*dto.VendorResponse, error)
	Approve(ctx context.Context, id, approverID uuid.UUID) (*dto.VendorResponse, error)
	Reject(ctx context.Context, id, approverID uuid.UUID, reason string) (*dto.VendorResponse, error)
	Activate(ctx context.Context, id, actorID uuid.UUID) (*dto.VendorResponse, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
	// Get returns (nil, nil) when the vendor does not exist — absence is not
	// an error at this level.
	Get(ctx context.Context, id uuid.UUID) (*dto.VendorResponse, error)
	List(ctx context.Context, q dto.ListVendorsQuery) (*dto.VendorPage, error)
	PendingApprovals(ctx context.Context) ([]dto.VendorResponse, error)
	AuditTrail(ctx context.Context, vendorID uuid.UUID) ([]dto.AuditLogResponse, error)
	RecentActivity(ctx context.Context, limit int) ([]dto.AuditLogResponse, error)
}

type vendorService struct {
	vendors  repository.VendorRepository
	audits   repository.AuditLogRepository
	cipher   AccountCipher
	notifier Notifier
}

func NewVendorService(
	vendors repository.VendorRepository,
	audits repository.AuditLogRepository,
	cipher AccountCipher,
	notifier Notifier,
) VendorService {
	return &vendorService{vendors: vendors, audits: audits, cipher: cipher, notifier: notifier}
}

// ── Create ────────────────────────────────────────────────────────────────────

func (s *vendorService) Create(ctx context.Context, req dto.CreateVendorRequest, actorID uuid.UUID) (*dto.VendorResponse, error) {
	if req.CompanyID == "" || req.CompanyName == "" {
		return nil, apierror.Validation("companyId and companyName are required")
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, apierror.Validation("companyId must be a valid UUID")
	}

	v := model.NewVendor(companyID, req.CompanyName)
	if req.VendorUserID != nil {
		vendorUserID, err := uuid.Parse(*req.VendorUserID)
		if err != nil {
			return nil, apierror.Validation("vendorUserId must be a valid UUID")
		}
		v.VendorUserID = &vendorUserID
	}
	v.Description = req.Description
	v.Address = req.Address
	v.City = req.City
	v.State = req.State
	v.ZipCode = req.ZipCode
	v.Phone = req.Phone
	v.Website = req.Website
	v.TaxID = req.TaxID
	v.BankName = req.BankName
	v.RoutingNumber = req.RoutingNumber
	v.AccountType = req.AccountType

	if req.AccountNumber != nil && *req.AccountNumber != "" {
		encrypted, err := s.cipher.Encrypt(*req.AccountNumber)
		if err != nil {
			return nil, apierror.Store("encrypt account number", err)
		}
		v.AccountNumberEncrypted = &encrypted
	}

	if err := s.vendors.Create(ctx, v); err != nil {
		return nil, apierror.Store("create vendor", err)
	}

	s.audit(ctx, model.ActionVendorCreated, &actorID, &v.ID, map[string]interface{}{
		"company_name": v.CompanyName,
	})

	return dto.NewVendorResponse(v), nil
}

// ── Update ────────────────────────────────────────────────────────────────────

func (s *vendorService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateVendorRequest, actorID uuid.UUID) (*dto.VendorResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.IsUpdatable() {
		return nil, apierror.InvalidTransition("update", string(v.Status))
	}

	fields := map[string]interface{}{}
	addField(fields, "company_name", req.CompanyName)
	addField(fields, "description", req.Description)
	addField(fields, "address", req.Address)
	addField(fields, "city", req.City)
	addField(fields, "state", req.State)
	addField(fields, "zip_code", req.ZipCode)
	addField(fields, "phone", req.Phone)
	addField(fields, "website", req.Website)
	addField(fields, "tax_id", req.TaxID)
	addField(fields, "bank_name", req.BankName)
	addField(fields, "routing_number", req.RoutingNumber)
	addField(fields, "account_type", req.AccountType)

	if req.AccountNumber != nil && *req.AccountNumber != "" {
		encrypted, err := s.cipher.Encrypt(*req.AccountNumber)
		if err != nil {
			return nil, apierror.Store("encrypt account number", err)
		}
		fields["account_number_encrypted"] = encrypted
	}

	if len(fields) == 0 {
		return dto.NewVendorResponse(v), nil
	}

	ok, err := s.vendors.UpdateFields(ctx, id, model.UpdatableStatuses, fields)
	if err != nil {
		return nil, apierror.Store("update vendor", err)
	}
	if !ok {
		return nil, apierror.TransitionConflict("update")
	}

	// Changed column names only — never values, they may be sensitive.
	changed := make([]string, 0, len(fields))
	for name := range fields {
		changed = append(changed, name)
	}
	s.audit(ctx, model.ActionVendorUpdated, &actorID, &id, map[string]interface{}{
		"updated_fields": changed,
	})

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewVendorResponse(updated), nil
}

// ── Lifecycle transitions ─────────────────────────────────────────────────────
// Each transition runs the entity guard on the loaded record, then persists
// through a conditional update keyed on the expected prior status so a
// concurrent transition cannot be silently overwritten.

func (s *vendorService) Submit(ctx context.Context, id, actorID uuid.UUID) (*dto.VendorResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := v.Submit(); err != nil {
		return nil, err
	}

	ok, err := s.vendors.UpdateFields(ctx, id, []model.VendorStatus{model.StatusDraft}, map[string]interface{}{
		"status":       v.Status,
		"submitted_at": v.SubmittedAt,
		"updated_at":   v.UpdatedAt,
	})
	if err != nil {
		return nil, apierror.Store("submit vendor", err)
	}
	if !ok {
		return nil, apierror.TransitionConflict("submit")
	}

	s.audit(ctx, model.ActionVendorSubmitted, &actorID, &id, map[string]interface{}{
		"company_name": v.CompanyName,
	})
	if s.notifier != nil {
		s.notifier.NotifyVendorSubmitted(ctx, v.ID, v.CompanyName)
	}

	return dto.NewVendorResponse(v), nil
}

func (s *vendorService) Approve(ctx context.Context, id, approverID uuid.UUID) (*dto.VendorResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := v.Approve(approverID); err != nil {
		return nil, err
	}

	ok, err := s.vendors.UpdateFields(ctx, id, []model.VendorStatus{model.StatusSubmitted}, map[string]interface{}{
		"status":           v.Status,
		"approved_at":      v.ApprovedAt,
		"approver_user_id": v.ApproverUserID,
		"updated_at":       v.UpdatedAt,
	})
	if err != nil {
		return nil, apierror.Store("approve vendor", err)
	}
	if !ok {
		return nil, apierror.TransitionConflict("approve")
	}

	s.audit(ctx, model.ActionVendorApproved, &approverID, &id, map[string]interface{}{
		"company_name": v.CompanyName,
	})

	return dto.NewVendorResponse(v), nil
}

func (s *vendorService) Reject(ctx context.Context, id, approverID uuid.UUID, reason string) (*dto.VendorResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := v.Reject(); err != nil {
		return nil, err
	}

	ok, err := s.vendors.UpdateFields(ctx, id, []model.VendorStatus{model.StatusSubmitted}, map[string]interface{}{
		"status":     v.Status,
		"updated_at": v.UpdatedAt,
	})
	if err != nil {
		return nil, apierror.Store("reject vendor", err)
	}
	if !ok {
		return nil, apierror.TransitionConflict("reject")
	}

	if reason == "" {
		reason = "No reason provided"
	}
	s.audit(ctx, model.ActionVendorRejected, &approverID, &id, map[string]interface{}{
		"company_name": v.CompanyName,
		"reason":       reason,
	})

	return dto.NewVendorResponse(v), nil
}

func (s *vendorService) Activate(ctx context.Context, id, actorID uuid.UUID) (*dto.VendorResponse, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := v.Activate(); err != nil {
		return nil, err
	}

	ok, err := s.vendors.UpdateFields(ctx, id, []model.VendorStatus{model.StatusApproved}, map[string]interface{}{
		"status":     v.Status,
		"updated_at": v.UpdatedAt,
	})
	if err != nil {
		return nil, apierror.Store("activate vendor", err)
	}
	if !ok {
		return nil, apierror.TransitionConflict("activate")
	}

	s.audit(ctx, model.ActionVendorActivated, &actorID, &id, map[string]interface{}{
		"company_name": v.CompanyName,
	})

	return dto.NewVendorResponse(v), nil
}

// ── Delete ────────────────────────────────────────────────────────────────────

func (s *vendorService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	v, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if v.Status != model.StatusDraft {
		return apierror.InvalidOperation("only draft vendors can be deleted")
	}

	// The repository re-checks the draft status inside the DELETE itself.
	ok, err := s.vendors.Delete(ctx, id)
	if err != nil {
		return apierror.Store("delete vendor", err)
	}
	if !ok {
		return apierror.InvalidOperation("only draft vendors can be deleted")
	}

	// Logged only on confirmed deletion.
	s.audit(ctx, model.ActionVendorDeleted, &actorID, &id, map[string]interface{}{
		"company_name": v.CompanyName,
	})
	return nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *vendorService) Get(ctx context.Context, id uuid.UUID) (*dto.VendorResponse, error) {
	v, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Store("load vendor", err)
	}
	if v == nil {
		return nil, nil
	}
	return dto.NewVendorResponse(v), nil
}

func (s *vendorService) List(ctx context.Context, q dto.ListVendorsQuery) (*dto.VendorPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := repository.VendorFilter{
		Search: q.Search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if q.CompanyID != "" {
		companyID, err := uuid.Parse(q.CompanyID)
		if err != nil {
			return nil, apierror.Validation("companyId must be a valid UUID")
		}
		filter.CompanyID = &companyID
	}
	if q.VendorUserID != "" {
		vendorUserID, err := uuid.Parse(q.VendorUserID)
		if err != nil {
			return nil, apierror.Validation("vendorUserId must be a valid UUID")
		}
		filter.VendorUserID = &vendorUserID
	}
	if q.Status != "" {
		status, ok := model.ParseStatus(q.Status)
		if !ok {
			return nil, apierror.Validation("status must be one of draft, submitted, approved, rejected, active")
		}
		filter.Status = status
	}

	// Page and total come from two independent queries; they are not
	// guaranteed to be mutually consistent under concurrent writes.
	vendors, err := s.vendors.List(ctx, filter)
	if err != nil {
		return nil, apierror.Store("list vendors", err)
	}
	total, err := s.vendors.Count(ctx, filter)
	if err != nil {
		return nil, apierror.Store("count vendors", err)
	}

	return &dto.VendorPage{
		Vendors: dto.NewVendorResponses(vendors),
		Page:    page,
		Limit:   limit,
		Total:   total,
	}, nil
}

func (s *vendorService) PendingApprovals(ctx context.Context) ([]dto.VendorResponse, error) {
	vendors, err := s.vendors.List(ctx, repository.VendorFilter{Status: model.StatusSubmitted})
	if err != nil {
		return nil, apierror.Store("list pending vendors", err)
	}
	return dto.NewVendorResponses(vendors), nil
}

func (s *vendorService) AuditTrail(ctx context.Context, vendorID uuid.UUID) ([]dto.AuditLogResponse, error) {
	entries, err := s.audits.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, apierror.Store("list audit trail", err)
	}
	return dto.NewAuditLogResponses(entries), nil
}

func (s *vendorService) RecentActivity(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	entries, err := s.audits.ListRecent(ctx, limit)
	if err != nil {
		return nil, apierror.Store("list recent activity", err)
	}
	return dto.NewAuditLogResponses(entries), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *vendorService) load(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	v, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Store("load vendor", err)
	}
	if v == nil {
		return nil, apierror.NotFound("vendor")
	}
	return v, nil
}

// audit writes one append-only entry per side-effecting action. Best-effort:
// a failed write is logged at error level but never rolls back or fails the
// mutation it records.
func (s *vendorService) audit(ctx context.Context, action string, userID, vendorID *uuid.UUID, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("audit details marshal failed")
		payload = nil
	}
	entry := &model.AuditLog{
		Action:   action,
		UserID:   userID,
		VendorID: vendorID,
		Details:  datatypes.JSON(payload),
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", action).Msg("audit log write failed")
	}
}

func addField(fields map[string]interface{}, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}
