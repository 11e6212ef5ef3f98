package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
)

// VendorFilter narrows List/Count. Zero values mean "no constraint".
type VendorFilter struct {
	CompanyID    *uuid.UUID
	Status       model.VendorStatus
	VendorUserID *uuid.UUID
	// Search matches company_name or description, case-insensitive substring.
	Search string
	Limit  int
	Offset int
}

type VendorRepository interface {
	Create(ctx context.Context, v *model.Vendor) error
	// FindByID returns (nil, nil) when no record exists — absence is not an
	// error at this layer.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	List(ctx context.Context, f VendorFilter) ([]model.Vendor, error)
	Count(ctx context.Context, f VendorFilter) (int64, error)
	// UpdateFields applies a conditional update: the row is touched only if
	// its current status is in allowed. Returns false when no row matched,
	// which closes the load→guard→persist race on concurrent transitions.
	UpdateFields(ctx context.Context, id uuid.UUID, allowed []model.VendorStatus, fields map[string]interface{}) (bool, error)
	// Delete removes the row only while it is still a draft. Returns false
	// when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type vendorRepo struct{ db *gorm.DB }

func NewVendorRepository(db *gorm.DB) VendorRepository { return &vendorRepo{db: db} }

func (r *vendorRepo) Create(ctx context.Context, v *model.Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendorRepo) List(ctx context.Context, f VendorFilter) ([]model.Vendor, error) {
	var vendors []model.Vendor
	q := applyVendorFilter(r.db.WithContext(ctx).Model(&model.Vendor{}), f).
		Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	err := q.Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepo) Count(ctx context.Context, f VendorFilter) (int64, error) {
	var total int64
	err := applyVendorFilter(r.db.WithContext(ctx).Model(&model.Vendor{}), f).
		Count(&total).Error
	return total, err
}

func (r *vendorRepo) UpdateFields(ctx context.Context, id uuid.UUID, allowed []model.VendorStatus, fields map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Vendor{}).
		Where("id = ? AND status IN ?", id, allowed).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *vendorRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, model.StatusDraft).
		Delete(&model.Vendor{})
	return res.RowsAffected > 0, res.Error
}

// applyVendorFilter builds the shared WHERE clause for List and Count so the
// page and the total always answer the same predicate. LOWER(...) LIKE keeps
// the search portable across postgres and the sqlite test driver.
func applyVendorFilter(q *gorm.DB, f VendorFilter) *gorm.DB {
	if f.CompanyID != nil {
		q = q.Where("company_id = ?", *f.CompanyID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.VendorUserID != nil {
		q = q.Where("vendor_user_id = ?", *f.VendorUserID)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(company_name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	return q
}
