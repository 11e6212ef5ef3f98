package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
)

// AuditLogRepository is append-only: entries are created and read, never
// updated or deleted.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.AuditLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type auditLogRepo struct{ db *gorm.DB }

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository { return &auditLogRepo{db: db} }

func (r *auditLogRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *auditLogRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *auditLogRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
