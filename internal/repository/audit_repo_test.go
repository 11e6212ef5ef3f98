package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
)

func TestAuditCreateAssignsID(t *testing.T) {
	repo := NewAuditLogRepository(openTestDB(t))

	entry := &model.AuditLog{
		Action:  model.ActionVendorCreated,
		Details: datatypes.JSON([]byte(`{"company_name":"Acme Corp"}`)),
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEqual(t, uuid.Nil, entry.ID)
}

func TestAuditListByVendor(t *testing.T) {
	db := openTestDB(t)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	vendorA := uuid.New()
	vendorB := uuid.New()
	userID := uuid.New()

	base := time.Now().UTC().Add(-time.Hour)
	actions := []string{model.ActionVendorCreated, model.ActionVendorSubmitted, model.ActionVendorApproved}
	for i, action := range actions {
		entry := &model.AuditLog{Action: action, VendorID: &vendorA, UserID: &userID}
		require.NoError(t, repo.Create(ctx, entry))
		require.NoError(t, db.Model(entry).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	require.NoError(t, repo.Create(ctx, &model.AuditLog{Action: model.ActionVendorCreated, VendorID: &vendorB}))

	got, err := repo.ListByVendor(ctx, vendorA)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, model.ActionVendorApproved, got[0].Action, "newest first")
	assert.Equal(t, model.ActionVendorCreated, got[2].Action)

	byUser, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, byUser, 3)
}

func TestAuditListRecentHonorsLimit(t *testing.T) {
	repo := NewAuditLogRepository(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		vendorID := uuid.New()
		require.NoError(t, repo.Create(ctx, &model.AuditLog{Action: model.ActionVendorCreated, VendorID: &vendorID}))
	}

	got, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// Non-positive limit falls back to the default.
	got, err = repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
