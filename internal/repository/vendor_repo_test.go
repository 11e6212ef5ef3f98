package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ruwaid884/verity-vendor-secure/internal/infra"
	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func seedVendor(t *testing.T, repo VendorRepository, companyID uuid.UUID, name string, status model.VendorStatus) *model.Vendor {
	t.Helper()
	v := model.NewVendor(companyID, name)
	v.Status = status
	require.NoError(t, repo.Create(context.Background(), v))
	return v
}

func TestCreateAndFindByID(t *testing.T) {
	repo := NewVendorRepository(openTestDB(t))
	v := model.NewVendor(uuid.New(), "Acme Corp")
	v.Description = strPtr("widgets")

	require.NoError(t, repo.Create(context.Background(), v))

	got, err := repo.FindByID(context.Background(), v.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, v.ID, got.ID)
	assert.Equal(t, "Acme Corp", got.CompanyName)
	assert.Equal(t, model.StatusDraft, got.Status)
	require.NotNil(t, got.Description)
	assert.Equal(t, "widgets", *got.Description)
}

func TestFindByIDMissingReturnsNilNil(t *testing.T) {
	repo := NewVendorRepository(openTestDB(t))
	got, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListFilters(t *testing.T) {
	repo := NewVendorRepository(openTestDB(t))
	ctx := context.Background()

	companyA := uuid.New()
	companyB := uuid.New()
	seedVendor(t, repo, companyA, "Alpha Supplies", model.StatusDraft)
	seedVendor(t, repo, companyA, "Beta Logistics", model.StatusSubmitted)
	seedVendor(t, repo, companyB, "Gamma Freight", model.StatusSubmitted)

	t.Run("by company", func(t *testing.T) {
		got, err := repo.List(ctx, VendorFilter{CompanyID: &companyA})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by status", func(t *testing.T) {
		got, err := repo.List(ctx, VendorFilter{Status: model.StatusSubmitted})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("combined", func(t *testing.T) {
		got, err := repo.List(ctx, VendorFilter{CompanyID: &companyA, Status: model.StatusSubmitted})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Beta Logistics", got[0].CompanyName)
	})

	t.Run("by vendor user", func(t *testing.T) {
		userID := uuid.New()
		v := model.NewVendor(companyB, "Delta Services")
		v.VendorUserID = &userID
		require.NoError(t, repo.Create(ctx, v))

		got, err := repo.List(ctx, VendorFilter{VendorUserID: &userID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, v.ID, got[0].ID)
	})
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	repo := NewVendorRepository(openTestDB(t))
	ctx := context.Background()

	seedVendor(t, repo, uuid.New(), "Acme Corporation", model.StatusDraft)
	v := model.NewVendor(uuid.New(), "Other Ltd")
	v.Description = strPtr("premium ACME reseller")
	require.NoError(t, repo.Create(ctx, v))
	seedVendor(t, repo, uuid.New(), "Unrelated Inc", model.StatusDraft)

	got, err := repo.List(ctx, VendorFilter{Search: "acme"})
	require.NoError(t, err)
	assert.Len(t, got, 2, "matches company_name and description")
}

func TestListOrdersNewestFirstAndPaginates(t *testing.T) {
	db := openTestDB(t)
	repo := NewVendorRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	names := []string{"First", "Second", "Third"}
	for i, name := range names {
		v := model.NewVendor(companyID, name)
		require.NoError(t, repo.Create(ctx, v))
		// Spread created_at so the ordering is deterministic.
		require.NoError(t, db.Model(v).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	got, err := repo.List(ctx, VendorFilter{CompanyID: &companyID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Third", got[0].CompanyName)
	assert.Equal(t, "Second", got[1].CompanyName)

	got, err = repo.List(ctx, VendorFilter{CompanyID: &companyID, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "First", got[0].CompanyName)

	total, err := repo.Count(ctx, VendorFilter{CompanyID: &companyID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestUpdateFieldsConditionalOnStatus(t *testing.T) {
	repo := NewVendorRepository(openTestDB(t))
	ctx := context.Background()
	v := seedVendor(t, repo, uuid.New(), "Acme Corp", model.StatusDraft)

	ok, err := repo.UpdateFields(ctx, v.ID, []model.VendorStatus{model.StatusDraft}, map[string]interface{}{
		"company_name": "Acme Industries",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Industries", got.CompanyName)

	// A writer expecting the old status must not match.
	ok, err = repo.UpdateFields(ctx, v.ID, []model.VendorStatus{model.StatusSubmitted}, map[string]interface{}{
		"company_name": "Should Not Apply",
	})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Industries", got.CompanyName, "lost-match update must not write")
}

func TestUpdateFieldsMissingRow(t *testing.T) {
	repo := NewVendorRepository(openTestDB(t))
	ok, err := repo.UpdateFields(context.Background(), uuid.New(), []model.VendorStatus{model.StatusDraft}, map[string]interface{}{
		"company_name": "Ghost",
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteOnlyDrafts(t *testing.T) {
	repo := NewVendorRepository(openTestDB(t))
	ctx := context.Background()

	draft := seedVendor(t, repo, uuid.New(), "Draft Co", model.StatusDraft)
	submitted := seedVendor(t, repo, uuid.New(), "Submitted Co", model.StatusSubmitted)

	ok, err := repo.Delete(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.FindByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = repo.Delete(ctx, submitted.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = repo.FindByID(ctx, submitted.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "non-draft rows survive delete attempts")
}
