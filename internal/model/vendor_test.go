package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ruwaid884/verity-vendor-secure/internal/apierror"
)

func strPtr(s string) *string { return &s }

func completeVendor() *Vendor {
	v := NewVendor(uuid.New(), "Acme Corp")
	v.Address = strPtr("1 Main St")
	v.City = strPtr("Springfield")
	v.State = strPtr("IL")
	v.ZipCode = strPtr("62701")
	v.TaxID = strPtr("12-3456789")
	return v
}

func TestNewVendorStartsAsDraft(t *testing.T) {
	companyID := uuid.New()
	v := NewVendor(companyID, "Acme Corp")

	assert.NotEqual(t, uuid.Nil, v.ID)
	assert.Equal(t, companyID, v.CompanyID)
	assert.Equal(t, StatusDraft, v.Status)
	assert.Nil(t, v.SubmittedAt)
	assert.Nil(t, v.ApprovedAt)
}

func TestHasRequiredFields(t *testing.T) {
	v := completeVendor()
	assert.True(t, v.HasRequiredFields())

	// Each required field missing or empty individually fails the check.
	cases := map[string]func(*Vendor){
		"address":  func(v *Vendor) { v.Address = nil },
		"city":     func(v *Vendor) { v.City = strPtr("") },
		"state":    func(v *Vendor) { v.State = nil },
		"zip code": func(v *Vendor) { v.ZipCode = nil },
		"tax id":   func(v *Vendor) { v.TaxID = strPtr("") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := completeVendor()
			mutate(v)
			assert.False(t, v.HasRequiredFields())
		})
	}
}

func TestHasBankingInfoRequiresAllFour(t *testing.T) {
	v := completeVendor()
	assert.False(t, v.HasBankingInfo())

	v.BankName = strPtr("First National")
	v.RoutingNumber = strPtr("123456789")
	v.AccountType = strPtr("checking")
	assert.False(t, v.HasBankingInfo(), "account number still missing")

	v.AccountNumberEncrypted = strPtr("sealed")
	assert.True(t, v.HasBankingInfo())
}

func TestSubmitRequiresCompleteDraft(t *testing.T) {
	v := NewVendor(uuid.New(), "Acme Corp")
	err := v.Submit()
	require.Error(t, err, "incomplete profile must not submit")
	assert.Equal(t, StatusDraft, v.Status)

	var ae *apierror.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apierror.KindInvalidTransition, ae.Kind)
}

func TestSubmitSetsTimestamp(t *testing.T) {
	v := completeVendor()
	require.NoError(t, v.Submit())

	assert.Equal(t, StatusSubmitted, v.Status)
	require.NotNil(t, v.SubmittedAt)
	assert.False(t, v.SubmittedAt.IsZero())
}

func TestApproveRecordsApprover(t *testing.T) {
	v := completeVendor()
	require.NoError(t, v.Submit())

	approver := uuid.New()
	require.NoError(t, v.Approve(approver))

	assert.Equal(t, StatusApproved, v.Status)
	require.NotNil(t, v.ApprovedAt)
	require.NotNil(t, v.ApproverUserID)
	assert.Equal(t, approver, *v.ApproverUserID)
}

func TestApproveIsNotIdempotent(t *testing.T) {
	v := completeVendor()
	require.NoError(t, v.Submit())
	require.NoError(t, v.Approve(uuid.New()))

	err := v.Approve(uuid.New())
	require.Error(t, err, "second approve must fail, not silently succeed")

	var ae *apierror.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, apierror.KindInvalidTransition, ae.Kind)
}

func TestRejectOnlyFromSubmitted(t *testing.T) {
	v := completeVendor()
	require.Error(t, v.Reject(), "draft cannot be rejected")

	require.NoError(t, v.Submit())
	require.NoError(t, v.Reject())
	assert.Equal(t, StatusRejected, v.Status)

	require.Error(t, v.Reject(), "rejected is terminal")
}

func TestActivateOnlyFromApproved(t *testing.T) {
	v := completeVendor()
	require.Error(t, v.Activate())

	require.NoError(t, v.Submit())
	require.Error(t, v.Activate())

	require.NoError(t, v.Approve(uuid.New()))
	require.NoError(t, v.Activate())
	assert.Equal(t, StatusActive, v.Status)
	assert.True(t, v.IsActive())

	require.Error(t, v.Activate(), "active is terminal")
}

func TestIsUpdatable(t *testing.T) {
	v := completeVendor()
	assert.True(t, v.IsUpdatable(), "draft is editable")

	require.NoError(t, v.Submit())
	assert.False(t, v.IsUpdatable(), "submitted is frozen")

	require.NoError(t, v.Reject())
	assert.True(t, v.IsUpdatable(), "rejected may be edited")
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"draft", "submitted", "approved", "rejected", "active"} {
		parsed, ok := ParseStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, VendorStatus(s), parsed)
	}

	_, ok := ParseStatus("archived")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}
