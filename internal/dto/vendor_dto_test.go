package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ruwaid884/verity-vendor-secure/internal/model"
)

func strPtr(s string) *string { return &s }

func TestVendorResponseNeverExposesAccountNumber(t *testing.T) {
	v := model.NewVendor(uuid.New(), "Acme Corp")
	v.BankName = strPtr("First National")
	v.RoutingNumber = strPtr("123456789")
	v.AccountType = strPtr("checking")
	v.AccountNumberEncrypted = strPtr("c2VhbGVkLWFjY291bnQtbnVtYmVy")

	raw, err := json.Marshal(NewVendorResponse(v))
	require.NoError(t, err)

	body := string(raw)
	assert.NotContains(t, body, "c2VhbGVkLWFjY291bnQtbnVtYmVy")
	assert.NotContains(t, body, "accountNumber")
	assert.NotContains(t, body, "account_number")

	// The rest of the banking block is visible.
	assert.Contains(t, body, `"bankName":"First National"`)
	assert.Contains(t, body, `"routingNumber":"123456789"`)
}

func TestVendorResponseProjection(t *testing.T) {
	approver := uuid.New()
	now := time.Now().UTC()

	v := model.NewVendor(uuid.New(), "Acme Corp")
	v.Status = model.StatusApproved
	v.SubmittedAt = &now
	v.ApprovedAt = &now
	v.ApproverUserID = &approver

	resp := NewVendorResponse(v)
	assert.Equal(t, v.ID.String(), resp.ID)
	assert.Equal(t, v.CompanyID.String(), resp.CompanyID)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ApproverUserID)
	assert.Equal(t, approver.String(), *resp.ApproverUserID)
	assert.Nil(t, resp.VendorUserID)
}

func TestVendorResponseUsesCamelCaseKeys(t *testing.T) {
	v := model.NewVendor(uuid.New(), "Acme Corp")
	v.ZipCode = strPtr("62701")
	v.TaxID = strPtr("12-3456789")

	raw, err := json.Marshal(NewVendorResponse(v))
	require.NoError(t, err)

	body := string(raw)
	for _, key := range []string{`"companyId"`, `"companyName"`, `"zipCode"`, `"taxId"`, `"createdAt"`, `"submittedAt"`} {
		assert.Contains(t, body, key)
	}
}
