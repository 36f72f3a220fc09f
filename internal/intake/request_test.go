package intake

import (
	"testing"

	apperrors "rfq-intake/internal/common/errors"
	"rfq-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRFQRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CreateRFQRequest)
		wantCode apperrors.ErrorCode
	}{
		{"missing title", func(r *CreateRFQRequest) { r.SharedFields.ProjectTitle = " " }, apperrors.ErrCodeValidationFailed},
		{"missing summary", func(r *CreateRFQRequest) { r.SharedFields.ProjectSummary = "" }, apperrors.ErrCodeValidationFailed},
		{"missing county", func(r *CreateRFQRequest) { r.SharedFields.County = "" }, apperrors.ErrCodeValidationFailed},
		{"missing category", func(r *CreateRFQRequest) { r.CategorySlug = "" }, apperrors.ErrCodeValidationFailed},
		{"bad date", func(r *CreateRFQRequest) { r.SharedFields.DesiredStartDate = "next tuesday" }, apperrors.ErrCodeValidationFailed},
		{"blank vendor id", func(r *CreateRFQRequest) { r.SelectedVendors = []string{" "} }, apperrors.ErrCodeValidationFailed},
		{"no user", func(r *CreateRFQRequest) { r.UserID = "" }, apperrors.ErrCodeAuthRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("wizard")
			tt.mutate(req)

			_, err := req.validate()

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.AsAppError(err).Code)
		})
	}
}

func TestCreateRFQRequest_Validate_VendorCardinality(t *testing.T) {
	req := validRequest("vendor-request")
	req.SelectedVendors = []string{"v-001", "v-002"}
	_, err := req.validate()
	assert.Error(t, err, "vendor-request takes exactly one vendor")

	req.SelectedVendors = []string{"v-001"}
	rfqType, err := req.validate()
	require.NoError(t, err)
	assert.Equal(t, models.RFQTypeVendorRequest, rfqType)
}

func TestCreateRFQRequest_Validate_WizardNeedsNoVendors(t *testing.T) {
	req := validRequest("wizard")
	req.SelectedVendors = nil

	rfqType, err := req.validate()

	require.NoError(t, err)
	assert.Equal(t, models.RFQTypeWizard, rfqType)
}

func TestCreateRFQRequest_DesiredStartDate(t *testing.T) {
	req := validRequest("wizard")
	assert.Nil(t, req.desiredStartDate())

	req.SharedFields.DesiredStartDate = "2026-09-15"
	parsed := req.desiredStartDate()
	require.NotNil(t, parsed)
	assert.Equal(t, 2026, parsed.Year())
}
