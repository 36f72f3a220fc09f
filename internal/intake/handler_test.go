package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "rfq-intake/internal/common/errors"
	"rfq-intake/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type stubCreator struct {
	resp *CreateRFQResponse
	err  error
}

func (s *stubCreator) CreateRFQ(_ context.Context, _ *CreateRFQRequest) (*CreateRFQResponse, error) {
	return s.resp, s.err
}

func postRFQ(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/rfqs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateRFQ(rec, req)
	return rec
}

// ==========================
// Status Mapping Tests
// ==========================

func TestHandler_CreateRFQ_Created(t *testing.T) {
	h := NewHandler(&stubCreator{resp: &CreateRFQResponse{
		Success:     true,
		RFQID:       "rfq-001",
		RFQTitle:    "Bathroom renovation",
		Message:     "RFQ sent directly to your selected vendor(s)!",
		RFQType:     "direct",
		Status:      "submitted",
		VendorCount: 1,
	}}, logger.NewTestLogger(t))

	rec := postRFQ(t, h, `{"userId":"buyer-001","rfqType":"direct"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body CreateRFQResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "rfq-001", body.RFQID)
	assert.Equal(t, 1, body.VendorCount)
}

func TestHandler_CreateRFQ_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   apperrors.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("missing county"), 400, apperrors.ErrCodeValidationFailed},
		{"auth", apperrors.NewAuthRequiredError(), 401, apperrors.ErrCodeAuthRequired},
		{"quota", apperrors.NewQuotaExceededError(3, 3), 402, apperrors.ErrCodeQuotaExceeded},
		{"verification", apperrors.NewVerificationRequiredError("buyer-001"), 403, apperrors.ErrCodeVerificationRequired},
		{"not found", apperrors.NewNotFoundError("Buyer", "buyer-001"), 404, apperrors.ErrCodeNotFound},
		{"internal", assert.AnError, 500, apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubCreator{err: tt.err}, logger.NewTestLogger(t))

			rec := postRFQ(t, h, `{"userId":"buyer-001","rfqType":"direct"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandler_CreateRFQ_QuotaMetaExposed(t *testing.T) {
	h := NewHandler(&stubCreator{err: apperrors.NewQuotaExceededError(3, 3)}, logger.NewTestLogger(t))

	rec := postRFQ(t, h, `{"userId":"buyer-001","rfqType":"wizard"}`)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body.Error.Meta["current_count"])
	assert.EqualValues(t, 3, body.Error.Meta["limit"])
}

func TestHandler_CreateRFQ_MalformedJSON(t *testing.T) {
	h := NewHandler(&stubCreator{}, logger.NewTestLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/rfqs", bytes.NewReader([]byte(`{"userId":`)))
	rec := httptest.NewRecorder()
	h.CreateRFQ(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateRFQ_InternalDetailHidden(t *testing.T) {
	h := NewHandler(&stubCreator{err: apperrors.NewInternalError(assert.AnError)}, logger.NewTestLogger(t))

	rec := postRFQ(t, h, `{"userId":"buyer-001","rfqType":"wizard"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
