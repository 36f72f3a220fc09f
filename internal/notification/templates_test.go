package notification

import (
	"testing"

	"rfq-intake/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRender_KnownTypes(t *testing.T) {
	entry := models.OutboxEntry{
		RFQID:   "rfq-001",
		Payload: map[string]string{"rfqTitle": "Bathroom renovation"},
	}

	tests := []struct {
		name             string
		notificationType string
		wantInBody       string
	}{
		{"under review", models.NotificationRFQUnderReview, "being reviewed by our team"},
		{"auto matched", models.NotificationRFQAutoMatched, "auto-matched and sent"},
		{"pending admin review", models.NotificationRFQPendingReview, "submitted for admin review"},
		{"sent to vendor", models.NotificationRFQSentToVendor, "has been sent"},
		{"vendor new rfq", models.NotificationVendorNewRFQ, "new request for quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.NotificationType = tt.notificationType
			msg := render(entry)
			assert.NotEmpty(t, msg.Subject)
			assert.Contains(t, msg.Body, tt.wantInBody)
			assert.Contains(t, msg.Body, "Bathroom renovation")
		})
	}
}

func TestRender_UnknownTypeFallsBack(t *testing.T) {
	msg := render(models.OutboxEntry{RFQID: "rfq-001", NotificationType: "something_else"})

	assert.Equal(t, "Marketplace notification", msg.Subject)
	assert.Contains(t, msg.Body, "rfq-001")
}
