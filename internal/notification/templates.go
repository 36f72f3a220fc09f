package notification

import (
	"fmt"

	"rfq-intake/internal/models"
)

// renderedMessage is the subject/body pair a channel delivers.
type renderedMessage struct {
	Subject string
	Body    string
}

// render produces the human-readable message for one outbox entry. Unknown
// types fall back to a generic notice rather than failing the delivery.
func render(entry models.OutboxEntry) renderedMessage {
	title := entry.Payload["rfqTitle"]

	switch entry.NotificationType {
	case models.NotificationRFQUnderReview:
		return renderedMessage{
			Subject: "Your RFQ is being reviewed",
			Body: fmt.Sprintf(
				"Your RFQ %q is being reviewed by our team to find the best matching vendors. We'll notify you once it has been matched.",
				title),
		}
	case models.NotificationRFQAutoMatched:
		return renderedMessage{
			Subject: "Your RFQ has been sent to vendors",
			Body: fmt.Sprintf(
				"Your RFQ %q was auto-matched and sent to top vendors. They will respond with quotes shortly.",
				title),
		}
	case models.NotificationRFQPendingReview:
		return renderedMessage{
			Subject: "Your RFQ was submitted for admin review",
			Body: fmt.Sprintf(
				"Your RFQ %q has been submitted for admin review. Once approved, it will be visible to vendors.",
				title),
		}
	case models.NotificationRFQSentToVendor:
		return renderedMessage{
			Subject: "Your request for quote was sent",
			Body: fmt.Sprintf(
				"Your request for quote %q has been sent to the selected vendor(s).",
				title),
		}
	case models.NotificationVendorNewRFQ:
		return renderedMessage{
			Subject: "New request for quote",
			Body: fmt.Sprintf(
				"You have received a new request for quote: %q. Sign in to respond with your offer.",
				title),
		}
	}

	return renderedMessage{
		Subject: "Marketplace notification",
		Body:    fmt.Sprintf("There is an update on RFQ %s.", entry.RFQID),
	}
}
