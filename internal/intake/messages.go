package intake

import (
	"fmt"

	"rfq-intake/internal/models"
)

// responseMessage picks the human-readable line for the 201 body. The branch
// is the combination of type and matching outcome; external callers parse
// these, so the wording is part of the contract.
func responseMessage(rfqType models.RFQType, needsAdminReview bool, vendorCount int) string {
	switch rfqType {
	case models.RFQTypeWizard:
		if needsAdminReview {
			return "Your RFQ is being reviewed by our team to find the best matching vendors. We'll notify you once it has been matched."
		}
		return fmt.Sprintf("RFQ auto-matched and sent to %d top vendor(s). They will respond with quotes shortly.", vendorCount)
	case models.RFQTypePublic:
		if vendorCount == 0 {
			return "Your RFQ has been submitted for admin review. Once approved, it will be visible to vendors."
		}
		return "Your RFQ has been submitted for admin review. Once approved, it will be visible to vendors and the matched vendors will be invited to quote."
	case models.RFQTypeVendorRequest:
		return "Your request for quote has been sent to the vendor!"
	case models.RFQTypeDirect:
		return "RFQ sent directly to your selected vendor(s)!"
	}
	return "Your RFQ has been submitted."
}
