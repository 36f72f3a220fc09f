// Package intake is the entry point of the RFQ pipeline: request validation,
// the orchestrator composing eligibility, routing, assignment and
// notification, and the HTTP handler exposing it.
package intake

import (
	"fmt"
	"strings"
	"time"

	apperrors "rfq-intake/internal/common/errors"
	"rfq-intake/internal/models"
)

// SharedFields carries the type-independent submission fields.
type SharedFields struct {
	ProjectTitle     string   `json:"projectTitle"`
	ProjectSummary   string   `json:"projectSummary"`
	County           string   `json:"county"`
	Town             string   `json:"town,omitempty"`
	BudgetMin        *float64 `json:"budgetMin,omitempty"`
	BudgetMax        *float64 `json:"budgetMax,omitempty"`
	DesiredStartDate string   `json:"desiredStartDate,omitempty"` // YYYY-MM-DD
}

// CreateRFQRequest is the wire shape of a submission.
type CreateRFQRequest struct {
	UserID          string       `json:"userId"`
	RFQType         string       `json:"rfqType"`
	CategorySlug    string       `json:"categorySlug"`
	JobTypeSlug     string       `json:"jobTypeSlug,omitempty"`
	SharedFields    SharedFields `json:"sharedFields"`
	SelectedVendors []string     `json:"selectedVendors,omitempty"`
}

// CreateRFQResponse is the 201 body.
type CreateRFQResponse struct {
	Success          bool   `json:"success"`
	RFQID            string `json:"rfqId"`
	RFQTitle         string `json:"rfqTitle"`
	Message          string `json:"message"`
	RFQType          string `json:"rfqType"`
	Status           string `json:"status"`
	NeedsAdminReview bool   `json:"needsAdminReview"`
	VendorCount      int    `json:"vendorCount"`
}

// validate applies every check that must hold before any side effect. Auth is
// checked first so an anonymous caller gets 401 rather than a field error.
func (r *CreateRFQRequest) validate() (models.RFQType, error) {
	if strings.TrimSpace(r.UserID) == "" {
		return "", apperrors.NewAuthRequiredError()
	}

	rfqType, err := models.ParseRFQType(r.RFQType)
	if err != nil {
		return "", apperrors.NewValidationError(fmt.Sprintf("rfqType: %v", err))
	}

	var missing []string
	if strings.TrimSpace(r.CategorySlug) == "" {
		missing = append(missing, "categorySlug")
	}
	if strings.TrimSpace(r.SharedFields.ProjectTitle) == "" {
		missing = append(missing, "projectTitle")
	}
	if strings.TrimSpace(r.SharedFields.ProjectSummary) == "" {
		missing = append(missing, "projectSummary")
	}
	if strings.TrimSpace(r.SharedFields.County) == "" {
		missing = append(missing, "county")
	}
	if len(missing) > 0 {
		return "", apperrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}

	if r.SharedFields.BudgetMin != nil && r.SharedFields.BudgetMax != nil &&
		*r.SharedFields.BudgetMin > *r.SharedFields.BudgetMax {
		return "", apperrors.NewValidationError("budgetMin must not exceed budgetMax")
	}

	if r.SharedFields.DesiredStartDate != "" {
		if _, err := time.Parse("2006-01-02", r.SharedFields.DesiredStartDate); err != nil {
			return "", apperrors.NewValidationError("desiredStartDate must be YYYY-MM-DD")
		}
	}

	// Type-specific vendor cardinality. Fail fast, no partial state.
	switch rfqType {
	case models.RFQTypeDirect:
		if len(r.SelectedVendors) == 0 {
			return "", apperrors.NewValidationError("direct RFQ requires at least one selected vendor")
		}
	case models.RFQTypeVendorRequest:
		if len(r.SelectedVendors) != 1 {
			return "", apperrors.NewValidationError("vendor-request RFQ requires exactly one selected vendor")
		}
	}
	for _, id := range r.SelectedVendors {
		if strings.TrimSpace(id) == "" {
			return "", apperrors.NewValidationError("selectedVendors must not contain empty ids")
		}
	}

	return rfqType, nil
}

// desiredStartDate parses the optional date after validation has passed.
func (r *CreateRFQRequest) desiredStartDate() *time.Time {
	if r.SharedFields.DesiredStartDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", r.SharedFields.DesiredStartDate)
	if err != nil {
		return nil
	}
	return &t
}
