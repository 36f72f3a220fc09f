package models

import (
	"fmt"
	"time"
)

// RFQType is the closed set of request-for-quote types. It is parsed once at
// the HTTP edge; everything downstream dispatches on the typed value, never on
// raw strings.
type RFQType string

const (
	RFQTypeDirect        RFQType = "direct"
	RFQTypeWizard        RFQType = "wizard"
	RFQTypePublic        RFQType = "public"
	RFQTypeVendorRequest RFQType = "vendor-request"
)

// ParseRFQType validates a wire value against the closed set.
func ParseRFQType(s string) (RFQType, error) {
	switch RFQType(s) {
	case RFQTypeDirect, RFQTypeWizard, RFQTypePublic, RFQTypeVendorRequest:
		return RFQType(s), nil
	}
	return "", fmt.Errorf("unknown rfq type %q", s)
}

// RFQStatus is the lifecycle status owned by the intake pipeline. Downstream
// flows (vendor responses, admin approval) own later transitions.
type RFQStatus string

const (
	StatusSubmitted        RFQStatus = "submitted"
	StatusPendingApproval  RFQStatus = "pending_approval"
	StatusNeedsAdminReview RFQStatus = "needs_admin_review"
)

// Visibility of an RFQ to vendors browsing publicly. Always private at
// creation; only an admin approval flips a public RFQ to visible.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// RFQ is a buyer's request for quote.
type RFQ struct {
	ID               string     `db:"id" json:"id"`
	BuyerID          string     `db:"buyer_id" json:"buyerId"`
	Title            string     `db:"title" json:"title"`
	Description      string     `db:"description" json:"description"`
	CategorySlug     string     `db:"category_slug" json:"categorySlug"`
	JobTypeSlug      string     `db:"job_type_slug" json:"jobTypeSlug"`
	County           string     `db:"county" json:"county"`
	Town             string     `db:"town" json:"town,omitempty"`
	BudgetMin        *float64   `db:"budget_min" json:"budgetMin,omitempty"`
	BudgetMax        *float64   `db:"budget_max" json:"budgetMax,omitempty"`
	DesiredStartDate *time.Time `db:"desired_start_date" json:"desiredStartDate,omitempty"`
	Type             RFQType    `db:"rfq_type" json:"rfqType"`
	Status           RFQStatus  `db:"status" json:"status"`
	Visibility       Visibility `db:"visibility" json:"visibility"`
	AssignedVendorID *string    `db:"assigned_vendor_id" json:"assignedVendorId,omitempty"`
	IsPaid           bool       `db:"is_paid" json:"isPaid"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
}

// RecipientType records which assignment path produced a recipient row.
type RecipientType string

const (
	RecipientDirect        RecipientType = "direct"
	RecipientMatched       RecipientType = "matched"
	RecipientPublic        RecipientType = "public"
	RecipientVendorRequest RecipientType = "vendor-request"
)

// RecipientStatus is the initial state of an assignment row.
type RecipientStatus string

const (
	RecipientStatusSent            RecipientStatus = "sent"
	RecipientStatusPending         RecipientStatus = "pending"
	RecipientStatusPendingApproval RecipientStatus = "pending_approval"
)

// RecipientAssignment links one RFQ to one vendor. At most one row exists per
// (rfq_id, vendor_id) pair; status updates belong to downstream flows.
type RecipientAssignment struct {
	RFQID     string          `db:"rfq_id" json:"rfqId"`
	VendorID  string          `db:"vendor_id" json:"vendorId"`
	Type      RecipientType   `db:"recipient_type" json:"recipientType"`
	Status    RecipientStatus `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}
