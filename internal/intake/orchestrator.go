package intake

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rfq-intake/internal/assignment"
	"rfq-intake/internal/common/database"
	apperrors "rfq-intake/internal/common/errors"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/common/metrics"
	"rfq-intake/internal/eligibility"
	"rfq-intake/internal/models"
	"rfq-intake/internal/notification"

	"github.com/google/uuid"
)

// Service orchestrates one RFQ submission end to end. Everything before the
// RFQ insert short-circuits with a typed failure and no partial state; once
// the row is committed, every later step is best effort and the caller always
// sees success, possibly degraded.
type Service struct {
	db         *database.PostgresClient
	store      *Store
	gate       *eligibility.Gate
	router     *assignment.Router
	writer     *assignment.Writer
	dispatcher *notification.Dispatcher
	log        logger.Logger
}

func NewService(
	db *database.PostgresClient,
	store *Store,
	gate *eligibility.Gate,
	router *assignment.Router,
	writer *assignment.Writer,
	dispatcher *notification.Dispatcher,
	log logger.Logger,
) *Service {
	return &Service{
		db:         db,
		store:      store,
		gate:       gate,
		router:     router,
		writer:     writer,
		dispatcher: dispatcher,
		log:        log,
	}
}

// CreateRFQ runs the full intake sequence: validation, buyer and category
// resolution, eligibility under the buyer lock, the RFQ insert, routing,
// recipient assignment and notification enqueue.
func (s *Service) CreateRFQ(ctx context.Context, req *CreateRFQRequest) (*CreateRFQResponse, error) {
	start := time.Now()

	rfqType, err := req.validate()
	if err != nil {
		metrics.RFQRejected.WithLabelValues("validation").Inc()
		return nil, err
	}

	buyer, err := s.store.GetBuyer(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.RFQRejected.WithLabelValues("buyer_not_found").Inc()
			return nil, apperrors.NewNotFoundError("Buyer", req.UserID)
		}
		return nil, apperrors.NewInternalError(err)
	}

	exists, err := s.store.CategoryExists(ctx, req.CategorySlug)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !exists {
		metrics.RFQRejected.WithLabelValues("category_not_found").Inc()
		return nil, apperrors.NewNotFoundError("Category", req.CategorySlug)
	}

	jobTypeSlug := req.JobTypeSlug
	if jobTypeSlug == "" {
		jobTypeSlug, err = s.store.FirstJobType(ctx, req.CategorySlug)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
	}

	rfq := models.RFQ{
		ID:               uuid.NewString(),
		BuyerID:          buyer.ID,
		Title:            req.SharedFields.ProjectTitle,
		Description:      req.SharedFields.ProjectSummary,
		CategorySlug:     req.CategorySlug,
		JobTypeSlug:      jobTypeSlug,
		County:           req.SharedFields.County,
		Town:             req.SharedFields.Town,
		BudgetMin:        req.SharedFields.BudgetMin,
		BudgetMax:        req.SharedFields.BudgetMax,
		DesiredStartDate: req.desiredStartDate(),
		Type:             rfqType,
		Status:           s.router.InitialStatus(rfqType),
		Visibility:       models.VisibilityPrivate,
		CreatedAt:        time.Now().UTC(),
	}

	// Quota recount and insert serialize per buyer here. Two concurrent
	// submissions cannot both observe "2 of 3 used".
	err = s.db.WithBuyerLock(ctx, buyer.ID, func(tx *sql.Tx) error {
		decision, gateErr := s.gate.Check(ctx, tx, buyer)
		if gateErr != nil {
			return apperrors.NewInternalError(gateErr)
		}
		if !decision.Allowed {
			switch decision.Reason {
			case eligibility.ReasonVerificationRequired:
				metrics.RFQRejected.WithLabelValues("verification_required").Inc()
				return apperrors.NewVerificationRequiredError(buyer.ID)
			default:
				metrics.RFQRejected.WithLabelValues("quota_exceeded").Inc()
				return apperrors.NewQuotaExceededError(decision.CurrentCount, decision.Limit)
			}
		}
		return s.store.InsertRFQ(ctx, tx, rfq)
	})
	if err != nil {
		return nil, err
	}

	// The RFQ row exists from here on. Nothing below may fail the request.
	plan := s.router.Route(ctx, assignment.RouteInput{
		RFQ:             rfq,
		SelectedVendors: req.SelectedVendors,
	})

	if plan.Status != rfq.Status {
		if updErr := s.store.UpdateRFQStatus(ctx, rfq.ID, plan.Status); updErr != nil {
			s.log.Error("Failed to update RFQ status after routing", map[string]interface{}{
				"rfqId":  rfq.ID,
				"status": string(plan.Status),
				"error":  updErr.Error(),
			})
		}
	}
	rfq.Status = plan.Status

	result := s.writer.Assign(ctx, rfq.ID, plan.Recipients)

	s.dispatcher.Dispatch(ctx, rfq, result.Succeeded, plan.NeedsAdminReview)

	s.store.RecordAudit(ctx, "rfq.created", "rfq", rfq.ID, map[string]interface{}{
		"buyerId":          buyer.ID,
		"rfqType":          string(rfq.Type),
		"status":           string(rfq.Status),
		"vendorCount":      len(result.Succeeded),
		"needsAdminReview": plan.NeedsAdminReview,
	})

	metrics.RFQCreated.WithLabelValues(string(rfq.Type), string(rfq.Status)).Inc()
	metrics.IntakeDuration.WithLabelValues(string(rfq.Type)).Observe(time.Since(start).Seconds())

	s.log.Info("RFQ created", map[string]interface{}{
		"rfqId":            rfq.ID,
		"buyerId":          buyer.ID,
		"rfqType":          string(rfq.Type),
		"status":           string(rfq.Status),
		"vendorCount":      len(result.Succeeded),
		"needsAdminReview": plan.NeedsAdminReview,
	})

	return &CreateRFQResponse{
		Success:          true,
		RFQID:            rfq.ID,
		RFQTitle:         rfq.Title,
		Message:          responseMessage(rfq.Type, plan.NeedsAdminReview, len(result.Succeeded)),
		RFQType:          string(rfq.Type),
		Status:           string(rfq.Status),
		NeedsAdminReview: plan.NeedsAdminReview,
		VendorCount:      len(result.Succeeded),
	}, nil
}
