package intake

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "rfq-intake/internal/common/errors"
	"rfq-intake/internal/common/logger"
)

// RFQCreator is what the HTTP layer needs from the orchestrator.
type RFQCreator interface {
	CreateRFQ(ctx context.Context, req *CreateRFQRequest) (*CreateRFQResponse, error)
}

// Handler exposes the intake endpoint.
type Handler struct {
	service RFQCreator
	log     logger.Logger
}

func NewHandler(service RFQCreator, log logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

type errorBody struct {
	Success bool               `json:"success"`
	Error   *apperrors.AppError `json:"error"`
}

// CreateRFQ handles POST /api/rfqs.
func (h *Handler) CreateRFQ(w http.ResponseWriter, r *http.Request) {
	var req CreateRFQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}

	resp, err := h.service.CreateRFQ(r.Context(), &req)
	if err != nil {
		h.writeError(w, apperrors.AsAppError(err))
		return
	}

	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, appErr *apperrors.AppError) {
	if appErr.Code == apperrors.ErrCodeInternal {
		h.log.Error("Intake request failed", map[string]interface{}{
			"code":    string(appErr.Code),
			"details": appErr.Details,
		})
		// Internal detail stays out of the response body.
		appErr = &apperrors.AppError{
			Code:      appErr.Code,
			Message:   appErr.Message,
			Timestamp: appErr.Timestamp,
		}
	}
	h.writeJSON(w, appErr.HTTPStatus(), errorBody{Error: appErr})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("Failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Pinger is a dependency the health endpoint probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles GET /api/health, probing postgres and redis.
func Health(pg, rd Pinger, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		deps := map[string]string{"postgres": "ok", "redis": "ok"}

		if err := pg.Ping(r.Context()); err != nil {
			deps["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := rd.Ping(r.Context()); err != nil {
			deps["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       http.StatusText(status),
			"dependencies": deps,
		})
	}
}
