package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/expatsolutions/leads-api/internal/models"
	apperrors "github.com/expatsolutions/leads-api/pkg/errors"
	"github.com/expatsolutions/leads-api/pkg/logger"
	"github.com/expatsolutions/leads-api/pkg/metrics"
)

// DefaultListLimit caps listings when the caller does not ask for a limit
const DefaultListLimit = 50

// validate mirrors the binding rules gin enforces at the transport layer,
// so non-HTTP callers hit the same required-field checks
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// LeadService handles lead submissions and listings
type LeadService struct {
	leadRepo LeadRepositoryInterface
	notifier LeadNotifier
}

// NewLeadService creates a new lead service instance
func NewLeadService(leadRepo LeadRepositoryInterface, notifier LeadNotifier) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		notifier: notifier,
	}
}

// SubmitLead validates and persists a submission, returning the generated
// identifier. Staff notification is not part of this call: the caller
// schedules it via NotifyLeadCreated once the response has been written.
func (s *LeadService) SubmitLead(ctx context.Context, req *models.CreateLeadRequest) (*models.CreateLeadResponse, error) {
	if err := validateLead(req); err != nil {
		metrics.LeadSubmissions.WithLabelValues("invalid").Inc()
		logger.Warn("Rejected lead submission", zap.Error(err))
		return nil, err
	}

	id, err := s.leadRepo.Create(ctx, leadFromRequest(req))
	if err != nil {
		metrics.LeadSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to store lead", zap.Error(err))
		return nil, err
	}

	metrics.LeadSubmissions.WithLabelValues("success").Inc()
	logger.Info("Lead stored",
		zap.String("lead_id", id),
		zap.String("interest", req.Interest))

	return &models.CreateLeadResponse{
		Success: true,
		ID:      id,
	}, nil
}

// NotifyLeadCreated schedules the staff notification for a stored lead.
// It returns immediately and never fails.
func (s *LeadService) NotifyLeadCreated(req *models.CreateLeadRequest, id string) {
	s.notifier.DispatchLeadCreated(leadFromRequest(req), id)
}

// ListLeads returns up to limit recent leads in their caller-facing shape
func (s *LeadService) ListLeads(ctx context.Context, limit int) ([]models.LeadResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	leads, err := s.leadRepo.List(ctx, limit)
	if err != nil {
		metrics.LeadListRequests.WithLabelValues("error").Inc()
		logger.Error("Failed to list leads", zap.Error(err))
		return nil, err
	}

	metrics.LeadListRequests.WithLabelValues("success").Inc()

	responses := make([]models.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, lead.ToResponse())
	}
	return responses, nil
}

// validateLead enforces the required-field invariants on a submission
func validateLead(req *models.CreateLeadRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return apperrors.InvalidInputError(
			strings.ToLower(fe.Field()),
			fmt.Sprintf("fails %s validation", fe.Tag()),
		)
	}
	return apperrors.InvalidInputError("payload", "malformed")
}

// leadFromRequest maps a validated submission onto a store document
func leadFromRequest(req *models.CreateLeadRequest) *models.Lead {
	return &models.Lead{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Interest: req.Interest,
		Notes:    req.Notes,
	}
}
