package services

import (
	"context"

	"github.com/expatsolutions/leads-api/internal/models"
	"github.com/expatsolutions/leads-api/internal/notify"
	"github.com/expatsolutions/leads-api/internal/repository"
)

// LeadServiceInterface defines the interface for lead service operations
type LeadServiceInterface interface {
	SubmitLead(ctx context.Context, req *models.CreateLeadRequest) (*models.CreateLeadResponse, error)
	NotifyLeadCreated(req *models.CreateLeadRequest, id string)
	ListLeads(ctx context.Context, limit int) ([]models.LeadResponse, error)
}

// LeadRepositoryInterface defines the store operations lead workflows require
type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *models.Lead) (string, error)
	List(ctx context.Context, limit int) ([]*models.Lead, error)
}

// LeadNotifier schedules staff notifications for stored leads
type LeadNotifier interface {
	DispatchLeadCreated(lead *models.Lead, id string)
}

// Ensure implementations satisfy their interfaces
var _ LeadServiceInterface = (*LeadService)(nil)
var _ LeadRepositoryInterface = (*repository.LeadRepository)(nil)
var _ LeadNotifier = (*notify.Dispatcher)(nil)
