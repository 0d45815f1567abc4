package repository

import (
	"context"

	"github.com/expatsolutions/leads-api/internal/database/mongodb"
	"github.com/expatsolutions/leads-api/internal/models"
	apperrors "github.com/expatsolutions/leads-api/pkg/errors"
)

// LeadRepository handles lead data access
type LeadRepository struct {
	store *mongodb.Client
}

// NewLeadRepository creates a new lead repository. A nil store client is
// allowed: the server boots without a database and every store operation
// then reports the dependency as unavailable.
func NewLeadRepository(store *mongodb.Client) *LeadRepository {
	return &LeadRepository{
		store: store,
	}
}

// Create inserts a lead and returns its generated identifier
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) (string, error) {
	if r.store == nil {
		return "", apperrors.StorageUnavailableError("Database not configured")
	}

	id, err := r.store.InsertLead(ctx, lead)
	if err != nil {
		return "", apperrors.StorageError("create lead", err)
	}
	return id, nil
}

// List returns up to limit leads, newest first
func (r *LeadRepository) List(ctx context.Context, limit int) ([]*models.Lead, error) {
	if r.store == nil {
		return nil, apperrors.StorageUnavailableError("Database not configured")
	}

	leads, err := r.store.ListLeads(ctx, limit)
	if err != nil {
		return nil, apperrors.StorageError("list leads", err)
	}
	return leads, nil
}

// Available reports whether a store connection was established at boot
func (r *LeadRepository) Available() bool {
	return r.store != nil
}

// Ping checks that the store answers
func (r *LeadRepository) Ping(ctx context.Context) error {
	if r.store == nil {
		return apperrors.StorageUnavailableError("Database not configured")
	}
	return r.store.Ping(ctx)
}
