package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/expatsolutions/leads-api/internal/models"
)

// MockLeadService is a mock implementation of services.LeadServiceInterface
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) SubmitLead(ctx context.Context, req *models.CreateLeadRequest) (*models.CreateLeadResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreateLeadResponse), args.Error(1)
}

func (m *MockLeadService) NotifyLeadCreated(req *models.CreateLeadRequest, id string) {
	m.Called(req, id)
}

func (m *MockLeadService) ListLeads(ctx context.Context, limit int) ([]models.LeadResponse, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeadResponse), args.Error(1)
}

// MockStore is a mock implementation of handlers.StoreChecker
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
