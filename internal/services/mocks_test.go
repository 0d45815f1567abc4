package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/expatsolutions/leads-api/internal/models"
)

// MockLeadRepository is a mock implementation of LeadRepositoryInterface
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *models.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, limit int) ([]*models.Lead, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lead), args.Error(1)
}

// MockLeadNotifier is a mock implementation of LeadNotifier
type MockLeadNotifier struct {
	mock.Mock
}

func (m *MockLeadNotifier) DispatchLeadCreated(lead *models.Lead, id string) {
	m.Called(lead, id)
}
