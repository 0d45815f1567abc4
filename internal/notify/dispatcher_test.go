package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/expatsolutions/leads-api/config"
	"github.com/expatsolutions/leads-api/internal/models"
	"github.com/expatsolutions/leads-api/internal/notify"
	"github.com/expatsolutions/leads-api/pkg/logger"
	"github.com/expatsolutions/leads-api/pkg/mailer"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// MockMailer is a mock implementation of mailer.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMailer) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func waitForDispatch(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never dispatched")
	}
}

func TestDispatcher_Recipients_Deduplicates(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		secondary string
		expected  []string
	}{
		{
			name:      "two distinct addresses",
			primary:   "sales@expatsolutions.asia",
			secondary: "ops@expatsolutions.asia",
			expected:  []string{"sales@expatsolutions.asia", "ops@expatsolutions.asia"},
		},
		{
			name:      "primary equals secondary",
			primary:   "sales@expatsolutions.asia",
			secondary: "sales@expatsolutions.asia",
			expected:  []string{"sales@expatsolutions.asia"},
		},
		{
			name:      "blank secondary dropped",
			primary:   "sales@expatsolutions.asia",
			secondary: "  ",
			expected:  []string{"sales@expatsolutions.asia"},
		},
		{
			name:      "only secondary configured",
			primary:   "",
			secondary: "ops@expatsolutions.asia",
			expected:  []string{"ops@expatsolutions.asia"},
		},
		{
			name:      "nothing configured",
			primary:   "",
			secondary: "",
			expected:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := notify.NewDispatcher(new(MockMailer), config.NotificationsConfig{
				PrimaryEmail:   tt.primary,
				SecondaryEmail: tt.secondary,
			})
			assert.Equal(t, tt.expected, d.Recipients())
		})
	}
}

func TestDispatcher_DispatchLeadCreated_SendsFormattedMessage(t *testing.T) {
	mockMailer := new(MockMailer)
	done := make(chan struct{})

	var sent mailer.Message
	mockMailer.On("Configured").Return(true)
	mockMailer.On("Send", mock.Anything, mock.AnythingOfType("mailer.Message")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(mailer.Message)
			close(done)
		}).
		Return(nil).Once()

	d := notify.NewDispatcher(mockMailer, config.NotificationsConfig{
		PrimaryEmail:   "sales@expatsolutions.asia",
		SecondaryEmail: "ops@expatsolutions.asia",
	})

	lead := &models.Lead{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Interest: "visa consultation",
	}
	d.DispatchLeadCreated(lead, "65f2a9c1e4b0d21f3c8a7b01")

	waitForDispatch(t, done)

	assert.Equal(t, []string{"sales@expatsolutions.asia", "ops@expatsolutions.asia"}, sent.To)
	assert.Equal(t, "jane@example.com", sent.ReplyTo)
	assert.Equal(t, "New consultation lead – Expat Solutions in Asia", sent.Subject)
	assert.Contains(t, sent.Body, "ID: 65f2a9c1e4b0d21f3c8a7b01")
	assert.Contains(t, sent.Body, "Name: Jane Doe")
	assert.Contains(t, sent.Body, "Email: jane@example.com")
	assert.Contains(t, sent.Body, "Phone: not provided")
	assert.Contains(t, sent.Body, "Interest: visa consultation")
	assert.Contains(t, sent.Body, "Notes: none")
	assert.Contains(t, sent.Body, "Reply directly to jane@example.com")

	mockMailer.AssertExpectations(t)
}

func TestDispatcher_DispatchLeadCreated_IncludesOptionalFields(t *testing.T) {
	mockMailer := new(MockMailer)
	done := make(chan struct{})

	var sent mailer.Message
	mockMailer.On("Configured").Return(true)
	mockMailer.On("Send", mock.Anything, mock.AnythingOfType("mailer.Message")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(mailer.Message)
			close(done)
		}).
		Return(nil).Once()

	d := notify.NewDispatcher(mockMailer, config.NotificationsConfig{
		PrimaryEmail: "sales@expatsolutions.asia",
	})

	lead := &models.Lead{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+66 89 123 4567",
		Interest: "relocation",
		Notes:    "Arriving in Bangkok next month",
	}
	d.DispatchLeadCreated(lead, "65f2a9c1e4b0d21f3c8a7b02")

	waitForDispatch(t, done)

	assert.Contains(t, sent.Body, "Phone: +66 89 123 4567")
	assert.Contains(t, sent.Body, "Notes: Arriving in Bangkok next month")

	mockMailer.AssertExpectations(t)
}

func TestDispatcher_DispatchLeadCreated_SkipsWhenMailerUnconfigured(t *testing.T) {
	mockMailer := new(MockMailer)
	mockMailer.On("Configured").Return(false)

	d := notify.NewDispatcher(mockMailer, config.NotificationsConfig{
		PrimaryEmail: "sales@expatsolutions.asia",
	})

	d.DispatchLeadCreated(&models.Lead{Name: "Jane", Email: "jane@example.com", Interest: "visa"}, "id-1")

	// Give any stray goroutine a moment to run before asserting
	time.Sleep(50 * time.Millisecond)
	mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatcher_DispatchLeadCreated_SkipsWithoutRecipients(t *testing.T) {
	mockMailer := new(MockMailer)
	mockMailer.On("Configured").Return(true)

	d := notify.NewDispatcher(mockMailer, config.NotificationsConfig{})

	d.DispatchLeadCreated(&models.Lead{Name: "Jane", Email: "jane@example.com", Interest: "visa"}, "id-2")

	time.Sleep(50 * time.Millisecond)
	mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatcher_DispatchLeadCreated_SwallowsSendFailure(t *testing.T) {
	mockMailer := new(MockMailer)
	done := make(chan struct{})

	mockMailer.On("Configured").Return(true)
	mockMailer.On("Send", mock.Anything, mock.AnythingOfType("mailer.Message")).
		Run(func(args mock.Arguments) { close(done) }).
		Return(errors.New("connection refused")).Once()

	d := notify.NewDispatcher(mockMailer, config.NotificationsConfig{
		PrimaryEmail: "sales@expatsolutions.asia",
	})

	// Must not panic or propagate anything
	d.DispatchLeadCreated(&models.Lead{Name: "Jane", Email: "jane@example.com", Interest: "visa"}, "id-3")

	waitForDispatch(t, done)
	mockMailer.AssertExpectations(t)
}
