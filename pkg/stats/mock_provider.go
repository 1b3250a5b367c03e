package stats

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

// MockProvider is a testify mock implementation of Provider.
type MockProvider struct {
	mock.Mock
}

// NewMockProvider creates a new mock stats provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) GetStats(ctx context.Context, userID string) (*domain.UserStatsSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStatsSnapshot), args.Error(1)
}

func (m *MockProvider) RecordCompletion(ctx context.Context, userID string, sessionType domain.SessionType, accuracy float64, correct bool) (*domain.UserStatsSnapshot, bool, error) {
	args := m.Called(ctx, userID, sessionType, accuracy, correct)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.UserStatsSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockProvider) SetFriendCount(ctx context.Context, userID string, count int) error {
	args := m.Called(ctx, userID, count)
	return args.Error(0)
}
