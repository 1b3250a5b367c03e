package notify

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotificationSink is a testify mock implementation of NotificationSink.
type MockNotificationSink struct {
	mock.Mock
}

// NewMockNotificationSink creates a new mock notification sink.
func NewMockNotificationSink() *MockNotificationSink {
	return &MockNotificationSink{}
}

func (m *MockNotificationSink) NotifyLevelUp(ctx context.Context, payload *LevelUpPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockNotificationSink) NotifyAchievement(ctx context.Context, payload *AchievementPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockSocialSink is a testify mock implementation of SocialSink.
type MockSocialSink struct {
	mock.Mock
}

// NewMockSocialSink creates a new mock social sink.
func NewMockSocialSink() *MockSocialSink {
	return &MockSocialSink{}
}

func (m *MockSocialSink) PublishPost(ctx context.Context, draft *PostDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}
