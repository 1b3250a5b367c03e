package notify

import (
	"context"
	"log"
)

// DevLogNotificationSink is a simple sink implementation for local
// development. Unlike MockNotificationSink (testify/mock), this doesn't
// require explicit setup and always succeeds with logged output.
//
// Use this for local development when NOTIFY_MODE=log.
// For tests, use MockNotificationSink instead.
type DevLogNotificationSink struct{}

// NewDevLogNotificationSink creates a new development log sink.
func NewDevLogNotificationSink() *DevLogNotificationSink {
	return &DevLogNotificationSink{}
}

// NotifyLevelUp logs the level-up and returns success.
func (d *DevLogNotificationSink) NotifyLevelUp(ctx context.Context, payload *LevelUpPayload) error {
	log.Printf("[DevLog] NotifyLevelUp: userID=%s, newLevel=%d", payload.UserID, payload.NewLevel)
	return nil
}

// NotifyAchievement logs the achievement and returns success.
func (d *DevLogNotificationSink) NotifyAchievement(ctx context.Context, payload *AchievementPayload) error {
	log.Printf("[DevLog] NotifyAchievement: userID=%s, achievementID=%s, name=%q, points=%d, rarity=%s",
		payload.UserID, payload.AchievementID, payload.Name, payload.Points, payload.Rarity)
	return nil
}

// DevLogSocialSink logs share-post drafts instead of publishing them.
type DevLogSocialSink struct{}

// NewDevLogSocialSink creates a new development log social sink.
func NewDevLogSocialSink() *DevLogSocialSink {
	return &DevLogSocialSink{}
}

// PublishPost logs the post draft and returns success.
func (d *DevLogSocialSink) PublishPost(ctx context.Context, draft *PostDraft) error {
	log.Printf("[DevLog] PublishPost: id=%s, userID=%s, content=%q", draft.ID, draft.UserID, draft.Content)
	return nil
}
