package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/utsavratan/gestureflow/pkg/domain"
)

// LevelUpPayload announces that a user reached a new level.
type LevelUpPayload struct {
	UserID   string    `json:"user_id"`
	NewLevel int       `json:"new_level"`
	At       time.Time `json:"at"`
}

// AchievementPayload announces that a user earned an achievement.
type AchievementPayload struct {
	UserID        string        `json:"user_id"`
	AchievementID string        `json:"achievement_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Points        int           `json:"points"`
	Rarity        domain.Rarity `json:"rarity"`
	EarnedAt      time.Time     `json:"earned_at"`
}

// PostDraft is a ready-to-publish social feed post celebrating an earned
// achievement.
type PostDraft struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ShareMessage renders the feed copy for an earned achievement.
func ShareMessage(name, description string) string {
	return fmt.Sprintf("🏆 I just earned the \"%s\" achievement! %s", name, description)
}

// NotificationSink receives user-facing progression notifications.
// Delivery is best-effort: the engine never blocks progression on a sink,
// and a failing sink never rolls back XP or grants.
type NotificationSink interface {
	NotifyLevelUp(ctx context.Context, payload *LevelUpPayload) error
	NotifyAchievement(ctx context.Context, payload *AchievementPayload) error
}

// SocialSink receives share-post drafts for earned achievements.
type SocialSink interface {
	PublishPost(ctx context.Context, draft *PostDraft) error
}
