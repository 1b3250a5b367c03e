package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/utsavratan/gestureflow/pkg/common"
	"github.com/utsavratan/gestureflow/pkg/errors"
)

const (
	defaultQueueSize = 256
	defaultWorkers   = 4
	deliveryTimeout  = 5 * time.Second
)

type deliveryKind string

const (
	kindLevelUp     deliveryKind = "level_up"
	kindAchievement deliveryKind = "achievement"
	kindSocialPost  deliveryKind = "social_post"
)

type delivery struct {
	kind        deliveryKind
	levelUp     *LevelUpPayload
	achievement *AchievementPayload
	post        *PostDraft
}

// Dispatcher fans progression notifications out to the configured sinks
// asynchronously. Enqueueing never blocks the caller: when the queue is
// full the delivery is dropped and logged, because progression state has
// already been committed and must not stall on a slow sink.
type Dispatcher struct {
	notifications NotificationSink
	social        SocialSink
	retryCfg      common.RetryConfig
	logger        *slog.Logger

	queue chan delivery
	wg    sync.WaitGroup

	// mu orders enqueue sends against Close: Close flips closed and
	// closes the queue under the write lock, so a send can never hit a
	// closed channel.
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithQueueSize overrides the delivery queue capacity.
func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan delivery, n)
		}
	}
}

// WithRetryConfig overrides the per-delivery retry settings.
func WithRetryConfig(cfg common.RetryConfig) DispatcherOption {
	return func(d *Dispatcher) {
		d.retryCfg = cfg
	}
}

// NewDispatcher creates a Dispatcher and starts its delivery workers.
// Either sink may be nil; deliveries for a nil sink are discarded.
func NewDispatcher(notifications NotificationSink, social SocialSink, logger *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		notifications: notifications,
		social:        social,
		retryCfg:      common.DefaultRetryConfig(),
		logger:        logger,
		queue:         make(chan delivery, defaultQueueSize),
	}

	for _, opt := range opts {
		opt(d)
	}

	for i := 0; i < defaultWorkers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// EnqueueLevelUp queues a level-up notification for delivery.
func (d *Dispatcher) EnqueueLevelUp(payload *LevelUpPayload) {
	d.enqueue(delivery{kind: kindLevelUp, levelUp: payload})
}

// EnqueueAchievement queues an achievement notification for delivery.
func (d *Dispatcher) EnqueueAchievement(payload *AchievementPayload) {
	d.enqueue(delivery{kind: kindAchievement, achievement: payload})
}

// EnqueueSocialPost queues a share-post draft for publication.
func (d *Dispatcher) EnqueueSocialPost(draft *PostDraft) {
	d.enqueue(delivery{kind: kindSocialPost, post: draft})
}

func (d *Dispatcher) enqueue(item delivery) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dropped: dispatcher closed", "kind", string(item.kind))
		return
	}

	select {
	case d.queue <- item:
	default:
		d.logger.Warn("notification dropped: queue full", "kind", string(item.kind))
	}
}

// Close stops accepting new deliveries, drains the queue, and waits for
// in-flight deliveries to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for item := range d.queue {
		d.deliver(item)
	}
}

func (d *Dispatcher) deliver(item delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	err := common.Retry(ctx, d.retryCfg, func(ctx context.Context) error {
		switch item.kind {
		case kindLevelUp:
			if d.notifications == nil {
				return nil
			}
			return d.notifications.NotifyLevelUp(ctx, item.levelUp)
		case kindAchievement:
			if d.notifications == nil {
				return nil
			}
			return d.notifications.NotifyAchievement(ctx, item.achievement)
		case kindSocialPost:
			if d.social == nil {
				return nil
			}
			return d.social.PublishPost(ctx, item.post)
		default:
			return nil
		}
	})
	if err != nil {
		d.logger.Error("notification delivery failed",
			"error", errors.ErrNotifyFailed(string(item.kind), err),
		)
	}
}
