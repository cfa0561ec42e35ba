package usecase

import (
	"context"
	"time"

	"scroll-feed/pkg/logger"
	"scroll-feed/pkg/metrics"
	"scroll-feed/services/feed/internal/repo/persistent"
)

// EventPublisher announces posts that just went live.
type EventPublisher interface {
	PublishDropPublished(ctx context.Context, postIDs []string, publishedAt time.Time) error
}

// DropPublisher promotes scheduled posts whose time has come. It runs before
// every feed read and from cmd/dropctl; repeated calls with the same now
// promote nothing new.
type DropPublisher struct {
	posts   persistent.PostRepository
	events  EventPublisher
	metrics *metrics.Collector
	logger  *logger.Logger
}

// NewDropPublisher accepts a nil events publisher.
func NewDropPublisher(posts persistent.PostRepository, events EventPublisher, m *metrics.Collector, log *logger.Logger) *DropPublisher {
	return &DropPublisher{posts: posts, events: events, metrics: m, logger: log}
}

func (p *DropPublisher) PublishOverdue(ctx context.Context, now time.Time) (int, error) {
	ids, err := p.posts.PublishOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	p.metrics.DropsPublished(len(ids))
	p.logger.Info("Published %d scheduled post(s)", len(ids))

	if p.events != nil {
		if err := p.events.PublishDropPublished(ctx, ids, now); err != nil {
			p.logger.Warn("Failed to announce %d published drop(s): %v", len(ids), err)
		}
	}
	return len(ids), nil
}
