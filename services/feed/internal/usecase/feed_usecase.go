package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scroll-feed/pkg/config"
	"scroll-feed/pkg/logger"
	"scroll-feed/pkg/metrics"
	"scroll-feed/services/feed/internal/compose"
	"scroll-feed/services/feed/internal/entity"
	"scroll-feed/services/feed/internal/ranking"
	"scroll-feed/services/feed/internal/repo/persistent"
)

type FeedUseCase interface {
	GetFeed(ctx context.Context, req FeedRequest) (*entity.FeedPage, error)
	GetPost(ctx context.Context, viewerID, postID string) (*entity.FeedItem, error)
	CanRepost(ctx context.Context, viewerID, postID string, viaRepost bool) (bool, error)
}

// MediaSigner turns a stored media key into a short-lived URL.
type MediaSigner interface {
	PresignMedia(key string, ttl time.Duration) (string, error)
}

// Repositories groups the storage collaborators of the feed engine.
type Repositories struct {
	Posts     persistent.PostRepository
	Reposts   persistent.RepostRepository
	Follows   persistent.FollowRepository
	Audiences persistent.AudienceRepository
	Viewers   persistent.ViewerRepository
	Saved     persistent.SavedRepository
}

type Option func(*feedUseCase)

func WithDropPublisher(p *DropPublisher) Option {
	return func(uc *feedUseCase) { uc.drops = p }
}

func WithMediaSigner(s MediaSigner, ttl time.Duration) Option {
	return func(uc *feedUseCase) {
		uc.signer = s
		uc.mediaTTL = ttl
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(uc *feedUseCase) { uc.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(uc *feedUseCase) { uc.now = now }
}

type feedUseCase struct {
	repos     Repositories
	cfg       config.FeedConfig
	drops     *DropPublisher
	signer    MediaSigner
	mediaTTL  time.Duration
	metrics   *metrics.Collector
	logger    *logger.Logger
	now       func() time.Time
	scorer    ranking.Scorer
	equalizer ranking.Equalizer
	gate      ranking.AgeGate
	policy    ranking.RepostPolicy
}

func NewFeedUseCase(repos Repositories, cfg config.FeedConfig, log *logger.Logger, opts ...Option) FeedUseCase {
	uc := &feedUseCase{
		repos:     repos,
		cfg:       cfg,
		logger:    log,
		now:       time.Now,
		scorer:    ranking.NewScorer(cfg.ScoreGravity),
		equalizer: ranking.NewEqualizer(cfg.FollowedDamping),
		gate:      ranking.AgeGate{MinimumAge: cfg.MinimumAge},
		policy:    ranking.RepostPolicy{AllowChainReposts: cfg.AllowChainReposts},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *feedUseCase) GetFeed(ctx context.Context, req FeedRequest) (*entity.FeedPage, error) {
	q, err := req.validate(uc.cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	log := uc.logger.With(logger.Fields{"mode": string(q.mode), "viewer": q.viewerID})
	uc.publishOverdue(ctx, log)

	page, err := uc.compose(ctx, q)
	if err != nil {
		err = timeoutError(err)
		if !errors.Is(err, ErrUnauthenticated) {
			log.Error("Failed to compose %s feed: %v", q.mode, err)
		}
		uc.metrics.FeedPage(string(q.mode), "error", 0)
		return nil, err
	}

	uc.metrics.FeedPage(string(q.mode), "ok", len(page.Items))
	return page, nil
}

// publishOverdue runs the drop publisher as a best-effort step of the read.
func (uc *feedUseCase) publishOverdue(ctx context.Context, log *logger.Logger) {
	if uc.drops == nil {
		return
	}
	if _, err := uc.drops.PublishOverdue(ctx, uc.now()); err != nil {
		log.Warn("Opportunistic drop publish failed: %v", err)
	}
}

func (uc *feedUseCase) compose(ctx context.Context, q feedQuery) (*entity.FeedPage, error) {
	vc, err := uc.loadViewerContext(ctx, q.viewerID, q.mode == entity.ModeDiscovery)
	if err != nil {
		return nil, err
	}

	switch q.mode {
	case entity.ModeSaved:
		if vc.viewer == nil {
			return nil, fmt.Errorf("saved feed: %w", ErrUnauthenticated)
		}
		return uc.savedFeed(ctx, vc, q)
	case entity.ModeFollowing:
		if vc.viewer == nil {
			return nil, fmt.Errorf("following feed: %w", ErrUnauthenticated)
		}
		return uc.followingFeed(ctx, vc, q)
	case entity.ModeProfile:
		return uc.profileFeed(ctx, vc, q)
	default:
		return uc.discoveryFeed(ctx, vc, q)
	}
}

func (uc *feedUseCase) discoveryFeed(ctx context.Context, vc *viewerContext, q feedQuery) (*entity.FeedPage, error) {
	streams := []stream{uc.publicPosts(vc.viewerID())}
	if len(vc.following) > 0 {
		streams = append(streams, uc.repostsBy(vc.following))
	}

	cands, next, err := collect(ctx, collectParams{
		streams:    streams,
		filter:     uc.socialFilter(vc, q.mode, vc.following),
		from:       q.cursor,
		limit:      q.limit,
		oversample: uc.cfg.DiscoveryOversample,
		maxRounds:  uc.cfg.MaxRounds,
		query:      persistent.PageQuery{Kind: q.kind},
	})
	if err != nil {
		return nil, err
	}

	for i := range cands {
		cands[i].Score = uc.discoveryScore(vc, cands[i])
	}
	posts, reposts := compose.Split(cands)
	items := uc.render(vc, compose.Rank(posts, reposts))
	items = ranking.Diversify(items, uc.cfg.DiversityMaxRun)

	return newPage(items, next, ""), nil
}

// discoveryScore is the trending score, boosted for reposts and damped for
// authors the viewer already follows.
func (uc *feedUseCase) discoveryScore(vc *viewerContext, c compose.Candidate) float64 {
	score := uc.scorer.Score(c.Post, vc.now)
	if c.Origin == compose.OriginRepost {
		score *= uc.cfg.RepostBoost
	}
	return uc.equalizer.Adjust(score, vc.rel.Follows(c.Post.AuthorID))
}

func (uc *feedUseCase) followingFeed(ctx context.Context, vc *viewerContext, q feedQuery) (*entity.FeedPage, error) {
	if len(vc.following) == 0 {
		return newPage(nil, nil, entity.EmptyReasonNoFollows), nil
	}

	cands, next, err := collect(ctx, collectParams{
		streams:    []stream{uc.postsBy(vc.following), uc.repostsBy(vc.following)},
		filter:     uc.socialFilter(vc, q.mode, vc.following),
		from:       q.cursor,
		limit:      q.limit,
		oversample: uc.cfg.FollowingOversample,
		maxRounds:  uc.cfg.MaxRounds,
		query:      persistent.PageQuery{Kind: q.kind},
	})
	if err != nil {
		return nil, err
	}

	return newPage(uc.render(vc, cands), next, ""), nil
}

func (uc *feedUseCase) profileFeed(ctx context.Context, vc *viewerContext, q feedQuery) (*entity.FeedPage, error) {
	cands, next, err := collect(ctx, collectParams{
		streams:    []stream{uc.postsBy([]string{q.target})},
		filter:     uc.postFilter(vc),
		from:       q.cursor,
		limit:      q.limit,
		oversample: uc.cfg.FollowingOversample,
		maxRounds:  uc.cfg.MaxRounds,
		query:      persistent.PageQuery{Kind: q.kind},
	})
	if err != nil {
		return nil, err
	}

	items := uc.render(vc, cands)
	if err := uc.attachViewerReposts(ctx, vc, items); err != nil {
		return nil, err
	}
	return newPage(items, next, ""), nil
}

func (uc *feedUseCase) savedFeed(ctx context.Context, vc *viewerContext, q feedQuery) (*entity.FeedPage, error) {
	cands, next, err := collect(ctx, collectParams{
		streams:    []stream{uc.savedBy(vc.viewer.ID)},
		filter:     uc.postFilter(vc),
		from:       q.cursor,
		limit:      q.limit,
		oversample: uc.cfg.FollowingOversample,
		maxRounds:  uc.cfg.MaxRounds,
		query:      persistent.PageQuery{Kind: q.kind},
	})
	if err != nil {
		return nil, err
	}

	reason := ""
	if len(cands) == 0 && q.cursor == nil && next == nil {
		reason = entity.EmptyReasonNoSaved
	}
	return newPage(uc.render(vc, cands), next, reason), nil
}

func newPage(items []entity.FeedItem, next *compose.Cursor, reason string) *entity.FeedPage {
	page := &entity.FeedPage{Items: items, EmptyReason: reason}
	if page.Items == nil {
		page.Items = []entity.FeedItem{}
	}
	if next != nil {
		page.NextCursor = next.Encode()
	}
	return page
}
