package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"scroll-feed/services/feed/internal/entity"
	"scroll-feed/services/feed/internal/ranking"
)

// viewerContext is the per-request scratch state of one composition. It is
// never shared between requests.
type viewerContext struct {
	viewer       *entity.Viewer
	following    []string
	rel          ranking.Relations
	prefs        entity.ContentPreferences
	audiences    map[string]*entity.Audience
	groupsLoaded bool
	now          time.Time
}

// loadViewerContext resolves the viewer and the graph data every mode needs.
// An unknown viewer id resolves to the anonymous viewer.
func (uc *feedUseCase) loadViewerContext(ctx context.Context, viewerID string, withPrefs bool) (*viewerContext, error) {
	vc := &viewerContext{
		rel:       ranking.NewRelations(nil, nil),
		prefs:     entity.DefaultPreferences(),
		audiences: make(map[string]*entity.Audience),
		now:       uc.now(),
	}
	if viewerID == "" {
		return vc, nil
	}

	viewer, err := uc.repos.Viewers.GetViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return vc, nil
	}
	vc.viewer = viewer

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		following, err := uc.repos.Follows.ListFollowing(gctx, viewer.ID)
		if err != nil {
			return err
		}
		vc.following = without(following, viewer.ID)
		return nil
	})
	if withPrefs {
		g.Go(func() error {
			prefs, err := uc.repos.Viewers.GetPreferences(gctx, viewer.ID)
			if err != nil {
				return err
			}
			vc.prefs = prefs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vc.rel = ranking.NewRelations(vc.following, nil)
	return vc, nil
}

func (vc *viewerContext) viewerID() string {
	if vc.viewer == nil {
		return ""
	}
	return vc.viewer.ID
}

// loadAudiences fetches audience lists for the private-with-audience posts
// among posts, and the viewer's groups the first time one shows up.
func (uc *feedUseCase) loadAudiences(ctx context.Context, vc *viewerContext, posts []*entity.Post) error {
	if vc.viewer == nil {
		return nil
	}

	var missing []string
	for _, p := range posts {
		if p == nil || p.Visibility != entity.VisibilityAudience || p.AuthorID == vc.viewer.ID {
			continue
		}
		if _, ok := vc.audiences[p.ID]; !ok {
			missing = append(missing, p.ID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	audiences, err := uc.repos.Audiences.ListByPostIDs(ctx, missing)
	if err != nil {
		return err
	}
	for _, id := range missing {
		vc.audiences[id] = audiences[id]
	}

	if !vc.groupsLoaded {
		groups, err := uc.repos.Audiences.ListGroupsOf(ctx, vc.viewer.ID)
		if err != nil {
			return err
		}
		vc.rel = ranking.NewRelations(vc.following, groups)
		vc.groupsLoaded = true
	}
	return nil
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
