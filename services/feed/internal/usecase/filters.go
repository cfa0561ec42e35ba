package usecase

import (
	"context"

	"scroll-feed/services/feed/internal/compose"
	"scroll-feed/services/feed/internal/entity"
	"scroll-feed/services/feed/internal/ranking"
)

const (
	dropOrphan     = "orphan"
	dropVisibility = "visibility"
	dropAge        = "age"
	dropPreference = "preference"
	dropDuplicate  = "duplicate"
)

type dropCounter map[string]int

func (uc *feedUseCase) flushDrops(drops dropCounter) {
	for reason, n := range drops {
		uc.metrics.CandidatesDropped(reason, n)
	}
}

// postFilter admits plain posts under the visibility rules and the age gate.
// Profile and saved feeds use it.
func (uc *feedUseCase) postFilter(vc *viewerContext) filterFunc {
	return func(ctx context.Context, batch []compose.Candidate) ([]compose.Candidate, error) {
		drops := dropCounter{}
		defer uc.flushDrops(drops)

		live := withoutOrphans(batch, drops)
		if err := uc.loadAudiences(ctx, vc, postsOf(live)); err != nil {
			return nil, err
		}

		out := make([]compose.Candidate, 0, len(live))
		for _, c := range live {
			if !ranking.Admit(vc.viewer, vc.rel, c.Post, vc.audiences[c.Post.ID]) {
				drops[dropVisibility]++
				continue
			}
			if uc.gate.Withhold(vc.viewer, c.Post, vc.now) {
				drops[dropAge]++
				continue
			}
			out = append(out, c)
		}
		return out, nil
	}
}

// socialFilter handles the two-stream feeds. Beyond visibility, the age gate
// and (in discovery) content preferences, it keeps each post only at its
// representative: the newest eligible repost by one of reposterIDs, or the
// original post when there is none. That choice does not depend on where a
// page starts, so a post shows up once across a whole cursor chain.
func (uc *feedUseCase) socialFilter(vc *viewerContext, mode entity.Mode, reposterIDs []string) filterFunc {
	discovery := mode == entity.ModeDiscovery

	return func(ctx context.Context, batch []compose.Candidate) ([]compose.Candidate, error) {
		drops := dropCounter{}
		defer uc.flushDrops(drops)

		live := withoutOrphans(batch, drops)
		if err := uc.loadAudiences(ctx, vc, postsOf(live)); err != nil {
			return nil, err
		}

		admitted := make([]compose.Candidate, 0, len(live))
		for _, c := range live {
			if c.SelfRepost() {
				drops[dropDuplicate]++
				continue
			}

			audience := vc.audiences[c.Post.ID]
			visible := ranking.Admit(vc.viewer, vc.rel, c.Post, audience)
			if c.Origin == compose.OriginRepost {
				visible = ranking.AdmitRepost(vc.viewer, vc.rel, c.Repost, c.Post, audience)
			}
			if discovery && vc.viewer != nil && c.Post.AuthorID == vc.viewer.ID {
				visible = false
			}
			if !visible {
				drops[dropVisibility]++
				continue
			}

			if uc.gate.Withhold(vc.viewer, c.Post, vc.now) {
				drops[dropAge]++
				continue
			}
			if discovery && ranking.Exclude(c.Post, vc.prefs) {
				drops[dropPreference]++
				continue
			}
			admitted = append(admitted, c)
		}

		reps, err := uc.representatives(ctx, vc, admitted, reposterIDs)
		if err != nil {
			return nil, err
		}

		kept := make([]compose.Candidate, 0, len(admitted))
		for _, c := range admitted {
			if !reps.Keep(c) {
				drops[dropDuplicate]++
				continue
			}
			kept = append(kept, c)
		}

		out := compose.Dedup(kept)
		drops[dropDuplicate] += len(kept) - len(out)
		return out, nil
	}
}

// representatives looks up, for every post in cands, the newest approved
// repost by reposterIDs that the viewer may see.
func (uc *feedUseCase) representatives(ctx context.Context, vc *viewerContext, cands []compose.Candidate, reposterIDs []string) (compose.Representatives, error) {
	reps := compose.Representatives{}
	if len(cands) == 0 || len(reposterIDs) == 0 {
		return reps, nil
	}

	posts := make(map[string]*entity.Post, len(cands))
	ids := make([]string, 0, len(cands))
	for _, c := range cands {
		if _, ok := posts[c.Post.ID]; !ok {
			posts[c.Post.ID] = c.Post
			ids = append(ids, c.Post.ID)
		}
	}

	reposts, err := uc.repos.Reposts.ListApprovedForPosts(ctx, ids, reposterIDs)
	if err != nil {
		return nil, err
	}

	for _, r := range reposts {
		post := posts[r.PostID]
		if post == nil || r.ReposterID == post.AuthorID {
			continue
		}
		if !ranking.AdmitRepost(vc.viewer, vc.rel, r, post, vc.audiences[post.ID]) {
			continue
		}
		reps.Note(post.ID, compose.NewKey(r.CreatedAt, r.ID))
	}
	return reps, nil
}

func withoutOrphans(batch []compose.Candidate, drops dropCounter) []compose.Candidate {
	out := make([]compose.Candidate, 0, len(batch))
	for _, c := range batch {
		if c.Post == nil {
			drops[dropOrphan]++
			continue
		}
		out = append(out, c)
	}
	return out
}

func postsOf(cands []compose.Candidate) []*entity.Post {
	posts := make([]*entity.Post, len(cands))
	for i, c := range cands {
		posts[i] = c.Post
	}
	return posts
}
