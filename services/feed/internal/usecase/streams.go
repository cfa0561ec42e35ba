package usecase

import (
	"context"

	"scroll-feed/services/feed/internal/compose"
	"scroll-feed/services/feed/internal/entity"
	"scroll-feed/services/feed/internal/repo/persistent"
)

func (uc *feedUseCase) publicPosts(excludeAuthorID string) stream {
	return stream{
		name: "public-posts",
		fetch: func(ctx context.Context, q persistent.PageQuery) ([]compose.Candidate, error) {
			posts, err := uc.repos.Posts.ListPublic(ctx, excludeAuthorID, q)
			if err != nil {
				return nil, err
			}
			return postCandidates(posts), nil
		},
	}
}

func (uc *feedUseCase) postsBy(authorIDs []string) stream {
	return stream{
		name: "author-posts",
		fetch: func(ctx context.Context, q persistent.PageQuery) ([]compose.Candidate, error) {
			posts, err := uc.repos.Posts.ListByAuthors(ctx, authorIDs, q)
			if err != nil {
				return nil, err
			}
			return postCandidates(posts), nil
		},
	}
}

// repostsBy joins each repost with its post. A post that vanished between the
// two queries leaves an orphan candidate behind for the filter to drop.
func (uc *feedUseCase) repostsBy(reposterIDs []string) stream {
	return stream{
		name: "reposts",
		fetch: func(ctx context.Context, q persistent.PageQuery) ([]compose.Candidate, error) {
			reposts, err := uc.repos.Reposts.ListApprovedByReposters(ctx, reposterIDs, q)
			if err != nil {
				return nil, err
			}

			ids := make([]string, 0, len(reposts))
			for _, r := range reposts {
				ids = append(ids, r.PostID)
			}
			posts, err := uc.postsByID(ctx, ids)
			if err != nil {
				return nil, err
			}

			cands := make([]compose.Candidate, len(reposts))
			for i, r := range reposts {
				cands[i] = compose.RepostCandidate(r, posts[r.PostID])
			}
			return cands, nil
		},
	}
}

// savedBy orders saved posts by saved time. Saved rows whose post is gone or
// unpublished become orphan candidates.
func (uc *feedUseCase) savedBy(userID string) stream {
	return stream{
		name: "saved",
		fetch: func(ctx context.Context, q persistent.PageQuery) ([]compose.Candidate, error) {
			refs, err := uc.repos.Saved.ListSaved(ctx, userID, q)
			if err != nil {
				return nil, err
			}

			ids := make([]string, len(refs))
			for i, ref := range refs {
				ids[i] = ref.PostID
			}
			posts, err := uc.postsByID(ctx, ids)
			if err != nil {
				return nil, err
			}

			cands := make([]compose.Candidate, len(refs))
			for i, ref := range refs {
				if post, ok := posts[ref.PostID]; ok {
					cands[i] = compose.SavedCandidate(post, ref.SavedAt)
					continue
				}
				cands[i] = compose.Candidate{Origin: compose.OriginPost, Key: compose.NewKey(ref.SavedAt, ref.PostID)}
			}
			return cands, nil
		},
	}
}

func (uc *feedUseCase) postsByID(ctx context.Context, ids []string) (map[string]*entity.Post, error) {
	byID := make(map[string]*entity.Post, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	posts, err := uc.repos.Posts.ListByIDs(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		byID[p.ID] = p
	}
	return byID, nil
}

func postCandidates(posts []*entity.Post) []compose.Candidate {
	cands := make([]compose.Candidate, len(posts))
	for i, p := range posts {
		cands[i] = compose.PostCandidate(p)
	}
	return cands
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
