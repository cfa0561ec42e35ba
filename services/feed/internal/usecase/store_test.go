package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"scroll-feed/services/feed/internal/compose"
	"scroll-feed/services/feed/internal/entity"
	"scroll-feed/services/feed/internal/repo/persistent"
)

// memStore implements every repository the feed engine consumes on top of
// plain maps, with the same keyset semantics as the SQL repositories.
type memStore struct {
	mu        sync.Mutex
	accounts  map[string]*account
	posts     map[string]*entity.Post
	reposts   []*entity.Repost
	follows   map[string][]string
	audiences map[string]*entity.Audience
	groups    map[string][]string
	prefs     map[string]entity.ContentPreferences
	saved     map[string][]entity.SavedRef
	calls     int
}

type account struct {
	author *entity.Author
	viewer *entity.Viewer
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  map[string]*account{},
		posts:     map[string]*entity.Post{},
		follows:   map[string][]string{},
		audiences: map[string]*entity.Audience{},
		groups:    map[string][]string{},
		prefs:     map[string]entity.ContentPreferences{},
		saved:     map[string][]entity.SavedRef{},
	}
}

func (s *memStore) repositories() Repositories {
	return Repositories{Posts: s, Reposts: s, Follows: s, Audiences: s, Viewers: s, Saved: s}
}

func (s *memStore) addUser(id string) *account {
	a := &account{
		author: &entity.Author{ID: id, Username: id, AllowReposts: true},
		viewer: &entity.Viewer{ID: id, Role: entity.RoleViewer},
	}
	s.accounts[id] = a
	return a
}

func (s *memStore) follow(follower string, followed ...string) {
	s.follows[follower] = append(s.follows[follower], followed...)
}

func (s *memStore) addPost(p *entity.Post) *entity.Post {
	if p.Status == "" {
		p.Status = entity.StatusPublished
	}
	if p.Visibility == "" {
		p.Visibility = entity.VisibilityPublic
	}
	if p.Kind == "" {
		p.Kind = entity.KindImage
	}
	if p.Provenance == "" {
		p.Provenance = entity.ProvenanceOriginal
	}
	s.posts[p.ID] = p
	return p
}

func (s *memStore) addRepost(id, reposter, postID string, at time.Time) *entity.Repost {
	r := &entity.Repost{ID: id, ReposterID: reposter, PostID: postID, Status: entity.RepostApproved, CreatedAt: at}
	s.reposts = append(s.reposts, r)
	return r
}

func (s *memStore) touch() {
	s.calls++
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// hydrate returns a copy of the stored post with its author's current state.
func (s *memStore) hydrate(p *entity.Post) *entity.Post {
	cp := *p
	if a, ok := s.accounts[p.AuthorID]; ok {
		author := *a.author
		cp.Author = &author
	}
	return &cp
}

func (s *memStore) published(id string) (*entity.Post, bool) {
	p, ok := s.posts[id]
	if !ok || p.Status != entity.StatusPublished {
		return nil, false
	}
	return p, true
}

func window[T any](items []T, key func(T) compose.Key, q persistent.PageQuery) []T {
	sort.SliceStable(items, func(i, j int) bool { return key(items[i]).Newer(key(items[j])) })
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q.Before != nil && !q.Before.Newer(key(it)) {
			continue
		}
		out = append(out, it)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out
}

func postKey(p *entity.Post) compose.Key { return compose.NewKey(p.CreatedAt, p.ID) }

func (s *memStore) listPosts(q persistent.PageQuery, keep func(*entity.Post) bool) []*entity.Post {
	var matched []*entity.Post
	for _, p := range s.posts {
		if p.Status != entity.StatusPublished || (q.Kind != "" && p.Kind != q.Kind) || !keep(p) {
			continue
		}
		matched = append(matched, s.hydrate(p))
	}
	return window(matched, postKey, q)
}

func (s *memStore) ListPublic(ctx context.Context, excludeAuthorID string, q persistent.PageQuery) ([]*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.listPosts(q, func(p *entity.Post) bool {
		return p.Visibility == entity.VisibilityPublic && p.AuthorID != excludeAuthorID
	}), nil
}

func (s *memStore) ListByAuthors(ctx context.Context, authorIDs []string, q persistent.PageQuery) ([]*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	set := toSet(authorIDs)
	return s.listPosts(q, func(p *entity.Post) bool { _, ok := set[p.AuthorID]; return ok }), nil
}

func (s *memStore) ListByIDs(ctx context.Context, ids []string) ([]*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	var out []*entity.Post
	for _, id := range ids {
		if p, ok := s.published(id); ok {
			out = append(out, s.hydrate(p))
		}
	}
	return out, nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return s.hydrate(p), nil
}

func (s *memStore) PublishOverdue(ctx context.Context, now time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	var ids []string
	for _, p := range s.posts {
		if p.Status == entity.StatusScheduled && p.ScheduledAt != nil && !p.ScheduledAt.After(now) {
			p.Status = entity.StatusPublished
			at := now
			p.PublishedAt = &at
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (s *memStore) approvedRepost(r *entity.Repost, kind entity.ContentKind) bool {
	if r.Status != entity.RepostApproved {
		return false
	}
	p, ok := s.published(r.PostID)
	return ok && (kind == "" || p.Kind == kind)
}

func (s *memStore) withReposter(r *entity.Repost) *entity.Repost {
	cp := *r
	if a, ok := s.accounts[r.ReposterID]; ok {
		author := *a.author
		cp.Reposter = &author
	}
	return &cp
}

func (s *memStore) ListApprovedByReposters(ctx context.Context, reposterIDs []string, q persistent.PageQuery) ([]*entity.Repost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	set := toSet(reposterIDs)
	var matched []*entity.Repost
	for _, r := range s.reposts {
		if _, ok := set[r.ReposterID]; ok && s.approvedRepost(r, q.Kind) {
			matched = append(matched, s.withReposter(r))
		}
	}
	return window(matched, func(r *entity.Repost) compose.Key { return compose.NewKey(r.CreatedAt, r.ID) }, q), nil
}

func (s *memStore) ListApprovedForPosts(ctx context.Context, postIDs, reposterIDs []string) ([]*entity.Repost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	posts, reposters := toSet(postIDs), toSet(reposterIDs)
	var out []*entity.Repost
	for _, r := range s.reposts {
		_, okPost := posts[r.PostID]
		_, okReposter := reposters[r.ReposterID]
		if okPost && okReposter && s.approvedRepost(r, "") {
			out = append(out, s.withReposter(r))
		}
	}
	return out, nil
}

func (s *memStore) ListViewerReposts(ctx context.Context, viewerID string, postIDs []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	set := toSet(postIDs)
	out := map[string]string{}
	for _, r := range s.reposts {
		if _, ok := set[r.PostID]; ok && r.ReposterID == viewerID {
			out[r.PostID] = r.ID
		}
	}
	return out, nil
}

func (s *memStore) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return append([]string(nil), s.follows[followerID]...), nil
}

func (s *memStore) ListByPostIDs(ctx context.Context, postIDs []string) (map[string]*entity.Audience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	out := map[string]*entity.Audience{}
	for _, id := range postIDs {
		if a, ok := s.audiences[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *memStore) ListGroupsOf(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.groups[userID], nil
}

func (s *memStore) GetViewer(ctx context.Context, userID string) (*entity.Viewer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	a, ok := s.accounts[userID]
	if !ok {
		return nil, nil
	}
	v := *a.viewer
	return &v, nil
}

func (s *memStore) GetPreferences(ctx context.Context, userID string) (entity.ContentPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if p, ok := s.prefs[userID]; ok {
		return p, nil
	}
	return entity.DefaultPreferences(), nil
}

func (s *memStore) ListSaved(ctx context.Context, userID string, q persistent.PageQuery) ([]entity.SavedRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	var matched []entity.SavedRef
	for _, ref := range s.saved[userID] {
		if q.Kind != "" {
			if p, ok := s.posts[ref.PostID]; !ok || p.Kind != q.Kind {
				continue
			}
		}
		matched = append(matched, ref)
	}
	return window(matched, func(r entity.SavedRef) compose.Key { return compose.NewKey(r.SavedAt, r.PostID) }, q), nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
