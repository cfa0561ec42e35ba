package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"scroll-feed/services/feed/internal/entity"
)

func intPtr(v int) *int { return &v }

func post(id, author string, vis entity.Visibility) *entity.Post {
	return &entity.Post{
		ID:         id,
		AuthorID:   author,
		Author:     &entity.Author{ID: author, AllowReposts: true},
		Visibility: vis,
		Status:     entity.StatusPublished,
		Provenance: entity.ProvenanceOriginal,
	}
}

func TestAdmit(t *testing.T) {
	viewer := &entity.Viewer{ID: "v", Role: entity.RoleViewer}
	admin := &entity.Viewer{ID: "root", Role: entity.RoleAdmin}
	follows := NewRelations([]string{"a"}, []string{"g1"})
	none := NewRelations(nil, nil)

	tests := []struct {
		name     string
		viewer   *entity.Viewer
		rel      Relations
		post     *entity.Post
		audience *entity.Audience
		want     bool
	}{
		{"public anonymous", nil, none, post("p", "a", entity.VisibilityPublic), nil, true},
		{"followers anonymous", nil, none, post("p", "a", entity.VisibilityFollowers), nil, false},
		{"followers follower", viewer, follows, post("p", "a", entity.VisibilityFollowers), nil, true},
		{"followers stranger", viewer, none, post("p", "a", entity.VisibilityFollowers), nil, false},
		{"followers author", &entity.Viewer{ID: "a"}, none, post("p", "a", entity.VisibilityFollowers), nil, true},
		{"audience by user", viewer, none, post("p", "a", entity.VisibilityAudience), entity.NewAudience("p", []string{"v"}, nil), true},
		{"audience by group", viewer, follows, post("p", "a", entity.VisibilityAudience), entity.NewAudience("p", nil, []string{"g1"}), true},
		{"audience excluded follower", viewer, follows, post("p", "a", entity.VisibilityAudience), entity.NewAudience("p", []string{"x"}, []string{"g2"}), false},
		{"audience missing list", viewer, follows, post("p", "a", entity.VisibilityAudience), nil, false},
		{"audience anonymous", nil, none, post("p", "a", entity.VisibilityAudience), entity.NewAudience("p", []string{"v"}, nil), false},
		{"admin sees audience", admin, none, post("p", "a", entity.VisibilityAudience), nil, true},
		{"nil post", viewer, follows, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Admit(tt.viewer, tt.rel, tt.post, tt.audience))
		})
	}
}

func TestAdmitRepost(t *testing.T) {
	viewer := &entity.Viewer{ID: "v"}
	approved := &entity.Repost{ID: "r", ReposterID: "b", Reposter: &entity.Author{ID: "b"}, PostID: "p", Status: entity.RepostApproved}

	t.Run("approved public repost", func(t *testing.T) {
		assert.True(t, AdmitRepost(viewer, NewRelations([]string{"b"}, nil), approved, post("p", "a", entity.VisibilityPublic), nil))
	})

	t.Run("pending repost", func(t *testing.T) {
		pending := *approved
		pending.Status = entity.RepostPending
		assert.False(t, AdmitRepost(viewer, NewRelations([]string{"b"}, nil), &pending, post("p", "a", entity.VisibilityPublic), nil))
	})

	t.Run("underlying scheduled", func(t *testing.T) {
		p := post("p", "a", entity.VisibilityPublic)
		p.Status = entity.StatusScheduled
		assert.False(t, AdmitRepost(viewer, NewRelations([]string{"b"}, nil), approved, p, nil))
	})

	t.Run("underlying followers-only seen through the reposter", func(t *testing.T) {
		p := post("p", "a", entity.VisibilityFollowers)
		assert.True(t, AdmitRepost(viewer, NewRelations([]string{"b"}, nil), approved, p, nil))
		assert.True(t, AdmitRepost(&entity.Viewer{ID: "b"}, NewRelations(nil, nil), approved, p, nil))
		assert.False(t, AdmitRepost(viewer, NewRelations([]string{"a"}, nil), approved, p, nil), "following only the author is not the reposter's context")
		assert.False(t, AdmitRepost(nil, NewRelations(nil, nil), approved, p, nil))
	})

	t.Run("underlying audience post still needs the audience", func(t *testing.T) {
		p := post("p", "a", entity.VisibilityAudience)
		assert.False(t, AdmitRepost(viewer, NewRelations([]string{"b"}, nil), approved, p, entity.NewAudience("p", []string{"b"}, nil)))
		assert.True(t, AdmitRepost(viewer, NewRelations([]string{"b"}, nil), approved, p, entity.NewAudience("p", []string{"v"}, nil)))
	})

	t.Run("private reposter hidden from non-follower", func(t *testing.T) {
		private := *approved
		private.Reposter = &entity.Author{ID: "b", IsPrivate: true}
		assert.False(t, AdmitRepost(viewer, NewRelations(nil, nil), &private, post("p", "a", entity.VisibilityPublic), nil))
		assert.True(t, AdmitRepost(viewer, NewRelations([]string{"b"}, nil), &private, post("p", "a", entity.VisibilityPublic), nil))
	})

	t.Run("revoked reposts keep approved reposts visible", func(t *testing.T) {
		p := post("p", "a", entity.VisibilityPublic)
		p.Author.AllowReposts = false
		assert.True(t, AdmitRepost(viewer, NewRelations([]string{"b"}, nil), approved, p, nil))
	})
}

func TestAgeGate(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	gate := AgeGate{MinimumAge: 18}
	sensitive := post("p", "a", entity.VisibilityPublic)
	sensitive.Sensitive = true

	assert.False(t, gate.Withhold(nil, sensitive, now), "anonymous viewers have no known age")
	assert.False(t, gate.Withhold(&entity.Viewer{ID: "v"}, sensitive, now), "missing birth year is unrestricted")
	assert.True(t, gate.Withhold(&entity.Viewer{ID: "v", BirthYear: intPtr(2012)}, sensitive, now))
	assert.False(t, gate.Withhold(&entity.Viewer{ID: "v", BirthYear: intPtr(2008)}, sensitive, now))
	assert.False(t, gate.Withhold(&entity.Viewer{ID: "a", BirthYear: intPtr(2012)}, sensitive, now), "authors see their own posts")
	assert.False(t, gate.Withhold(&entity.Viewer{ID: "v", BirthYear: intPtr(2012)}, post("q", "a", entity.VisibilityPublic), now))
}
