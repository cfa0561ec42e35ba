package main

import (
	"flag"
	"fmt"
	"time"

	"scroll-feed/pkg/config"
	"scroll-feed/pkg/database"
	"scroll-feed/pkg/logger"
	"scroll-feed/pkg/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	email     string
	username  string
	display   string
	birthYear int
	private   bool
	reposts   bool
}

type seedPost struct {
	author     string
	kind       string
	caption    string
	visibility models.PostVisibility
	provenance string
	sensitive  bool
	sponsored  bool
	likes      int64
	age        time.Duration
	// scheduled posts go live this long after seeding
	dropIn time.Duration
}

func main() {
	var password string
	flag.StringVar(&password, "password", "password123", "password for every demo account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, password, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, password string, log *logger.Logger) error {
	users := []seedUser{
		{"alice@test.com", "alice", "Alice", 1990, false, true},
		{"bob@test.com", "bob", "Bob", 1985, false, true},
		{"charlie@test.com", "charlie", "Charlie", 1999, true, true},
		{"diana@test.com", "diana", "Diana", 2011, false, true},
		{"eve@test.com", "eve", "Eve", 1994, false, false},
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ids := make(map[string]string, len(users))
	for _, u := range users {
		var existing models.User
		if err := db.Where("username = ?", u.username).First(&existing).Error; err == nil {
			log.Info("User %s already exists, skipping", u.username)
			ids[u.username] = existing.ID
			continue
		}

		birthYear := u.birthYear
		user := &models.User{
			Email:        u.email,
			Username:     u.username,
			DisplayName:  u.display,
			Password:     string(hashedPassword),
			Role:         models.RoleCreator,
			BirthYear:    &birthYear,
			IsPrivate:    u.private,
			AllowReposts: u.reposts,
			IsActive:     true,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.username, err)
		}
		log.Info("Created user: %s (%s)", user.Username, user.Email)
		ids[u.username] = user.ID
	}

	follows := map[string][]string{
		"alice":   {"bob", "charlie", "eve"},
		"bob":     {"alice"},
		"charlie": {"alice", "bob"},
		"diana":   {"alice", "eve"},
	}
	for follower, followed := range follows {
		for _, f := range followed {
			follow := &models.Follow{FollowerID: ids[follower], FollowedID: ids[f]}
			if err := db.Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
				FirstOrCreate(follow).Error; err != nil {
				return fmt.Errorf("failed to create follow %s -> %s: %w", follower, f, err)
			}
		}
	}

	closeFriends := uuid.New().String()
	for _, member := range []string{"alice", "diana"} {
		if err := db.Create(&models.GroupMember{GroupID: closeFriends, UserID: ids[member]}).Error; err != nil {
			return fmt.Errorf("failed to add %s to group: %w", member, err)
		}
	}

	now := time.Now().UTC()
	posts := []seedPost{
		{author: "bob", kind: "image", caption: "Morning light", visibility: models.VisibilityPublic, likes: 42, age: 2 * time.Hour},
		{author: "bob", kind: "video", caption: "Behind the scenes", visibility: models.VisibilityFollowers, likes: 7, age: 5 * time.Hour},
		{author: "charlie", kind: "text", caption: "Only for close friends", visibility: models.VisibilityAudience, age: 90 * time.Minute},
		{author: "eve", kind: "panoramic", caption: "Ridge at dusk", visibility: models.VisibilityPublic, likes: 120, age: 26 * time.Hour},
		{author: "eve", kind: "image", caption: "Generated skyline", visibility: models.VisibilityPublic, provenance: "ai-generated", likes: 15, age: 3 * time.Hour},
		{author: "eve", kind: "image", caption: "Graphic content", visibility: models.VisibilityPublic, sensitive: true, likes: 3, age: 4 * time.Hour},
		{author: "alice", kind: "audio", caption: "New track", visibility: models.VisibilityPublic, sponsored: true, likes: 64, age: 30 * time.Minute},
		{author: "alice", kind: "video", caption: "Premiere tonight", visibility: models.VisibilityPublic, dropIn: 2 * time.Minute},
	}

	postIDs := make([]string, len(posts))
	for i, p := range posts {
		provenance := p.provenance
		if provenance == "" {
			provenance = "original"
		}
		post := &models.Post{
			AuthorID:   ids[p.author],
			Kind:       p.kind,
			Caption:    p.caption,
			MediaKey:   fmt.Sprintf("posts/%s/seed_%d", ids[p.author], i),
			Visibility: p.visibility,
			Status:     models.StatusPublished,
			Provenance: provenance,
			Sponsored:  p.sponsored,
			Sensitive:  p.sensitive,
			Likes:      p.likes,
			CreatedAt:  now.Add(-p.age),
		}
		if p.dropIn > 0 {
			at := now.Add(p.dropIn)
			post.Status = models.StatusScheduled
			post.ScheduledAt = &at
			post.CreatedAt = now
		} else {
			at := post.CreatedAt
			post.PublishedAt = &at
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post %q: %w", p.caption, err)
		}
		postIDs[i] = post.ID

		if p.visibility == models.VisibilityAudience {
			if err := db.Create(&models.PostAudienceUser{PostID: post.ID, UserID: ids["bob"]}).Error; err != nil {
				return fmt.Errorf("failed to add audience user: %w", err)
			}
			if err := db.Create(&models.PostAudienceGroup{PostID: post.ID, GroupID: closeFriends}).Error; err != nil {
				return fmt.Errorf("failed to add audience group: %w", err)
			}
		}
	}
	log.Info("Created %d posts", len(postIDs))

	reposts := []struct {
		reposter string
		post     int
		status   models.RepostStatus
		age      time.Duration
	}{
		{"alice", 3, models.RepostApproved, 20 * time.Hour},
		{"charlie", 0, models.RepostApproved, time.Hour},
		{"bob", 3, models.RepostApproved, 10 * time.Hour},
		{"alice", 4, models.RepostPending, 2 * time.Hour},
		{"eve", 3, models.RepostApproved, 25 * time.Hour},
	}
	for _, r := range reposts {
		repost := &models.Repost{
			ReposterID: ids[r.reposter],
			PostID:     postIDs[r.post],
			Status:     r.status,
			CreatedAt:  now.Add(-r.age),
		}
		if err := db.Create(repost).Error; err != nil {
			return fmt.Errorf("failed to create repost by %s: %w", r.reposter, err)
		}
	}
	log.Info("Created %d reposts", len(reposts))

	for i, post := range []int{0, 3, 2} {
		saved := &models.SavedPost{UserID: ids["alice"], PostID: postIDs[post], CreatedAt: now.Add(-time.Duration(i) * time.Hour)}
		if err := db.Create(saved).Error; err != nil {
			return fmt.Errorf("failed to save post: %w", err)
		}
	}

	prefs := &models.ContentPreference{UserID: ids["bob"], HideAIGenerated: true, HideSensitive: true, ApplyToDiscovery: true}
	if err := db.Save(prefs).Error; err != nil {
		return fmt.Errorf("failed to store preferences: %w", err)
	}

	return nil
}
