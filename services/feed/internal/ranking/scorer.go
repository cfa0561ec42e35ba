package ranking

import (
	"math"
	"time"

	"scroll-feed/services/feed/internal/entity"
)

type Weights struct {
	Likes  float64
	Saves  float64
	Shares float64
	Views  float64
}

// Scorer computes a decaying popularity score:
//
//	(1 + likes*wl + saves*ws + shares*wsh + views*wv) / (ageHours + offset)^gravity
//
// The leading 1 keeps fresh posts without engagement above zero.
type Scorer struct {
	Weights        Weights
	Gravity        float64
	AgeOffsetHours float64
}

func DefaultScorer() Scorer {
	return Scorer{
		Weights:        Weights{Likes: 1, Saves: 2, Shares: 3, Views: 0.05},
		Gravity:        1.8,
		AgeOffsetHours: 2,
	}
}

func NewScorer(gravity float64) Scorer {
	s := DefaultScorer()
	if gravity > 0 {
		s.Gravity = gravity
	}
	return s
}

func (s Scorer) Score(post *entity.Post, now time.Time) float64 {
	if post == nil {
		return 0
	}
	e := post.Engagement
	points := 1 +
		float64(nonNegative(e.Likes))*s.Weights.Likes +
		float64(nonNegative(e.Saves))*s.Weights.Saves +
		float64(nonNegative(e.Shares))*s.Weights.Shares +
		float64(nonNegative(e.Views))*s.Weights.Views

	ageHours := now.Sub(post.CreatedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return points / math.Pow(ageHours+s.AgeOffsetHours, s.Gravity)
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

const DefaultFollowedDamping = 0.7

// Equalizer damps discovery scores of authors the viewer already follows.
type Equalizer struct {
	Damping float64
}

// NewEqualizer falls back to DefaultFollowedDamping unless 0 < damping < 1.
func NewEqualizer(damping float64) Equalizer {
	if damping <= 0 || damping >= 1 {
		damping = DefaultFollowedDamping
	}
	return Equalizer{Damping: damping}
}

func (e Equalizer) Adjust(score float64, followedByViewer bool) float64 {
	if !followedByViewer {
		return score
	}
	return score * e.Damping
}
