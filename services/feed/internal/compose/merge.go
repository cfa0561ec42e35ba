package compose

import "sort"

// Order reports whether a belongs ahead of b.
type Order func(a, b Candidate) bool

// ByTime is the chronological order, newest first.
func ByTime(a, b Candidate) bool {
	if a.Key.Newer(b.Key) {
		return true
	}
	if b.Key.Newer(a.Key) {
		return false
	}
	return a.Origin < b.Origin
}

// ByScore is the ranked order; equal scores fall back to ByTime.
func ByScore(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return ByTime(a, b)
}

// Merge interleaves two lists that are each already sorted by before. On ties
// the element from a goes first.
func Merge[T any](a, b []T, before func(x, y T) bool) []T {
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if before(b[j], a[i]) {
			out = append(out, b[j])
			j++
			continue
		}
		out = append(out, a[i])
		i++
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// SortBy sorts in place and returns the slice.
func SortBy(cands []Candidate, order Order) []Candidate {
	sort.SliceStable(cands, func(i, j int) bool { return order(cands[i], cands[j]) })
	return cands
}

// Rank merges a post list and a repost list by score. Neither input needs to
// be sorted beforehand; both are copied.
func Rank(posts, reposts []Candidate) []Candidate {
	p := SortBy(append([]Candidate(nil), posts...), ByScore)
	r := SortBy(append([]Candidate(nil), reposts...), ByScore)
	return Merge(p, r, ByScore)
}

// Split separates an ordered list into its post and repost origins, keeping
// relative order.
func Split(cands []Candidate) (posts, reposts []Candidate) {
	for _, c := range cands {
		if c.Origin == OriginRepost {
			reposts = append(reposts, c)
		} else {
			posts = append(posts, c)
		}
	}
	return posts, reposts
}
