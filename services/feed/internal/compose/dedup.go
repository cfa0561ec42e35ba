package compose

// Dedup keeps at most one candidate per underlying post. A post that also
// appears as a repost is represented by the first such repost in order; the
// original entry is dropped. Self-reposts never represent a post.
func Dedup(ordered []Candidate) []Candidate {
	reposted := make(map[string]struct{})
	for _, c := range ordered {
		if c.Origin == OriginRepost && !c.SelfRepost() {
			reposted[c.PostID()] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(ordered))
	out := make([]Candidate, 0, len(ordered))
	for _, c := range ordered {
		id := c.PostID()
		if c.SelfRepost() {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if _, ok := reposted[id]; ok && c.Origin == OriginPost {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Representatives maps a post id to the key of the repost that stands for it
// across every page.
type Representatives map[string]Key

// Note records k as the representative of postID when it is newer than the
// current one.
func (r Representatives) Note(postID string, k Key) {
	if cur, ok := r[postID]; !ok || k.Newer(cur) {
		r[postID] = k
	}
}

// Keep reports whether c is the single occurrence of its post that may be
// surfaced: the newest eligible repost when one exists, the original
// otherwise.
func (r Representatives) Keep(c Candidate) bool {
	rep, reposted := r[c.PostID()]
	if c.Origin == OriginPost {
		return !reposted
	}
	return reposted && rep.Equal(c.Key)
}
