package ranking

import "scroll-feed/services/feed/internal/entity"

// Diversify reorders items so that no more than maxRun consecutive items share
// the underlying post's author, pulling the next different-author item
// forward when a run gets too long. Nothing is dropped; when only one author
// is left the tail keeps its order. maxRun <= 0 disables the pass.
func Diversify(items []entity.FeedItem, maxRun int) []entity.FeedItem {
	if maxRun <= 0 || len(items) <= maxRun {
		return items
	}

	pending := make([]entity.FeedItem, len(items))
	copy(pending, items)
	out := make([]entity.FeedItem, 0, len(items))

	run, last := 0, ""
	for len(pending) > 0 {
		pick := 0
		if run >= maxRun {
			for i := range pending {
				if authorOf(pending[i]) != last {
					pick = i
					break
				}
			}
		}

		item := pending[pick]
		pending = append(pending[:pick], pending[pick+1:]...)
		out = append(out, item)

		if a := authorOf(item); a == last {
			run++
		} else {
			last, run = a, 1
		}
	}
	return out
}

func authorOf(item entity.FeedItem) string {
	if item.Post == nil {
		return ""
	}
	return item.Post.AuthorID
}
