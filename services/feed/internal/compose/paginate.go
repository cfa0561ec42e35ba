package compose

// Page cuts an ordered list to limit items. next is the cursor after the last
// kept item when the list overflows, otherwise boundary, which callers pass
// when storage still holds rows past the list.
func Page(ordered []Candidate, limit int, boundary *Cursor) ([]Candidate, *Cursor) {
	if limit <= 0 {
		return nil, boundary
	}
	if len(ordered) > limit {
		next := ordered[limit-1].Cursor()
		return ordered[:limit], &next
	}
	return ordered, boundary
}
