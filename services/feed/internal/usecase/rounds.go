package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"scroll-feed/services/feed/internal/compose"
	"scroll-feed/services/feed/internal/repo/persistent"
)

// stream is one keyset-ordered candidate source. fetch must return exactly
// one candidate per stored row, including rows whose join came back empty, so
// that a short batch reliably means the stream is exhausted.
type stream struct {
	name  string
	fetch func(ctx context.Context, q persistent.PageQuery) ([]compose.Candidate, error)
}

// filterFunc drops inadmissible candidates from a chronologically ordered
// batch and returns the survivors in order.
type filterFunc func(ctx context.Context, batch []compose.Candidate) ([]compose.Candidate, error)

type collectParams struct {
	streams    []stream
	filter     filterFunc
	from       *compose.Cursor
	limit      int
	oversample int
	maxRounds  int
	query      persistent.PageQuery
}

// collect pulls candidates round by round until it has a page.
//
// Each round reads limit*oversample+1 rows from every stream concurrently. A
// stream that returns a full batch may hold more rows below its last one, so
// only rows at or above the newest of those last rows (the horizon) are known
// to be complete; the rest are left for the next round, which resumes below
// the horizon. The returned cursor is the last kept candidate when the page
// overflows, the horizon when storage still holds rows, and nil at the end.
func collect(ctx context.Context, p collectParams) ([]compose.Candidate, *compose.Cursor, error) {
	batch := p.limit*p.oversample + 1
	rounds := p.maxRounds
	if rounds < 1 {
		rounds = 1
	}

	var (
		kept    []compose.Candidate
		horizon *compose.Cursor
	)
	from := p.from

	for round := 0; round < rounds; round++ {
		q := p.query
		q.Limit = batch
		q.Before = nil
		if from != nil {
			k := from.Key
			q.Before = &k
		}

		results := make([][]compose.Candidate, len(p.streams))
		g, gctx := errgroup.WithContext(ctx)
		for i := range p.streams {
			g.Go(func() error {
				cands, err := p.streams[i].fetch(gctx, q)
				if err != nil {
					return err
				}
				results[i] = cands
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}

		horizon = nil
		var merged []compose.Candidate
		for _, cands := range results {
			if len(cands) >= batch {
				last := cands[len(cands)-1].Cursor()
				if horizon == nil || last.Key.Newer(horizon.Key) {
					horizon = &last
				}
			}
			merged = compose.Merge(merged, cands, compose.ByTime)
		}
		if horizon != nil {
			merged = atOrAbove(merged, horizon.Key)
		}

		survivors, err := p.filter(ctx, merged)
		if err != nil {
			return nil, nil, err
		}
		kept = append(kept, survivors...)

		if horizon == nil || len(kept) >= p.limit {
			break
		}
		from = horizon
	}

	page, next := compose.Page(kept, p.limit, horizon)
	return page, next, nil
}

func atOrAbove(ordered []compose.Candidate, k compose.Key) []compose.Candidate {
	for i, c := range ordered {
		if k.Newer(c.Key) {
			return ordered[:i]
		}
	}
	return ordered
}
