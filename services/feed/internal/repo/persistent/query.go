package persistent

import (
	"gorm.io/gorm"

	"scroll-feed/services/feed/internal/compose"
	"scroll-feed/services/feed/internal/entity"
)

// PageQuery is a keyset window over a stream ordered by (timestamp, id)
// descending. Before is exclusive.
type PageQuery struct {
	Before *compose.Key
	Limit  int
	Kind   entity.ContentKind
}

// keyset applies the window to a query whose sort columns are timeCol and idCol.
func (q PageQuery) keyset(db *gorm.DB, timeCol, idCol string) *gorm.DB {
	if q.Before != nil {
		db = db.Where("("+timeCol+", "+idCol+") < (?, ?)", q.Before.At, q.Before.ID)
	}
	db = db.Order(timeCol + " DESC").Order(idCol + " DESC")
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db
}

func (q PageQuery) kind(db *gorm.DB) *gorm.DB {
	if q.Kind != "" {
		db = db.Where("posts.kind = ?", string(q.Kind))
	}
	return db
}
