package writer

import (
	"context"

	"github.com/rickgao/grandexchange-data/internal/model"
)

// TableSession inserts catalogue records into the items and prices tables.
type TableSession interface {
	InsertItems(ctx context.Context, items []model.Item) (int64, error)
	InsertPrices(ctx context.Context, prices []model.PriceSnapshot) (int64, error)
	Close(ctx context.Context) error
}

// SessionDialer opens a TableSession.
type SessionDialer interface {
	Dial(ctx context.Context) (TableSession, error)
}

// DialerFunc is a function adapter for SessionDialer.
type DialerFunc func(ctx context.Context) (TableSession, error)

func (f DialerFunc) Dial(ctx context.Context) (TableSession, error) {
	return f(ctx)
}

// PersistMetrics holds counters for a Persister.
type PersistMetrics struct {
	FileRows     int64 // Data rows appended to CSV files
	Inserts      int64 // Rows inserted into the database
	InsertCalls  int64 // Table insert attempts
	Errors       int64 // Failed sink operations
	PersistCalls int64
}
