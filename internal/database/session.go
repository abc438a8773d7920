package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rickgao/grandexchange-data/internal/config"
	"github.com/rickgao/grandexchange-data/internal/model"
)

// Table and column layout of the append-only sinks.
var (
	ItemsTable   = pgx.Identifier{"items"}
	PricesTable  = pgx.Identifier{"prices"}
	ItemColumns  = []string{"item_id", "icon", "item_type", "name", "description", "is_members"}
	PriceColumns = []string{"item_id", "date", "price", "trend", "change_today"}
)

// copier is the subset of *pgx.Conn used by Session.
type copier interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close(ctx context.Context) error
}

// Dialer opens one connection per call.
type Dialer struct {
	cfg config.DBConfig
}

// NewDialer creates a Dialer for cfg.
func NewDialer(cfg config.DBConfig) *Dialer {
	return &Dialer{cfg: cfg}
}

// Dial opens and pings a fresh connection.
func (d *Dialer) Dial(ctx context.Context) (*Session, error) {
	connCfg, err := pgx.ParseConfig(BuildConnString(d.cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if d.cfg.ConnectTimeout > 0 {
		connCfg.ConnectTimeout = d.cfg.ConnectTimeout
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Session{conn: conn}, nil
}

// Session inserts catalogue records over a single connection.
type Session struct {
	conn copier
}

// InsertItems appends items to the items table.
func (s *Session) InsertItems(ctx context.Context, items []model.Item) (int64, error) {
	n, err := s.conn.CopyFrom(ctx, ItemsTable, ItemColumns, pgx.CopyFromRows(itemRows(items)))
	if err != nil {
		return 0, fmt.Errorf("copy into items: %w", err)
	}
	return n, nil
}

// InsertPrices appends price snapshots to the prices table.
func (s *Session) InsertPrices(ctx context.Context, prices []model.PriceSnapshot) (int64, error) {
	n, err := s.conn.CopyFrom(ctx, PricesTable, PriceColumns, pgx.CopyFromRows(priceRows(prices)))
	if err != nil {
		return 0, fmt.Errorf("copy into prices: %w", err)
	}
	return n, nil
}

// Close closes the underlying connection.
func (s *Session) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

func itemRows(items []model.Item) [][]any {
	rows := make([][]any, len(items))
	for i, it := range items {
		rows[i] = []any{it.ItemID, it.Icon, it.Type, it.Name, it.Description, it.IsMembers}
	}
	return rows
}

func priceRows(prices []model.PriceSnapshot) [][]any {
	rows := make([][]any, len(prices))
	for i, p := range prices {
		rows[i] = []any{p.ItemID, p.Date, p.Price, p.Trend, p.ChangeToday}
	}
	return rows
}
