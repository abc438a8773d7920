package writer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/grandexchange-data/internal/model"
)

// PersisterConfig configures a Persister.
type PersisterConfig struct {
	// Dir is the directory receiving the CSV files.
	Dir string

	// Now supplies the file date. The date is read once, at construction.
	Now func() time.Time
}

// Persister writes one catalogue to the CSV files and, when a dialer is set, to the database.
type Persister struct {
	files  *CSVSink
	dialer SessionDialer
	logger *slog.Logger

	mu      sync.Mutex
	metrics PersistMetrics
}

// NewPersister creates a Persister. A nil dialer disables the database sink.
func NewPersister(cfg PersisterConfig, dialer SessionDialer, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Persister{
		files:  NewCSVSink(cfg.Dir, now()),
		dialer: dialer,
		logger: logger,
	}
}

// Files returns the CSV sink.
func (p *Persister) Files() *CSVSink {
	return p.files
}

// Stats returns current metrics.
func (p *Persister) Stats() PersistMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics
}

// Persist appends cat to every sink. Every sink is attempted; failures are returned
// together as a joined error of *SinkError values.
func (p *Persister) Persist(ctx context.Context, cat *model.Catalogue) error {
	start := time.Now()
	p.count(func(m *PersistMetrics) { m.PersistCalls++ })

	var errs []error

	if err := p.files.AppendItems(cat.Items); err != nil {
		errs = append(errs, &SinkError{Kind: KindFile, Target: p.files.Path(KindItems), Err: err})
	} else {
		p.count(func(m *PersistMetrics) { m.FileRows += int64(len(cat.Items)) })
	}

	if err := p.files.AppendPrices(cat.Prices); err != nil {
		errs = append(errs, &SinkError{Kind: KindFile, Target: p.files.Path(KindPrices), Err: err})
	} else {
		p.count(func(m *PersistMetrics) { m.FileRows += int64(len(cat.Prices)) })
	}

	if p.dialer != nil {
		errs = append(errs, p.persistDB(ctx, cat)...)
	}

	p.count(func(m *PersistMetrics) { m.Errors += int64(len(errs)) })

	p.logger.Debug("persisted catalogue",
		"items", len(cat.Items),
		"prices", len(cat.Prices),
		"errors", len(errs),
		"duration", time.Since(start),
	)

	return errors.Join(errs...)
}

// persistDB opens a fresh session and inserts both tables, each in its own failure boundary.
func (p *Persister) persistDB(ctx context.Context, cat *model.Catalogue) []error {
	session, err := p.dialer.Dial(ctx)
	if err != nil {
		return []error{&SinkError{Kind: KindConnect, Target: "database", Err: err}}
	}
	defer func() {
		if err := session.Close(ctx); err != nil {
			p.logger.Debug("close database session", "error", err)
		}
	}()

	var errs []error

	p.count(func(m *PersistMetrics) { m.InsertCalls++ })
	if n, err := session.InsertItems(ctx, cat.Items); err != nil {
		errs = append(errs, &SinkError{Kind: KindInsert, Target: KindItems, Err: err})
	} else {
		p.count(func(m *PersistMetrics) { m.Inserts += n })
		p.logger.Debug("inserted rows", "table", KindItems, "rows", n)
	}

	p.count(func(m *PersistMetrics) { m.InsertCalls++ })
	if n, err := session.InsertPrices(ctx, cat.Prices); err != nil {
		errs = append(errs, &SinkError{Kind: KindInsert, Target: KindPrices, Err: err})
	} else {
		p.count(func(m *PersistMetrics) { m.Inserts += n })
		p.logger.Debug("inserted rows", "table", KindPrices, "rows", n)
	}

	return errs
}

func (p *Persister) count(fn func(m *PersistMetrics)) {
	p.mu.Lock()
	fn(&p.metrics)
	p.mu.Unlock()
}
