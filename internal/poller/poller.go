package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/rickgao/grandexchange-data/internal/api"
	"github.com/rickgao/grandexchange-data/internal/model"
	"github.com/rickgao/grandexchange-data/internal/writer"
)

// maxLoggedBody caps the response body attached to a fetch failure record.
const maxLoggedBody = 2048

// Fetcher fetches one catalogue page.
type Fetcher interface {
	GetCatalogue(ctx context.Context, url string) (*model.Catalogue, error)
}

// Config holds poller configuration.
type Config struct {
	Sources   []string // Catalogue page URLs, fetched in order
	Schedule  string   // Cron spec (default: @daily)
	OutputDir string   // CSV directory (default: .)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Schedule:  "@daily",
		OutputDir: ".",
	}
}

// CycleResult summarizes one collection cycle.
type CycleResult struct {
	CycleID     string    `json:"cycle_id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Sources     int       `json:"sources"`
	Fetched     int       `json:"fetched"`
	FetchErrors int       `json:"fetch_errors"`
	SinkErrors  int       `json:"sink_errors"`
	Items       int       `json:"items"`
}

// OK reports whether every source was fetched and persisted without error.
func (r CycleResult) OK() bool {
	return r.FetchErrors == 0 && r.SinkErrors == 0
}

// Poller runs collection cycles.
type Poller struct {
	cfg     Config
	fetcher Fetcher
	dialer  writer.SessionDialer
	logger  *slog.Logger
	now     func() time.Time

	running sync.Mutex // held while a cycle runs

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	last    CycleResult
	hasLast bool
}

// New creates a new Poller. A nil dialer disables the database sink.
func New(cfg Config, fetcher Fetcher, dialer writer.SessionDialer, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultConfig().Schedule
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultConfig().OutputDir
	}
	return &Poller{
		cfg:     cfg,
		fetcher: fetcher,
		dialer:  dialer,
		logger:  logger,
		now:     time.Now,
	}
}

// Start schedules cycles and runs the first one immediately.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.cron = cron.New(cron.WithChain(cron.Recover(cronLogger{p.logger})))
	if _, err := p.cron.AddFunc(p.cfg.Schedule, p.tick); err != nil {
		p.cancel()
		return err
	}
	p.cron.Start()

	// Poll immediately on start.
	go p.tick()

	p.logger.Info("catalogue poller started",
		"schedule", p.cfg.Schedule,
		"sources", len(p.cfg.Sources),
	)

	return nil
}

// Stop cancels the running cycle and waits for it to return.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		if p.cron != nil {
			<-p.cron.Stop().Done()
		}
		// Wait for an in-flight immediate run too.
		p.running.Lock()
		p.running.Unlock()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("catalogue poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastResult returns the most recent cycle result, if any.
func (p *Poller) LastResult() (CycleResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.hasLast
}

// tick runs a cycle unless one is already in progress.
func (p *Poller) tick() {
	if !p.running.TryLock() {
		p.logger.Warn("previous cycle still running, skipping")
		return
	}
	defer p.running.Unlock()

	if p.ctx.Err() != nil {
		return
	}
	p.runCycle(p.ctx)
}

// RunOnce runs a single cycle synchronously.
func (p *Poller) RunOnce(ctx context.Context) CycleResult {
	p.running.Lock()
	defer p.running.Unlock()
	return p.runCycle(ctx)
}

// runCycle fetches and persists every source in order.
func (p *Poller) runCycle(ctx context.Context) CycleResult {
	res := CycleResult{
		CycleID:   uuid.NewString(),
		StartedAt: p.now(),
		Sources:   len(p.cfg.Sources),
	}
	logger := p.logger.With("cycle_id", res.CycleID)
	logger.Info("collection cycle started", "sources", res.Sources)

	persister := writer.NewPersister(writer.PersisterConfig{
		Dir: p.cfg.OutputDir,
		Now: p.now,
	}, p.dialer, logger)

	for _, src := range p.cfg.Sources {
		if ctx.Err() != nil {
			logger.Warn("collection cycle cancelled", "error", ctx.Err())
			break
		}

		cat, err := p.fetcher.GetCatalogue(ctx, src)
		if err != nil {
			res.FetchErrors++
			logFetchError(logger, src, err)
			continue
		}
		res.Fetched++
		res.Items += cat.Len()

		if err := persister.Persist(ctx, cat); err != nil {
			for _, se := range writer.SinkErrors(err) {
				res.SinkErrors++
				logger.Error("persist failed",
					"url", src,
					"sink", se.Kind.String(),
					"target", se.Target,
					"error", se.Err,
				)
			}
		}
	}

	res.FinishedAt = p.now()

	p.mu.Lock()
	p.last = res
	p.hasLast = true
	p.mu.Unlock()

	stats := persister.Stats()
	logger.Info("collection cycle complete",
		"fetched", res.Fetched,
		"fetch_errors", res.FetchErrors,
		"sink_errors", res.SinkErrors,
		"items", res.Items,
		"file_rows", stats.FileRows,
		"db_rows", stats.Inserts,
		"duration", res.FinishedAt.Sub(res.StartedAt),
	)

	return res
}

// logFetchError emits a single record describing a failed page.
func logFetchError(logger *slog.Logger, src string, err error) {
	attrs := []any{"url", src, "kind", api.KindOf(err).String(), "error", err}

	var fe *api.FetchError
	if errors.As(err, &fe) {
		if fe.StatusCode != 0 {
			attrs = append(attrs, "status", fe.StatusCode)
		}
		if len(fe.Header) > 0 {
			attrs = append(attrs, "headers", fe.Header)
		}
		if len(fe.Body) > 0 {
			attrs = append(attrs, "body", truncate(fe.Body, maxLoggedBody))
		}
	}

	logger.Error("catalogue fetch failed", attrs...)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "...(truncated)"
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
