package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"antenna/internal/config"
	"antenna/internal/fetch"
	"antenna/internal/fileutil"
	"antenna/internal/journal"
	"antenna/internal/lineup"
	"antenna/internal/logging"
	"antenna/internal/mapping"
	"antenna/internal/playlist"
	"antenna/internal/services"
	"antenna/internal/sources"
)

// Summary reports what one run did. Status mirrors the journaled status;
// Message carries the diagnostic for early-terminated runs.
type Summary struct {
	RunID          string
	Status         journal.Status
	Message        string
	SourcesTotal   int
	SourcesFetched int
	Channels       int
	Matched        int
	Unmatched      int
	OutputPath     string
	Duration       time.Duration
}

// Pipeline wires the run collaborators together. The journal store is
// optional; a nil store skips run recording.
type Pipeline struct {
	cfg     *config.Config
	logger  *slog.Logger
	fetcher *fetch.Fetcher
	store   *journal.Store
}

// New constructs a pipeline.
func New(cfg *config.Config, logger *slog.Logger, fetcher *fetch.Fetcher, store *journal.Store) *Pipeline {
	if logger != nil {
		logger = logger.With(logging.String("component", "pipeline"))
	}
	return &Pipeline{cfg: cfg, logger: logger, fetcher: fetcher, store: store}
}

// Run executes one aggregation pass. Empty-input conditions (no usable
// content, template without categories) terminate early with a diagnostic
// Summary and a nil error; configuration and write failures return an
// error tagged with the matching sentinel.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	started := time.Now().UTC()
	summary := &Summary{RunID: uuid.NewString()}
	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, p.logger)

	lockPath := filepath.Join(p.cfg.Paths.DataDir, "antenna.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another antenna run is already in progress (lock %s)", lockPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	urls, usedFallback := sources.Load(p.cfg.Paths.SourcesFile, p.cfg.Fetch.DefaultSource)
	if usedFallback {
		logger.Warn("source list missing or empty, using default source",
			logging.String("default_source", p.cfg.Fetch.DefaultSource),
		)
	}
	summary.SourcesTotal = len(urls)

	table, err := mapping.Load(p.cfg.Paths.MappingFile)
	if err != nil {
		logger.Warn("alias mapping unreadable, continuing without", logging.Error(err))
		table = mapping.Table{}
	}

	logger.Info("run started",
		logging.Int("sources", len(urls)),
		logging.Int("aliases", len(table)),
	)

	records := p.collect(ctx, urls, table, summary)
	summary.Channels = len(records)

	if len(records) == 0 {
		return p.terminateEmpty(ctx, summary, started,
			services.Wrap(services.ErrNoContent, "pipeline", "aggregate", "no usable content from any source", nil))
	}

	tpl, err := lineup.LoadTemplate(p.cfg.Paths.TemplateFile)
	if err != nil {
		wrapped := services.Wrap(services.ErrConfiguration, "lineup", "load template", p.cfg.Paths.TemplateFile, err)
		return p.fail(ctx, summary, started, wrapped)
	}
	if len(tpl) == 0 {
		return p.terminateEmpty(ctx, summary, started,
			services.Wrap(services.ErrNoTemplate, "lineup", "load template", "no categories in "+p.cfg.Paths.TemplateFile, nil))
	}

	doc := lineup.Classify(tpl, records)
	stats := doc.Stats()
	summary.Matched = stats.Matched
	summary.Unmatched = stats.Unmatched

	if err := fileutil.WriteFileAtomic(p.cfg.Paths.OutputFile, []byte(doc.Render()+"\n"), 0o644); err != nil {
		wrapped := services.Wrap(services.ErrWrite, "output", "write", p.cfg.Paths.OutputFile, err)
		return p.fail(ctx, summary, started, wrapped)
	}
	summary.OutputPath = p.cfg.Paths.OutputFile

	summary.Status = journal.StatusSuccess
	p.record(ctx, summary, started, nil)
	logger.Info("run complete",
		logging.Int("channels", summary.Channels),
		logging.Int("matched", summary.Matched),
		logging.Int("unmatched", summary.Unmatched),
		logging.String("output", summary.OutputPath),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// collect fetches and parses every source, concatenating records in source
// order. A failed or empty source contributes nothing.
func (p *Pipeline) collect(ctx context.Context, urls []string, table mapping.Table, summary *Summary) []playlist.Record {
	var records []playlist.Record
	for _, url := range urls {
		srcCtx := services.WithSource(ctx, url)
		logger := logging.WithContext(srcCtx, p.logger)

		content, err := p.fetcher.Fetch(srcCtx, url)
		if err != nil {
			logger.Warn("source fetch failed", logging.Error(err))
			continue
		}

		parsed := playlist.Parse(content, table)
		if len(parsed) == 0 {
			logger.Warn("source produced no channels")
			continue
		}

		summary.SourcesFetched++
		logger.Info("source parsed", logging.Int("channels", len(parsed)))
		records = append(records, parsed...)
	}
	return records
}

// terminateEmpty ends the run without output: the condition is diagnostic,
// not a failure.
func (p *Pipeline) terminateEmpty(ctx context.Context, summary *Summary, started time.Time, cause error) (*Summary, error) {
	summary.Status = journal.StatusEmpty
	summary.Message = cause.Error()
	logging.WithContext(ctx, p.logger).Error("run ended early", logging.Error(cause))
	p.record(ctx, summary, started, cause)
	return summary, nil
}

func (p *Pipeline) fail(ctx context.Context, summary *Summary, started time.Time, cause error) (*Summary, error) {
	summary.Status = services.FailureStatus(cause)
	summary.Message = cause.Error()
	p.record(ctx, summary, started, cause)
	return nil, cause
}

func (p *Pipeline) record(ctx context.Context, summary *Summary, started time.Time, cause error) {
	summary.Duration = time.Since(started)
	if p.store == nil {
		return
	}

	run := &journal.Run{
		RunID:          summary.RunID,
		StartedAt:      started,
		FinishedAt:     time.Now().UTC(),
		Status:         summary.Status,
		SourcesTotal:   summary.SourcesTotal,
		SourcesFetched: summary.SourcesFetched,
		Channels:       summary.Channels,
		Matched:        summary.Matched,
		Unmatched:      summary.Unmatched,
		OutputPath:     summary.OutputPath,
	}
	if cause != nil {
		run.ErrorMessage = cause.Error()
	}
	if err := p.store.RecordRun(ctx, run); err != nil {
		logging.WithContext(ctx, p.logger).Warn("journal record failed", logging.Error(err))
	}
}
