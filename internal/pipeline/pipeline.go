package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/observability"
)

// Extractor reads every raw record from the source.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawRecord, error)
}

// BatchLoader writes prepared records to a downstream destination. meta
// identifies the table the records belong to.
type BatchLoader interface {
	LoadBatch(ctx context.Context, meta domain.TableMeta, records []domain.PreparedRecord) error
}

// Pipeline owns the current prepared table. Load replaces it whole, so readers
// always see exactly one table.
type Pipeline struct {
	extractor Extractor
	loader    BatchLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	year      int
	batchSize int
	table     atomic.Pointer[domain.PreparedTable]
}

// New creates a Pipeline. loader may be nil when export is disabled.
func New(e Extractor, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, referenceYear, batchSize int) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		logger:    logger,
		metrics:   metrics,
		year:      referenceYear,
		batchSize: batchSize,
	}
}

// Table returns the current prepared table, or nil before the first load.
func (p *Pipeline) Table() *domain.PreparedTable {
	return p.table.Load()
}

// CheckReadiness returns nil once a table has been loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.table.Load() == nil {
		return errors.New("no table loaded yet")
	}
	return nil
}

// Load extracts and prepares the source, then swaps in the new table. On error
// the previous table, if any, stays in place. Export failures are logged and
// do not fail the load.
func (p *Pipeline) Load(ctx context.Context) error {
	start := time.Now()

	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		p.metrics.LoadFailures.Inc()
		return fmt.Errorf("extract: %w", err)
	}

	table, err := domain.Prepare(raw, p.year)
	if err != nil {
		p.metrics.LoadFailures.Inc()
		return fmt.Errorf("prepare: %w", err)
	}

	p.table.Store(table)

	meta := table.Meta()
	p.metrics.RecordsLoaded.Add(float64(meta.Rows))
	p.metrics.TableRows.Set(float64(meta.Rows))
	p.metrics.InvalidDates.Set(float64(meta.InvalidDates))
	p.metrics.TableLoadedAtSec.Set(float64(meta.LoadedAt.Unix()))
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("table loaded",
		"rows", meta.Rows,
		"invalid_dates", meta.InvalidDates,
		"reference_year", meta.ReferenceYear,
	)

	if p.loader != nil {
		p.export(ctx, table)
	}
	return nil
}

// export publishes the table in batches of batchSize, stopping at the first failure.
func (p *Pipeline) export(ctx context.Context, table *domain.PreparedTable) {
	size := p.batchSize
	if size <= 0 {
		size = table.Len()
	}

	meta := table.Meta()
	exported := 0
	for _, batch := range lo.Chunk(table.Records(), max(size, 1)) {
		if err := p.loader.LoadBatch(ctx, meta, batch); err != nil {
			p.metrics.ExportErrors.Inc()
			p.logger.Error("export batch failed", "error", err,
				"batch_size", len(batch), "exported", exported)
			return
		}
		exported += len(batch)
		p.metrics.RecordsExported.Add(float64(len(batch)))
	}
	p.logger.Info("table exported", "records", exported)
}
