package boardfinder

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Progress receives discovery progress between sequential steps.
type Progress interface {
	Start(total int)
	// Step is called once per candidate; record is nil when the candidate
	// was excluded.
	Step(c Candidate, record *DeviceRecord)
	Done(found int)
}

type nopProgress struct{}

func (nopProgress) Start(int)                     {}
func (nopProgress) Step(Candidate, *DeviceRecord) {}
func (nopProgress) Done(int)                      {}

// Engine runs discovery passes over a platform using a signature table.
type Engine struct {
	platform Platform
	table    *Table
	logger   zerolog.Logger
	progress Progress
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithLogger sets the logger used for command failures and diagnostics
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithProgress sets the progress receiver
func WithProgress(p Progress) EngineOption {
	return func(e *Engine) {
		if p != nil {
			e.progress = p
		}
	}
}

// NewEngine creates a discovery engine. A nil table means DefaultTable.
func NewEngine(platform Platform, table *Table, opts ...EngineOption) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	e := &Engine{
		platform: platform,
		table:    table,
		logger:   zerolog.Nop(),
		progress: nopProgress{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the signature table the engine classifies against.
func (e *Engine) Table() *Table { return e.table }

// Platform returns the adapter the engine enumerates with.
func (e *Engine) Platform() Platform { return e.platform }

// Discover lists candidates and returns a record for every candidate whose
// description matches a family in filter (all families when filter is
// empty), in enumeration order. Failures never abort the pass: a failed
// listing yields no records and a candidate that cannot be described is
// skipped.
func (e *Engine) Discover(ctx context.Context, filter []string) []DeviceRecord {
	log := e.logger.With().
		Str("run_id", uuid.NewString()).
		Str("platform", e.platform.Name()).
		Logger()

	candidates, err := e.platform.ListCandidates(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing candidate devices failed")
		candidates = nil
	}
	log.Debug().Int("candidates", len(candidates)).Strs("filter", filter).Msg("discovery started")

	e.progress.Start(len(candidates))

	records := make([]DeviceRecord, 0)
	seen := make(map[Candidate]struct{}, len(candidates))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("discovery interrupted")
			break
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		record, ok := e.inspect(ctx, log, c, filter)
		if !ok {
			e.progress.Step(c, nil)
			continue
		}
		records = append(records, record)
		e.progress.Step(c, &record)
	}

	e.progress.Done(len(records))
	log.Debug().Int("found", len(records)).Msg("discovery finished")
	return records
}

// Inspect describes and classifies a single candidate, reporting whether
// it passes filter.
func (e *Engine) Inspect(ctx context.Context, c Candidate, filter []string) (DeviceRecord, bool) {
	return e.inspect(ctx, e.logger, c, filter)
}

func (e *Engine) inspect(ctx context.Context, log zerolog.Logger, c Candidate, filter []string) (DeviceRecord, bool) {
	description, err := e.platform.Describe(ctx, c)
	if err != nil {
		log.Error().Err(err).Str("candidate", string(c)).Msg("describing candidate failed")
		return DeviceRecord{}, false
	}

	matches := e.table.Match(description)
	if !selected(matches, filter) {
		return DeviceRecord{}, false
	}

	record := DeviceRecord{
		Path:      string(c),
		Family:    matches[0],
		VendorID:  NotAvailable,
		ProductID: NotAvailable,
	}
	if e.platform.ReportsUSBIDs() {
		record.VendorID = extractUSBID(vendorPattern, description)
		record.ProductID = extractUSBID(productPattern, description)
	}

	log.Debug().
		Str("candidate", string(c)).
		Str("family", record.Family).
		Str("vendor_id", record.VendorID).
		Str("product_id", record.ProductID).
		Msg("device matched")
	return record, true
}
