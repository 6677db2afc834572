package normalize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/juancuellarsol/ogilvy/internal/profile"
	"github.com/juancuellarsol/ogilvy/internal/table"
)

// Options tunes a Processor. Zero values fall back to the profile defaults.
type Options struct {
	// CreatedColumn overrides the timestamp column. On split profiles it
	// switches to a date-only read of that single column when the column
	// exists, and is ignored otherwise.
	CreatedColumn string
	DateColumn    string
	TimeColumn    string

	TZFrom string
	TZTo   string

	// KeepSource retains the raw timestamp column(s).
	KeepSource bool

	KeepColumns       []string
	UseDefaultColumns bool

	FloorToHour *bool
	DayFirst    *bool
}

// Report summarizes one processed table.
type Report struct {
	Profile           string
	Rows              int
	SourceColumns     []string
	MissingTimestamps int
	Warnings          []string
}

// Processor runs the normalization pipeline for one profile.
type Processor struct {
	profile  profile.Profile
	opts     Options
	zones    Zones
	floor    bool
	dayFirst bool
	logger   *slog.Logger
}

// NewProcessor validates the time zones up front so that a bad zone name
// fails before any file is read.
func NewProcessor(p profile.Profile, opts Options, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	zones, err := LoadZones(opts.TZFrom, opts.TZTo)
	if err != nil {
		return nil, err
	}
	floor := p.FloorToHour
	if opts.FloorToHour != nil {
		floor = *opts.FloorToHour
	}
	dayFirst := p.DayFirst
	if opts.DayFirst != nil {
		dayFirst = *opts.DayFirst
	}
	return &Processor{
		profile:  p,
		opts:     opts,
		zones:    zones,
		floor:    floor,
		dayFirst: dayFirst,
		logger:   logger.With("component", "normalize", "profile", p.Key),
	}, nil
}

// Profile returns the profile the processor was built for.
func (p *Processor) Profile() profile.Profile {
	return p.profile
}

// Process normalizes a copy of in. Column resolution and zone errors abort;
// unparseable values become Missing.
func (p *Processor) Process(ctx context.Context, in *table.Table) (*table.Table, *Report, error) {
	t := in.Clone()
	t.NormalizeHeaders()
	t.DropColumns(p.profile.DropColumns...)

	timestamps, sources, err := p.parse(t)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{Profile: p.profile.Key, Rows: t.Len(), SourceColumns: sources}
	keepOriginal := p.profile.KeepOriginalHora
	derived := make([]Derived, len(timestamps))
	for i, ts := range timestamps {
		if ts, err = p.zones.Apply(ts); err != nil {
			return nil, nil, err
		}
		if !ts.Valid {
			report.MissingTimestamps++
		}
		derived[i] = Derive(ts, p.floor, keepOriginal)
	}

	if !p.opts.KeepSource {
		t.DropColumns(sources...)
	}
	ApplyDerived(t, derived, keepOriginal)

	out, warnings := Project(t, ProjectOptions{
		KeepColumns: p.opts.KeepColumns,
		UseDefault:  p.opts.UseDefaultColumns,
		Defaults:    p.profile.Defaults(),
		Pinned:      DerivedColumns(keepOriginal),
	})
	for _, w := range warnings {
		p.logger.WarnContext(ctx, "projection", slog.String("warning", w))
	}
	report.Warnings = warnings

	if report.MissingTimestamps > 0 {
		p.logger.InfoContext(ctx, "unparseable timestamps left empty",
			slog.Int("missing", report.MissingTimestamps),
			slog.Int("rows", report.Rows))
	}
	if out.Len() != in.Len() {
		return nil, nil, fmt.Errorf("row count changed from %d to %d", in.Len(), out.Len())
	}
	return out, report, nil
}

func (p *Processor) parse(t *table.Table) ([]Timestamp, []string, error) {
	if p.profile.IsSplit() {
		if col, ok := p.splitOverride(t); ok {
			p.logger.Debug("resolved timestamp column", slog.String("column", col))
			return NewParser(p.profile, p.dayFirst).ParseColumn(t.Column(col)), []string{col}, nil
		}
		cols, err := ResolveSplit(t.Columns, p.opts.DateColumn, p.opts.TimeColumn, p.profile)
		if err != nil {
			return nil, nil, err
		}
		p.logger.Debug("resolved split columns", slog.String("date", cols.Date), slog.String("time", cols.Time))
		ts := ParseSplit(t.Column(cols.Date), t.Column(cols.Time), p.profile.SplitLayout)
		return ts, []string{cols.Date, cols.Time}, nil
	}

	preferred := p.opts.CreatedColumn
	if preferred == "" {
		preferred = p.profile.DefaultCreatedColumn
	}
	col, err := ResolveColumn(t.Columns, preferred, p.profile)
	if err != nil {
		return nil, nil, err
	}
	p.logger.Debug("resolved timestamp column", slog.String("column", col))
	return NewParser(p.profile, p.dayFirst).ParseColumn(t.Column(col)), []string{col}, nil
}

// splitOverride reports the created-column override of a split profile when
// it names an existing column. A missing override keeps the date/time split.
func (p *Processor) splitOverride(t *table.Table) (string, bool) {
	name := strings.TrimSpace(p.opts.CreatedColumn)
	if name == "" {
		return "", false
	}
	for _, c := range t.Columns {
		if strings.TrimSpace(c) == name {
			return c, true
		}
	}
	if c, ok := t.FindFold(name); ok {
		return c, true
	}
	p.logger.Warn("created column not found, using date and time columns",
		slog.String("column", name))
	return "", false
}
