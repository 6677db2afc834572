package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/juancuellarsol/ogilvy/internal/config"
	"github.com/juancuellarsol/ogilvy/internal/profile"
)

// Options are the command line options shared by every profile binary.
// The flag tag names the command line flag and is used in validation
// messages.
type Options struct {
	File string `flag:"file" validate:"required_without=Glob,excluded_with=Glob"`
	Glob string `flag:"glob"`

	CreatedCol string `flag:"created-col"`
	DateCol    string `flag:"date-col"`
	TimeCol    string `flag:"time-col"`

	SkipRows int    `flag:"skiprows" validate:"gte=0"`
	Header   int    `flag:"header" validate:"gte=-1"`
	Sheet    string `flag:"sheet"`

	Suffix string `flag:"suffix"`
	Format string `flag:"fmt" validate:"oneof=xlsx csv"`
	Export bool   `flag:"export"`

	TZFrom string `flag:"tz-from" validate:"tzname"`
	TZTo   string `flag:"tz-to" validate:"tzname"`

	KeepCreated       bool     `flag:"keep-created"`
	KeepColumns       []string `flag:"keep-columns" validate:"dive,colname"`
	UseDefaultColumns bool     `flag:"use-default-columns"`
	FloorToHour       optionalBool
	DayFirst          optionalBool

	PreviewRows int    `flag:"preview-rows" validate:"gte=0"`
	ConfigPath  string `flag:"config"`
	MetricsFile string `flag:"metrics-file"`
	Trace       bool   `flag:"trace"`
	Version     bool   `flag:"version"`

	// set records which flags were given explicitly
	set map[string]bool
}

// optionalBool is a boolean flag that remembers whether it was given, so an
// unset flag falls back to the profile default.
type optionalBool struct {
	value bool
	isSet bool
}

func (b *optionalBool) String() string {
	if b == nil || !b.isSet {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value, b.isSet = v, true
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

// Ptr returns nil when the flag was not given.
func (b optionalBool) Ptr() *bool {
	if !b.isSet {
		return nil
	}
	v := b.value
	return &v
}

// listFlag collects repeated, comma separated values. Blank entries, as left
// by a trailing comma, are dropped.
type listFlag struct {
	values *[]string
}

func (l listFlag) String() string {
	if l.values == nil {
		return ""
	}
	return strings.Join(*l.values, ",")
}

func (l listFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l.values = append(*l.values, part)
		}
	}
	return nil
}

// newFlagSet binds opts to a flag set named after the profile. The split
// date/time flags are only registered for split profiles.
func newFlagSet(p profile.Profile, opts *Options, output io.Writer) *flag.FlagSet {
	name := p.Key + "-normalizer"
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.File, "file", "", "input file (.xlsx, .xlsm, .xls or .csv)")
	fs.StringVar(&opts.Glob, "glob", "", "glob pattern for several input files, e.g. \"exports/*.xlsx\"")

	if p.IsSplit() {
		fs.StringVar(&opts.CreatedCol, "created-col", "", "single timestamp column read as a date (overrides the split columns)")
		fs.StringVar(&opts.DateCol, "date-col", "", fmt.Sprintf("date column (default %q)", p.DefaultDateColumn))
		fs.StringVar(&opts.TimeCol, "time-col", "", fmt.Sprintf("time column (default %q)", p.DefaultTimeColumn))
	} else {
		fs.StringVar(&opts.CreatedCol, "created-col", "", fmt.Sprintf("timestamp column (default %q)", p.DefaultCreatedColumn))
	}

	fs.IntVar(&opts.SkipRows, "skiprows", 0, "rows to skip before the header")
	fs.IntVar(&opts.Header, "header", 0, "header row after skipping; -1 means no header")
	fs.StringVar(&opts.Sheet, "sheet", "", "workbook sheet to read (default first sheet)")

	fs.StringVar(&opts.Suffix, "suffix", "", "suffix added to output file names (default \"_limpio\")")
	fs.StringVar(&opts.Format, "fmt", "", "output format: xlsx or csv (default xlsx)")
	fs.BoolVar(&opts.Export, "export", false, "write cleaned files; without it only a preview is printed")

	fs.StringVar(&opts.TZFrom, "tz-from", "", "zone of naive timestamps, e.g. UTC")
	fs.StringVar(&opts.TZTo, "tz-to", "", "zone to convert timestamps to, e.g. America/Bogota")

	fs.BoolVar(&opts.KeepCreated, "keep-created", false, "keep the original timestamp column(s)")
	fs.Var(listFlag{values: &opts.KeepColumns}, "keep-columns", "columns to keep after date/hora (repeatable, comma separated)")
	fs.BoolVar(&opts.UseDefaultColumns, "use-default-columns", false, "keep the profile's default column set")
	fs.Var(&opts.FloorToHour, "floor-to-hour", fmt.Sprintf("round hora down to the hour (profile default %t)", p.FloorToHour))
	fs.Var(&opts.DayFirst, "day-first", fmt.Sprintf("read ambiguous dates as day/month (profile default %t)", p.DayFirst))

	fs.IntVar(&opts.PreviewRows, "preview-rows", 0, "rows shown in preview mode (default 5)")
	fs.StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.MetricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
	fs.BoolVar(&opts.Trace, "trace", false, "emit a trace span per file")
	fs.BoolVar(&opts.Version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s (-file <path> | -glob <pattern>) [flags]\n\n%s\n\n", name, p.Description)
		fs.PrintDefaults()
	}
	return fs
}

// parseOptions parses args for profile p.
func parseOptions(p profile.Profile, args []string, output io.Writer) (*Options, error) {
	opts := &Options{}
	fs := newFlagSet(p, opts, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// applyConfig fills options that were not given on the command line from
// cfg and copies the flag overrides back into cfg, so flags always win.
func (o *Options) applyConfig(cfg *config.Config) {
	if !o.set["sheet"] {
		o.Sheet = cfg.Import.Sheet
	}
	if !o.set["suffix"] {
		o.Suffix = cfg.Export.Suffix
	}
	if !o.set["fmt"] {
		o.Format = cfg.Export.Format
	}
	o.Format = strings.ToLower(strings.TrimPrefix(o.Format, "."))
	if !o.set["preview-rows"] {
		o.PreviewRows = cfg.Preview.Rows
	}

	if o.set["metrics-file"] {
		cfg.Telemetry.MetricsFile = o.MetricsFile
	} else {
		o.MetricsFile = cfg.Telemetry.MetricsFile
	}
	if o.set["trace"] {
		cfg.Telemetry.TracingEnabled = o.Trace
	} else {
		o.Trace = cfg.Telemetry.TracingEnabled
	}
}
