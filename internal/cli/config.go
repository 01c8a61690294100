package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/downsample"
	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/core/table"
	"github.com/matzehuels/lodviz/pkg/errors"
	"github.com/matzehuels/lodviz/pkg/pipeline"
)

// loadChartConfig decodes a TOML chart file into pipeline options. An
// empty path yields zero options. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func loadChartConfig(path string) (pipeline.Options, error) {
	var opts pipeline.Options
	if path == "" {
		return opts, nil
	}
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidSpec, err, "read chart config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return opts, errors.New(errors.ErrCodeInvalidSpec, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// chartFlags are the chart command flags. Flags that were set override
// the config file.
type chartFlags struct {
	config    string
	output    string
	title     string
	mark      string
	x, y      string
	color     string
	size      string
	algorithm string
	threshold int
	width     int
	height    int
	rule      string
	stacked   bool
	trend     bool
	noCache   bool
	refresh   bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "chart config file (TOML)")
	fl.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fl.StringVar(&f.title, "title", "", "chart title")
	fl.StringVarP(&f.mark, "mark", "m", "", "chart type: "+chartTypeNames())
	fl.StringVarP(&f.x, "x", "x", "", "x field as name[:type]")
	fl.StringVarP(&f.y, "y", "y", "", "y field as name[:type]")
	fl.StringVar(&f.color, "color", "", "color field as name[:type]")
	fl.StringVar(&f.size, "size", "", "size field as name[:type]")
	fl.StringVarP(&f.algorithm, "algorithm", "a", "", "downsampling algorithm: none, lttb, m4")
	fl.IntVarP(&f.threshold, "threshold", "t", 0, "downsampling target (points for lttb, columns for m4)")
	fl.IntVar(&f.width, "width", 0, "chart width in pixels")
	fl.IntVar(&f.height, "height", 0, "chart height in pixels")
	fl.StringVar(&f.rule, "rule", "", "histogram bin rule: fd, sturges, scott, fixed:K")
	fl.BoolVar(&f.stacked, "stacked", false, "stack bar and area series")
	fl.BoolVar(&f.trend, "trend", false, "add a trend line to point series")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

// apply copies every flag the user set onto opts.
func (f *chartFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		opts.Title = f.title
	}
	if changed("mark") {
		mark, err := pipeline.ParseChartType(f.mark)
		if err != nil {
			return err
		}
		opts.Mark = mark
	}
	fields := []struct {
		flag  string
		value string
		def   data.DataType
		set   func(table.Field)
	}{
		{"x", f.x, data.Quantitative, func(v table.Field) { opts.Encoding.X = v }},
		{"y", f.y, data.Quantitative, func(v table.Field) { opts.Encoding.Y = v }},
		{"color", f.color, data.Nominal, func(v table.Field) { opts.Encoding.Color = &v }},
		{"size", f.size, data.Quantitative, func(v table.Field) { opts.Encoding.Size = &v }},
	}
	for _, fd := range fields {
		if !changed(fd.flag) {
			continue
		}
		field, err := parseField(fd.value, fd.def)
		if err != nil {
			return fmt.Errorf("--%s: %w", fd.flag, err)
		}
		fd.set(field)
	}
	if changed("algorithm") {
		opts.Downsample.Algorithm = downsample.Algorithm(f.algorithm)
	}
	if changed("threshold") {
		opts.Downsample.Threshold = f.threshold
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("rule") {
		rule, err := stats.ParseRule(f.rule)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRule, err, "--rule")
		}
		opts.Histogram.Rule = rule
	}
	if changed("stacked") {
		opts.Stacked = f.stacked
	}
	if changed("trend") {
		opts.Trend = f.trend
	}
	opts.Refresh = f.refresh
	return nil
}

// parseField parses "name" or "name:type".
func parseField(s string, def data.DataType) (table.Field, error) {
	name, typ, found := strings.Cut(s, ":")
	field := table.NewField(strings.TrimSpace(name), def)
	if found {
		if err := field.Type.UnmarshalText([]byte(strings.TrimSpace(typ))); err != nil {
			return field, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "field %q", s)
		}
	}
	if err := errors.ValidateFieldName(field.Name); err != nil {
		return field, err
	}
	return field, nil
}

func chartTypeNames() string {
	names := make([]string, len(pipeline.ChartTypes))
	for i, t := range pipeline.ChartTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
