package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/downsample"
	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/errors"
	"github.com/matzehuels/lodviz/pkg/pipeline"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadChartConfig(t *testing.T) {
	path := writeFile(t, "chart.toml", `
title = "CPU"
mark = "line"
width = 640
stacked = true

[encoding.x]
name = "ts"
type = "temporal"

[encoding.y]
name = "cpu"
type = "quantitative"

[encoding.color]
name = "host"
type = "nominal"

[downsample]
algorithm = "m4"
threshold = 320

[histogram]
rule = "fixed:12"

[margin]
top = 10
right = 10
bottom = 30
left = 40
`)

	opts, err := loadChartConfig(path)
	if err != nil {
		t.Fatalf("loadChartConfig: %v", err)
	}
	if opts.Title != "CPU" || opts.Mark != pipeline.ChartLine || opts.Width != 640 || !opts.Stacked {
		t.Errorf("top-level options = %+v", opts)
	}
	if opts.Encoding.X.Name != "ts" || opts.Encoding.X.Type != data.Temporal {
		t.Errorf("x = %+v", opts.Encoding.X)
	}
	if opts.Encoding.Color == nil || opts.Encoding.Color.Name != "host" {
		t.Errorf("color = %+v", opts.Encoding.Color)
	}
	if opts.Downsample.Algorithm != downsample.AlgoM4 || opts.Downsample.Threshold != 320 {
		t.Errorf("downsample = %+v", opts.Downsample)
	}
	if opts.Histogram.Rule.Bins() != 12 {
		t.Errorf("rule = %v, want fixed:12", opts.Histogram.Rule)
	}
	if opts.Margin == nil || opts.Margin.Left != 40 {
		t.Errorf("margin = %+v", opts.Margin)
	}
}

func TestLoadChartConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "mark = \"bar\"\ncolour = \"red\"\n"},
		{"bad syntax", "mark = \n"},
		{"bad type", "[encoding.x]\nname = \"x\"\ntype = \"fancy\"\n"},
		{"bad rule", "[histogram]\nrule = \"fixed:0x\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadChartConfig(writeFile(t, "chart.toml", tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidSpec) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidSpec)
			}
		})
	}
}

func TestLoadChartConfigEmptyPath(t *testing.T) {
	opts, err := loadChartConfig("")
	if err != nil || opts.Mark != "" {
		t.Errorf("loadChartConfig(\"\") = %+v, %v", opts, err)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		def     data.DataType
		want    string
		typ     data.DataType
		wantErr bool
	}{
		{"revenue", data.Quantitative, "revenue", data.Quantitative, false},
		{"ts:temporal", data.Quantitative, "ts", data.Temporal, false},
		{" region : nominal ", data.Quantitative, "region", data.Nominal, false},
		{"x:bogus", data.Quantitative, "", 0, true},
		{":nominal", data.Nominal, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseField(tt.in, tt.def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseField(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && (got.Name != tt.want || got.Type != tt.typ) {
				t.Errorf("parseField(%q) = %+v", tt.in, got)
			}
		})
	}
}

func TestChartFlagsApply(t *testing.T) {
	var flags chartFlags
	cmd := &cobra.Command{Use: "chart"}
	flags.register(cmd)
	if err := cmd.ParseFlags([]string{"-m", "bar", "-x", "region:nominal", "--rule", "sturges", "--threshold", "50", "--refresh"}); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{
		Title:   "from config",
		Mark:    pipeline.ChartLine,
		Width:   300,
		Stacked: true,
	}
	if err := flags.apply(cmd, &opts); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if opts.Mark != pipeline.ChartBar {
		t.Errorf("Mark = %q, want bar", opts.Mark)
	}
	if opts.Encoding.X.Name != "region" || opts.Encoding.X.Type != data.Nominal {
		t.Errorf("X = %+v", opts.Encoding.X)
	}
	if opts.Histogram.Rule != stats.Sturges {
		t.Errorf("Rule = %v", opts.Histogram.Rule)
	}
	if opts.Downsample.Threshold != 50 || !opts.Refresh {
		t.Errorf("threshold/refresh not applied: %+v", opts)
	}
	// Unset flags keep config values.
	if opts.Title != "from config" || opts.Width != 300 || !opts.Stacked {
		t.Errorf("config values overwritten: %+v", opts)
	}
}

func TestChartFlagsApplyErrors(t *testing.T) {
	tests := []struct {
		args []string
		code errors.Code
	}{
		{[]string{"-m", "sankey"}, errors.ErrCodeInvalidMark},
		{[]string{"--rule", "magic"}, errors.ErrCodeInvalidRule},
		{[]string{"-y", "v:weird"}, errors.ErrCodeInvalidEncoding},
	}
	for _, tt := range tests {
		var flags chartFlags
		cmd := &cobra.Command{Use: "chart"}
		flags.register(cmd)
		if err := cmd.ParseFlags(tt.args); err != nil {
			t.Fatal(err)
		}
		var opts pipeline.Options
		if err := flags.apply(cmd, &opts); !errors.Is(err, tt.code) {
			t.Errorf("apply(%v) = %v, want %s", tt.args, err, tt.code)
		}
	}
}
