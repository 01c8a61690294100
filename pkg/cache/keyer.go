package cache

import "fmt"

// Keyer builds cache keys for each kind of cached computation.
type Keyer interface {
	// ChartKey identifies a computed chart for a table and its options.
	ChartKey(tableHash string, opts ChartKeyOpts) string
	// DownsampleKey identifies a downsampled series.
	DownsampleKey(seriesHash string, opts DownsampleKeyOpts) string
	// StatsKey identifies a statistics summary of a value list.
	StatsKey(valuesHash string, rule string) string
}

// ChartKeyOpts lists every option that affects a computed chart.
type ChartKeyOpts struct {
	Mark      string   `json:"mark"`
	Fields    []string `json:"fields"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Algorithm string   `json:"algorithm"`
	Threshold int      `json:"threshold"`
	Rule      string   `json:"rule"`
	Title     string   `json:"title"`
}

// DownsampleKeyOpts lists the options that affect a downsampled series.
type DownsampleKeyOpts struct {
	Algorithm string `json:"algorithm"`
	Threshold int    `json:"threshold"`
}

// DefaultKeyer hashes the key options together with the input hash.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ChartKey returns "chart:<sha256>".
func (DefaultKeyer) ChartKey(tableHash string, opts ChartKeyOpts) string {
	return hashKey("chart", tableHash, opts)
}

// DownsampleKey returns "downsample:<algorithm>:<sha256>".
func (DefaultKeyer) DownsampleKey(seriesHash string, opts DownsampleKeyOpts) string {
	return hashKey(fmt.Sprintf("downsample:%s", opts.Algorithm), seriesHash, opts)
}

// StatsKey returns "stats:<sha256>".
func (DefaultKeyer) StatsKey(valuesHash string, rule string) string {
	return hashKey("stats", valuesHash, rule)
}

var _ Keyer = DefaultKeyer{}
