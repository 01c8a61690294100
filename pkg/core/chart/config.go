package chart

// Margin is the space around the plot area in pixels.
type Margin struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// DefaultMargin leaves room for axis labels on the left and bottom.
func DefaultMargin() Margin {
	return Margin{Top: 20, Right: 20, Bottom: 50, Left: 60}
}

// Grid selects which grid lines are drawn.
type Grid struct {
	ShowX bool `json:"show_x" toml:"show_x"`
	ShowY bool `json:"show_y" toml:"show_y"`
}

// Default chart size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Config holds layout options. Nil and zero fields fall back to defaults.
type Config struct {
	Title      string  `json:"title,omitempty" toml:"title"`
	Width      int     `json:"width,omitempty" toml:"width"`
	Height     int     `json:"height,omitempty" toml:"height"`
	Grid       *Grid   `json:"grid,omitempty" toml:"grid"`
	Margin     *Margin `json:"margin,omitempty" toml:"margin"`
	ShowLegend *bool   `json:"show_legend,omitempty" toml:"show_legend"`
}

// Size returns the configured width and height, using the defaults for
// unset values.
func (c Config) Size() (width, height float64) {
	width, height = DefaultWidth, DefaultHeight
	if c.Width > 0 {
		width = float64(c.Width)
	}
	if c.Height > 0 {
		height = float64(c.Height)
	}
	return width, height
}

// EffectiveMargin returns the configured margin or DefaultMargin.
func (c Config) EffectiveMargin() Margin {
	if c.Margin != nil {
		return *c.Margin
	}
	return DefaultMargin()
}

// InnerSize returns the plot area left after margins, never negative.
func (c Config) InnerSize() (width, height float64) {
	w, h := c.Size()
	m := c.EffectiveMargin()
	return max(w-m.Left-m.Right, 0), max(h-m.Top-m.Bottom, 0)
}

// LegendVisible reports whether a legend is drawn for n series. Unset means
// only when there is more than one series.
func (c Config) LegendVisible(n int) bool {
	if c.ShowLegend != nil {
		return *c.ShowLegend
	}
	return n > 1
}
