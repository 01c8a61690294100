package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleTableKey    = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1).Align(lipgloss.Right)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Numbers
// =============================================================================

var numberPrinter = message.NewPrinter(language.English)

// formatCount formats n with thousands separators ("12,345").
func formatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// formatFloat formats v with thousands separators and up to four decimals.
func formatFloat(v float64) string {
	if v == float64(int64(v)) && v < 1e15 && v > -1e15 {
		return formatCount(int(v))
	}
	return numberPrinter.Sprintf("%.4g", v)
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints result counts on a single line.
func printStats(parts []string, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	if len(parts) > 0 {
		line += StyleDim.Render(" · ")
	}
	fmt.Println(line + statusStyle.Render(status))
}

// chartCounts describes the geometry in a chart result.
func chartCounts(res *pipeline.Result) []string {
	var parts []string
	add := func(n int, noun string) {
		if n > 0 {
			parts = append(parts, formatCount(n)+" "+noun)
		}
	}
	if len(res.Series) > 0 {
		points, source := 0, 0
		for _, s := range res.Series {
			points += len(s.Points)
			source += s.SourcePoints
		}
		add(len(res.Series), "series")
		if source > points {
			parts = append(parts, formatCount(source)+" "+iconArrow+" "+formatCount(points)+" points")
		} else {
			add(points, "points")
		}
	}
	add(len(res.Bars), "bars")
	add(len(res.Slices), "slices")
	add(len(res.Bins), "bins")
	add(len(res.Boxes), "boxes")
	add(len(res.Waterfall), "steps")
	add(len(res.Candles), "candles")
	return parts
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleTableHeader
			case col == 0:
				return styleTableKey
			}
			return styleTableCell
		})
}

// renderSummary writes a summary as a two-column table.
func renderSummary(w io.Writer, s stats.Summary) {
	rows := [][]string{
		{"count", formatCount(s.Count)},
		{"sum", formatFloat(s.Sum)},
		{"mean", formatFloat(s.Mean)},
		{"std dev", formatFloat(s.StdDev)},
		{"min", formatFloat(s.Min)},
		{"max", formatFloat(s.Max)},
	}
	if b := s.Box; b != nil {
		rows = append(rows,
			[]string{"q1", formatFloat(b.Q1)},
			[]string{"median", formatFloat(b.Median)},
			[]string{"q3", formatFloat(b.Q3)},
			[]string{"iqr", formatFloat(b.IQR)},
			[]string{"whiskers", formatFloat(b.LowerWhisker) + " – " + formatFloat(b.UpperWhisker)},
			[]string{"outliers", formatCount(len(b.Outliers))},
		)
	}
	fmt.Fprintln(w, newTable("statistic", "value").Rows(rows...).Render())
}

// renderBins writes histogram bins with a proportional bar per bin.
func renderBins(w io.Writer, bins []stats.Bin) {
	top := 0
	for _, b := range bins {
		top = max(top, b.Count)
	}
	const barWidth = 30
	rows := make([][]string, len(bins))
	for i, b := range bins {
		n := 0
		if top > 0 {
			n = b.Count * barWidth / top
		}
		bar := ""
		for range n {
			bar += "█"
		}
		rows[i] = []string{
			"[" + formatFloat(b.X0) + ", " + formatFloat(b.X1) + ")",
			strconv.Itoa(b.Count),
			StyleNumber.Render(bar),
		}
	}
	fmt.Fprintln(w, newTable("bin", "count", "").Rows(rows...).Render())
}
