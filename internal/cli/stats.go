package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/errors"
	lodio "github.com/matzehuels/lodviz/pkg/io"
)

type statsFlags struct {
	rule    string
	bins    bool
	json    bool
	noCache bool
}

// statsCommand creates the stats command, which summarizes a list of
// numbers and optionally prints their histogram.
func (c *CLI) statsCommand() *cobra.Command {
	var flags statsFlags

	cmd := &cobra.Command{
		Use:   "stats <values.json>",
		Short: "Summarize a list of numbers",
		Long: `Summarize a list of numbers: count, mean, standard deviation, quartiles,
whiskers and outliers. The input is a JSON array or {"values": [...]}.`,
		Example: `  lodviz stats latency.json
  lodviz stats latency.json --bins --rule sturges
  lodviz stats latency.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd, args[0], &flags)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&flags.rule, "rule", stats.FreedmanDiaconis.String(), "histogram bin rule: fd, sturges, scott, fixed:K")
	fl.BoolVar(&flags.bins, "bins", false, "print the histogram")
	fl.BoolVar(&flags.json, "json", false, "write the result as JSON")
	fl.BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runStats(cmd *cobra.Command, path string, flags *statsFlags) error {
	rule, err := stats.ParseRule(flags.rule)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRule, err, "--rule")
	}

	values, err := lodio.ImportValues(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, _, err := runner.Stats(cmd.Context(), values, rule)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flags.json {
		return lodio.WriteJSON(w, res)
	}
	renderSummary(w, res.Summary)
	if flags.bins {
		renderBins(w, res.Histogram)
	}
	return nil
}
