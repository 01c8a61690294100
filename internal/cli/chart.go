package cli

import (
	"github.com/spf13/cobra"

	lodio "github.com/matzehuels/lodviz/pkg/io"
)

// chartCommand creates the chart command, which computes chart geometry
// from a JSON table.
func (c *CLI) chartCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "chart <table.json>",
		Short: "Compute chart geometry from a data table",
		Long: `Compute chart geometry from a JSON data table.

Options come from a TOML chart file (--config) and from flags; flags that
are set override the file. The result is written as JSON to stdout, or to
the file named by --output.`,
		Example: `  lodviz chart sales.json -m bar -x region:nominal -y revenue
  lodviz chart metrics.json -m line -x ts:temporal -y cpu -a m4 -o cpu.json
  lodviz chart prices.json -c candles.toml --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runChart(cmd, args[0], &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runChart(cmd *cobra.Command, path string, flags *chartFlags) error {
	opts, err := loadChartConfig(flags.config)
	if err != nil {
		return err
	}
	if err := flags.apply(cmd, &opts); err != nil {
		return err
	}

	t, err := lodio.ImportTable(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if flags.output == "" {
		res, err := runner.Execute(cmd.Context(), t, opts)
		if err != nil {
			return err
		}
		return lodio.WriteJSON(cmd.OutOrStdout(), res)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(cmd.Context(), "Computing chart...")
	spinner.Start()
	res, err := runner.Execute(cmd.Context(), t, opts)
	if err != nil {
		spinner.StopWithError("Chart failed")
		return err
	}
	spinner.Stop()
	if err := lodio.ExportJSON(flags.output, res); err != nil {
		return err
	}

	prog.done("chart written", "path", flags.output)
	printSuccess("Computed %s chart", res.Mark)
	printStats(chartCounts(res), res.CacheInfo.Hit)
	printFile(flags.output)
	return nil
}

