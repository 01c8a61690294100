package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/downsample"
	lodio "github.com/matzehuels/lodviz/pkg/io"
	"github.com/matzehuels/lodviz/pkg/pipeline"
)

type downsampleFlags struct {
	output    string
	algorithm string
	threshold int
	noCache   bool
}

// downsampleCommand creates the downsample command, which reduces every
// series in a dataset document.
func (c *CLI) downsampleCommand() *cobra.Command {
	var flags downsampleFlags

	cmd := &cobra.Command{
		Use:   "downsample <dataset.json>",
		Short: "Reduce the points of every series in a dataset",
		Long: `Reduce every series of a dataset document with LTTB or M4.

The dataset is {"series": [{"name": ..., "data": [[x, y], ...]}]}. The
reduced dataset is written in the same format.`,
		Example: `  lodviz downsample sensor.json -t 500
  lodviz downsample sensor.json -a m4 -t 800 -o reduced.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDownsample(cmd, args[0], &flags)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	fl.StringVarP(&flags.algorithm, "algorithm", "a", string(downsample.AlgoLTTB), "algorithm: none, lttb, m4")
	fl.IntVarP(&flags.threshold, "threshold", "t", 1000, "target points (lttb) or pixel columns (m4)")
	fl.BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runDownsample(cmd *cobra.Command, path string, flags *downsampleFlags) error {
	ds, err := lodio.ImportDataset(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.DownsampleOptions{
		Algorithm: downsample.Algorithm(flags.algorithm),
		Threshold: flags.threshold,
	}

	prog := newProgress(c.Logger)
	out := data.NewDataset()
	out.Series = make([]data.Series[data.DataPoint], len(ds.Series))
	hits := make([]bool, len(ds.Series))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, s := range ds.Series {
		g.Go(func() error {
			pts, hit, err := runner.Downsample(ctx, s.Data, opts)
			if err != nil {
				return err
			}
			reduced := data.NewSeries(s.Name, pts)
			reduced.Visible = s.Visible
			out.Series[i] = reduced
			hits[i] = hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if flags.output == "" {
		return lodio.WriteDataset(out, cmd.OutOrStdout())
	}

	f, err := os.Create(flags.output)
	if err != nil {
		return err
	}
	if err := lodio.WriteDataset(out, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	in, kept, cached := 0, 0, true
	for i, s := range ds.Series {
		in += len(s.Data)
		kept += len(out.Series[i].Data)
		cached = cached && hits[i]
	}
	prog.done("dataset written", "path", flags.output, "series", len(out.Series))
	printSuccess("Downsampled with %s", opts.Algorithm)
	printStats([]string{
		formatCount(len(out.Series)) + " series",
		formatCount(in) + " " + iconArrow + " " + formatCount(kept) + " points",
	}, cached && len(hits) > 0)
	printFile(flags.output)
	return nil
}
