// Package pkg holds the libraries behind lodviz, a chart computation
// kernel that turns tabular data into screen-ready geometry.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. core - pure numeric kernel (scales, downsampling, statistics,
//     stacking, arcs, hit testing, tidy tables, chart specs)
//  2. infrastructure - caching, chart storage, errors, observability,
//     JSON I/O, HTTP helpers
//  3. pipeline - orchestration (load → encode → downsample → scale → geometry)
//
// # Architecture
//
// The typical data flow:
//
//	tidy table (JSON rows)
//	         ↓
//	    [core/table] (encoding → series, bar datasets)
//	         ↓
//	    [core/downsample] (LTTB, M4, OHLC thinning)
//	         ↓
//	    [core/scale] (linear, log, time, band scales and ticks)
//	         ↓
//	    [core/stats], [core/stack], [core/arc] (derived geometry)
//	         ↓
//	    chart result JSON
//
// # Quick Start
//
// Compute a line chart from a table:
//
//	import (
//	    "context"
//
//	    lodio "github.com/matzehuels/lodviz/pkg/io"
//	    "github.com/matzehuels/lodviz/pkg/core/table"
//	    "github.com/matzehuels/lodviz/pkg/pipeline"
//	)
//
//	t, _ := lodio.ImportTable("cpu.json")
//	res, _ := pipeline.Compute(context.Background(), t, pipeline.Options{
//	    Mark: pipeline.ChartLine,
//	    Encoding: table.NewEncoding(table.Temporal("ts"), table.Quantitative("cpu")),
//	    Downsample: pipeline.DownsampleOptions{Algorithm: "lttb", Threshold: 500},
//	})
//
// For repeated work, [pipeline.Runner] adds a result cache from [cache].
//
// # Packages
//
//   - [core/data]: points, series, datasets, marks
//   - [core/scale]: scales and tick generation
//   - [core/downsample]: series reduction
//   - [core/stats]: summaries, box plots, histograms, KDE, smoothing, OLS
//   - [core/stack]: stacked baselines and waterfalls
//   - [core/arc]: pie slices and radar vertices
//   - [core/interact]: nearest-point search and viewports
//   - [core/table]: tidy tables and encodings
//   - [core/chart]: validated chart specs
//   - [cache]: result caching (file, Redis)
//   - [storage]: chart documents (memory, file, MongoDB)
//   - [errors]: coded errors and input validation
//   - [observability]: pipeline, cache and HTTP hooks
//   - [io]: JSON import and export
//   - [httputil]: JSON responses and request IDs
//   - [pipeline]: chart computation and the caching runner
package pkg
