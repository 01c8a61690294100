package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lodviz/internal/api"
	"github.com/matzehuels/lodviz/pkg/cache"
	"github.com/matzehuels/lodviz/pkg/pipeline"
	"github.com/matzehuels/lodviz/pkg/storage"
)

type serveFlags struct {
	addr    string
	redis   string
	mongo   string
	mongoDB string
	memory  bool
	noCache bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart API over HTTP",
		Long: `Serve the chart API over HTTP.

Results are cached in Redis when --redis (or ` + envRedisURL + `) is set and
in the local file cache otherwise. Computed charts are stored in MongoDB
when --mongo (or ` + envMongoURI + `) is set, in memory with --memory, and
as JSON files under the data directory otherwise.`,
		Example: `  lodviz serve
  lodviz serve --addr :9000 --redis redis://localhost:6379/0
  lodviz serve --mongo mongodb://localhost:27017 --mongo-db charts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &flags)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&flags.addr, "addr", ":8080", "listen address")
	fl.StringVar(&flags.redis, "redis", "", "Redis URL for the result cache")
	fl.StringVar(&flags.mongo, "mongo", "", "MongoDB URI for chart storage")
	fl.StringVar(&flags.mongoDB, "mongo-db", storage.DefaultMongoDatabase, "MongoDB database name")
	fl.BoolVar(&flags.memory, "memory", false, "keep charts in memory only")
	fl.BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags *serveFlags) error {
	ch, err := c.serveCache(ctx, flags)
	if err != nil {
		return err
	}
	c.installHooks()
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, "api"), c.Logger)
	defer runner.Close()

	store, err := openStore(ctx, flags)
	if err != nil {
		return err
	}
	defer store.Close()

	printInfo("Serving on %s", flags.addr)
	return api.New(runner, store, c.Logger).ListenAndServe(ctx, flags.addr)
}

func (c *CLI) serveCache(ctx context.Context, flags *serveFlags) (cache.Cache, error) {
	if flags.noCache {
		return cache.NewNullCache(), nil
	}
	if url := envOr(flags.redis, envRedisURL); url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	}
	return newCache(false)
}

// openStore selects the chart store: MongoDB, memory, or files under the
// data directory, in that order.
func openStore(ctx context.Context, flags *serveFlags) (storage.Store, error) {
	if uri := envOr(flags.mongo, envMongoURI); uri != "" {
		return storage.NewMongoStore(ctx, storage.MongoConfig{
			URI:      uri,
			Database: flags.mongoDB,
		})
	}
	if flags.memory {
		return storage.NewMemoryStore(), nil
	}
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return storage.NewFileStore(filepath.Join(dir, "charts"))
}
