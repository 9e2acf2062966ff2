package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridspace/internal/api"
	"github.com/matzehuels/gridspace/pkg/cache"
	"github.com/matzehuels/gridspace/pkg/observability"
	"github.com/matzehuels/gridspace/pkg/pipeline"
	"github.com/matzehuels/gridspace/pkg/store"
)

// serveFlags holds the command-line flags of the serve command.
type serveFlags struct {
	addr       string
	configPath string
	redisURL   string
	keyPrefix  string
	mongoURI   string
	mongoDB    string
	collection string
	noHookLogs bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	flags := serveFlags{
		addr:       ":8080",
		keyPrefix:  appName + ":",
		mongoDB:    appName,
		collection: "layouts",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Computed layouts are cached in Redis when --redis-url is set and are not
cached otherwise. Stored layouts go to MongoDB when --mongo-uri is set and to
process memory otherwise.

The URLs may also come from REDIS_URL and MONGODB_URI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.redisURL == "" {
				flags.redisURL = os.Getenv("REDIS_URL")
			}
			if flags.mongoURI == "" {
				flags.mongoURI = os.Getenv("MONGODB_URI")
			}
			return c.runServe(cmd.Context(), newPrinter(cmd.OutOrStdout()), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", flags.addr, "listen address")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "default spacing config file (TOML)")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "Redis URL for the layout cache")
	cmd.Flags().StringVar(&flags.keyPrefix, "key-prefix", flags.keyPrefix, "prefix of Redis cache keys")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo-uri", "", "MongoDB URI for stored layouts")
	cmd.Flags().StringVar(&flags.mongoDB, "mongo-db", flags.mongoDB, "MongoDB database")
	cmd.Flags().StringVar(&flags.collection, "mongo-collection", flags.collection, "MongoDB collection")
	cmd.Flags().BoolVar(&flags.noHookLogs, "quiet-hooks", false, "do not log pipeline, cache and request events")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, out *printer, flags serveFlags) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	var (
		layoutCache cache.Cache = cache.NewNullCache()
		keyer                   = cache.NewDefaultKeyer()
	)
	if flags.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, flags.redisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		layoutCache = rc
		keyer = cache.NewScopedKeyer(keyer, flags.keyPrefix)
		logger.Info("using redis cache", "prefix", flags.keyPrefix)
	}
	runner := pipeline.NewRunner(layoutCache, keyer, logger)
	defer runner.Close()

	var st store.Store = store.NewMemoryStore()
	if flags.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        flags.mongoURI,
			Database:   flags.mongoDB,
			Collection: flags.collection,
		})
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		st = ms
		logger.Info("using mongodb store", "db", flags.mongoDB, "collection", flags.collection)
	}
	defer st.Close(context.WithoutCancel(ctx))

	if !flags.noHookLogs {
		hooks := observability.NewLogHooks(logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
		defer observability.Reset()
	}

	srv := api.New(api.Config{
		Runner:   runner,
		Store:    st,
		Logger:   logger,
		Defaults: cfg,
	})
	out.info("Serving on %s", flags.addr)
	return srv.ListenAndServe(ctx, flags.addr)
}
