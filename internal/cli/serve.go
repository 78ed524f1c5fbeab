package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketmaker/pkg/cache"
	"github.com/matzehuels/bracketmaker/pkg/config"
	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/observability"
	"github.com/matzehuels/bracketmaker/pkg/pipeline"
	"github.com/matzehuels/bracketmaker/pkg/server"
)

const redisKeyPrefix = appName + ":"

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Settings come from the environment, optionally loaded
from a .env file:

  BRACKETMAKER_ADDR          listen address (default :8080)
  BRACKETMAKER_REDIS_URL     redis:// URL of a shared cache (default: local file cache)
  BRACKETMAKER_CORS_ORIGINS  comma-separated allowed origins (default *)
  BRACKETMAKER_CACHE_TTL     cache entry lifetime, e.g. 24h (default per entry type)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			config.LoadDotEnv(envFiles(envFile)...)
			scfg, err := config.LoadServerConfig()
			if err != nil {
				return bmerrors.Wrap(bmerrors.ErrCodeInvalidConfig, err, "server environment")
			}
			if cmd.Flags().Changed("addr") {
				scfg.Addr = addr
			}

			var (
				store cache.Cache
				keyer cache.Keyer
			)
			if scfg.RedisURL != "" {
				rc, err := cache.NewRedisCache(ctx, scfg.RedisURL)
				if err != nil {
					return err
				}
				logger.Info("using redis cache")
				store = rc
				keyer = cache.NewScopedKeyer(nil, redisKeyPrefix)
			} else if store, err = newCache(false); err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, keyer, logger)
			runner.TTL = scfg.CacheTTL
			defer runner.Close()

			observability.NewLogHooks(logger).Install()
			defer observability.Reset()

			srv := server.New(runner, server.Options{
				Layout:      c.cfg.Layout,
				Date:        c.cfg.Date,
				Lenient:     c.cfg.Lenient,
				Columns:     c.cfg.Roster,
				CORSOrigins: scfg.CORSOrigins,
				Logger:      logger,
			})
			return srv.Run(ctx, scfg.Addr, scfg.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides BRACKETMAKER_ADDR)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "load environment from this file (default .env)")

	return cmd
}

func envFiles(name string) []string {
	if name == "" {
		return nil
	}
	return []string{name}
}
