package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/kvlru/internal/config"
	"github.com/bnema/kvlru/internal/logging"
	"github.com/bnema/kvlru/internal/server"
	"github.com/bnema/kvlru/lru"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var (
		listen   string
		capacity int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cache server",
		Long: `Run the kvlru cache server.

Configuration is read from config.toml (see 'kvlru config init'), with
KVLRU_* environment variables and the flags below taking precedence.
The capacity is fixed for the lifetime of the server; changing it in the
config file requires a restart.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}
			if err := mgr.Load(); err != nil {
				return err
			}
			cfg := mgr.Get()

			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = listen
			}
			if cmd.Flags().Changed("capacity") {
				cfg.Cache.Capacity = capacity
			}

			log := logging.New(logging.Config{
				Level:      logging.ParseLevel(cfg.Logging.Level),
				Format:     cfg.Logging.Format,
				TimeFormat: logging.DefaultConfig().TimeFormat,
			})
			ctx := logging.WithContext(cmd.Context(), log)
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := lru.NewSynced[string, string](cfg.Cache.Capacity)
			if err != nil {
				return fmt.Errorf("failed to create cache: %w", err)
			}

			stats := server.NewStats()
			store.OnEvict(func(key, _ string) {
				stats.RecordEviction()
				log.Debug().Str("key", key).Msg("evicted least recently used entry")
			})

			// Capacity is immutable after construction; a config change can
			// only take effect on restart, so just surface it.
			mgr.OnChange(func(newCfg *config.Config) {
				if newCfg.Cache.Capacity != cfg.Cache.Capacity {
					log.Warn().
						Int("running", cfg.Cache.Capacity).
						Int("configured", newCfg.Cache.Capacity).
						Msg("cache.capacity changed on disk; restart to apply")
				}
			})
			if err := mgr.Watch(); err != nil {
				log.Warn().Err(err).Msg("config watching disabled")
			}

			srv := server.New(store, stats, server.Options{
				Listen:          cfg.Server.Listen,
				ReadTimeout:     cfg.Server.ReadTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Cache capacity (overrides config)")

	return cmd
}

func init() {
	rootCmd.AddCommand(NewServeCmd())
}
