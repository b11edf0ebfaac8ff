package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"aerotags/internal/config"
	"aerotags/internal/storage"
	"aerotags/internal/storage/postgres"
	"aerotags/internal/subgraph"
	"aerotags/internal/tags"
)

func main() {
	root := &cobra.Command{
		Use:          "aerotags",
		Short:        "Aerodrome contract tag exporter",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export contract tags for every Aerodrome pool",
		RunE:  runExport,
	}

	exportCmd.Flags().String("api-key", "", "The Graph gateway API key (or AEROTAGS_API_KEY)")
	exportCmd.Flags().String("subgraph-id", "", "subgraph id at the gateway, default is Aerodrome on Base")
	exportCmd.Flags().String("subgraph-url", "", "full subgraph endpoint, overrides subgraph-id")
	exportCmd.Flags().Uint64("chain-id", 8453, "chain id, must be Base")
	exportCmd.Flags().Int("page-size", 1000, "pools per page")
	exportCmd.Flags().Duration("http-timeout", 30*time.Second, "subgraph request timeout")
	exportCmd.Flags().String("out", "./data/tags.jsonl", "output path")
	exportCmd.Flags().String("format", "jsonl", "output format (jsonl, csv)")
	exportCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for tag upserts")
	exportCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(exportCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := cfg.SubgraphURL
	if url == "" && cfg.SubgraphID != "" {
		url = subgraph.GatewayURL(cfg.APIKey, cfg.SubgraphID)
	}

	logger.Info("export start",
		zap.Uint64("chain_id", cfg.ChainID),
		zap.Int("page_size", cfg.PageSize),
		zap.String("out", cfg.Out),
		zap.String("format", cfg.Format),
		zap.Bool("pg_enabled", cfg.PGDSN != ""),
	)

	exported, err := tags.Export(ctx, tags.ExportConfig{
		ChainID:     cfg.ChainID,
		APIKey:      cfg.APIKey,
		SubgraphURL: url,
		PageSize:    cfg.PageSize,
		HTTPTimeout: cfg.HTTPTimeout,
	}, logger)
	if err != nil {
		return err
	}

	sink, err := newSink(cfg)
	if err != nil {
		return err
	}
	if err := sink.PutTagBatch(exported); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.UpsertTags(ctx, exported); err != nil {
			return fmt.Errorf("upsert tags: %w", err)
		}
	}

	logger.Info("export complete", zap.Int("tags", len(exported)), zap.String("out", cfg.Out))
	return nil
}

func newSink(cfg config.Config) (storage.Storage, error) {
	switch cfg.Format {
	case "jsonl":
		return storage.NewJsonlStorage(cfg.Out), nil
	case "csv":
		return storage.NewCsvStorage(cfg.Out), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", cfg.Format)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
