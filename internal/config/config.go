package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	SubgraphID  string
	SubgraphURL string
	APIKey      string
	ChainID     uint64
	PageSize    int
	HTTPTimeout time.Duration
	Out         string
	Format      string
	PGDSN       string
	LogLevel    string
}

// Load merges config file, environment variables, and flags into Config.
// The API key is also read from AEROTAGS_API_KEY.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AEROTAGS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain-id", uint64(8453))
	v.SetDefault("page-size", 1000)
	v.SetDefault("http-timeout", 30*time.Second)
	v.SetDefault("out", "./data/tags.jsonl")
	v.SetDefault("format", "jsonl")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		SubgraphID:  v.GetString("subgraph-id"),
		SubgraphURL: v.GetString("subgraph-url"),
		APIKey:      v.GetString("api-key"),
		ChainID:     v.GetUint64("chain-id"),
		PageSize:    v.GetInt("page-size"),
		HTTPTimeout: v.GetDuration("http-timeout"),
		Out:         v.GetString("out"),
		Format:      v.GetString("format"),
		PGDSN:       v.GetString("pg-dsn"),
		LogLevel:    v.GetString("log-level"),
	}

	return cfg, nil
}
