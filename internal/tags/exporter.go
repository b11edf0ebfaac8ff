package tags

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"aerotags/internal/model"
	"aerotags/internal/subgraph"
)

// SupportedChainID is Base, the only chain the Aerodrome subgraph covers.
const SupportedChainID uint64 = 8453

// ExportConfig holds runtime settings for one export run.
type ExportConfig struct {
	ChainID     uint64
	APIKey      string
	SubgraphURL string // optional endpoint override, default is the gateway URL
	PageSize    int
	HTTPTimeout time.Duration
}

// Export returns every contract tag for the configured chain, fully paged
// and deduplicated in source order. Configuration errors fail before any
// network activity.
func Export(ctx context.Context, cfg ExportConfig, logger *zap.Logger) ([]model.ContractTag, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ChainID != SupportedChainID {
		return nil, fmt.Errorf("unsupported chain id %d: this subgraph covers chain %d", cfg.ChainID, SupportedChainID)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	url := cfg.SubgraphURL
	if url == "" {
		url = subgraph.GatewayURL(cfg.APIKey, subgraph.AerodromeBaseSubgraphID)
	}

	client := subgraph.NewClient(url, cfg.HTTPTimeout, logger)
	driver := NewDriver(client, cfg.ChainID, cfg.PageSize, logger)
	return driver.Run(ctx)
}
