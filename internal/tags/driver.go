package tags

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"aerotags/internal/model"
)

// DefaultPageSize matches the subgraph's maximum page size. Continuation is
// decided on the raw page length, before validation and dedup filtering.
const DefaultPageSize = 1000

// PoolSource yields one page of pools created strictly after a timestamp
// cursor, ordered ascending by creation time.
type PoolSource interface {
	PoolsCreatedAfter(ctx context.Context, cursor int64, pageSize int) ([]model.Pool, error)
}

// Driver pages through a pool source and accumulates contract tags. One
// Driver serves a single run; its cursor, dedup set, and accumulator are
// discarded with it.
type Driver struct {
	source   PoolSource
	chainID  uint64
	pageSize int
	logger   *zap.Logger

	cursor int64
	seen   map[string]struct{}
	tags   []model.ContractTag
}

// NewDriver builds a Driver for one export run.
func NewDriver(source PoolSource, chainID uint64, pageSize int, logger *zap.Logger) *Driver {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		source:   source,
		chainID:  chainID,
		pageSize: pageSize,
		logger:   logger,
		seen:     make(map[string]struct{}),
	}
}

// Run fetches pages sequentially until a short page signals end-of-data and
// returns the accumulated tags. Any fetch or parse error aborts the run
// with no partial result and no retry.
func (d *Driver) Run(ctx context.Context) ([]model.ContractTag, error) {
	if d.source == nil {
		return nil, fmt.Errorf("pool source is nil")
	}

	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pools, err := d.source.PoolsCreatedAfter(ctx, d.cursor, d.pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch pools after %d: %w", d.cursor, err)
		}

		added := d.collect(pools)
		d.logger.Info("page complete",
			zap.Int("page", page),
			zap.Int("pools", len(pools)),
			zap.Int("tags", added),
			zap.Int64("cursor", d.cursor),
		)

		// Continuation requires an exact full page; anything else, including
		// an overlong page from a misbehaving source, ends the run.
		if len(pools) != d.pageSize {
			return d.tags, nil
		}
		d.cursor = int64(pools[len(pools)-1].CreatedAtTimestamp)
	}
}

// collect maps one raw page into tags, dropping invalid pools and duplicate
// contract addresses. It returns the number of tags appended.
func (d *Driver) collect(pools []model.Pool) int {
	added := 0
	for _, pool := range pools {
		if InvalidPool(pool) {
			d.logger.Warn("pool rejected",
				zap.String("pool", pool.ID),
				zap.String("token0_name", pool.Token0.Name),
				zap.String("token0_symbol", pool.Token0.Symbol),
				zap.String("token1_name", pool.Token1.Name),
				zap.String("token1_symbol", pool.Token1.Symbol),
			)
			continue
		}

		tag := MapPool(d.chainID, pool)
		if _, ok := d.seen[tag.ContractAddress]; ok {
			continue
		}
		d.seen[tag.ContractAddress] = struct{}{}
		d.tags = append(d.tags, tag)
		added++
	}
	return added
}
