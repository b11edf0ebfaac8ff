package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"aerotags/internal/model"
)

// AerodromeBaseSubgraphID identifies the Aerodrome concentrated-liquidity
// subgraph for Base at The Graph's decentralized gateway.
const AerodromeBaseSubgraphID = "GENunSHWLBXm59mBSgPzQ8metBEp9YDfdqwFr91Av1UM"

const defaultTimeout = 30 * time.Second

// GatewayURL builds The Graph gateway endpoint for a subgraph id.
func GatewayURL(apiKey, subgraphID string) string {
	return fmt.Sprintf("https://gateway.thegraph.com/api/%s/subgraphs/id/%s", apiKey, subgraphID)
}

const poolsQuery = `query Pools($cursor: BigInt!, $first: Int!) {
  pools(
    first: $first
    where: { createdAtTimestamp_gt: $cursor }
    orderBy: createdAtTimestamp
    orderDirection: asc
  ) {
    id
    createdAtTimestamp
    feeTier
    token0 { id name symbol }
    token1 { id name symbol }
    ticks { tickIdx }
  }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type poolsEnvelope struct {
	Data *struct {
		Pools []model.Pool `json:"pools"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// Client queries a pools subgraph over HTTP. One request is issued per call
// and every failure is final for the caller's run.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

// NewClient builds a subgraph client for the given endpoint.
func NewClient(url string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     logger,
	}
}

// PoolsCreatedAfter returns up to pageSize pools created strictly after the
// cursor timestamp, ordered ascending by creation time.
func (c *Client) PoolsCreatedAfter(ctx context.Context, cursor int64, pageSize int) ([]model.Pool, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query: poolsQuery,
		Variables: map[string]interface{}{
			"cursor": strconv.FormatInt(cursor, 10),
			"first":  pageSize,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query subgraph: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("subgraph status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var envelope poolsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		for _, entry := range envelope.Errors {
			c.logger.Error("subgraph error", zap.String("message", entry.Message))
		}
		return nil, fmt.Errorf("subgraph returned %d errors", len(envelope.Errors))
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("subgraph response missing data")
	}

	return envelope.Data.Pools, nil
}
