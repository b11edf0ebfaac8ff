package tags

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"aerotags/internal/model"
)

type fakeSource struct {
	pages   [][]model.Pool
	cursors []int64
	err     error
	errAt   int
}

func (f *fakeSource) PoolsCreatedAfter(_ context.Context, cursor int64, _ int) ([]model.Pool, error) {
	call := len(f.cursors)
	f.cursors = append(f.cursors, cursor)
	if f.err != nil && call == f.errAt {
		return nil, f.err
	}
	if call >= len(f.pages) {
		return nil, nil
	}
	return f.pages[call], nil
}

func makePools(n int, startTS int64) []model.Pool {
	pools := make([]model.Pool, 0, n)
	for i := 0; i < n; i++ {
		pools = append(pools, model.Pool{
			ID:                 fmt.Sprintf("0x%040x", startTS+int64(i)),
			CreatedAtTimestamp: model.Timestamp(startTS + int64(i)),
			Token0:             model.Token{Name: "Wrapped Ether", Symbol: "WETH"},
			Token1:             model.Token{Name: "USD Coin", Symbol: "USDC"},
			Ticks:              ticksOf("0", "100"),
			FeeTier:            "500",
		})
	}
	return pools
}

func TestDriverPagesUntilShortPage(t *testing.T) {
	source := &fakeSource{pages: [][]model.Pool{
		makePools(1000, 1),
		makePools(400, 2001),
	}}

	driver := NewDriver(source, SupportedChainID, 1000, nil)
	tags, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(source.cursors) != 2 {
		t.Fatalf("expected 2 fetches, got %d", len(source.cursors))
	}
	if source.cursors[0] != 0 {
		t.Fatalf("initial cursor should be 0, got %d", source.cursors[0])
	}
	// Page 1 holds timestamps 1..1000, so the second fetch starts after 1000.
	if source.cursors[1] != 1000 {
		t.Fatalf("cursor should advance to last raw timestamp, got %d", source.cursors[1])
	}
	if len(tags) != 1400 {
		t.Fatalf("expected 1400 tags, got %d", len(tags))
	}
	if tags[0].ContractAddress != fmt.Sprintf("eip155:8453:0x%040x", 1) {
		t.Fatalf("first tag out of order: %s", tags[0].ContractAddress)
	}
}

func TestDriverDeduplicatesWithoutBreakingContinuation(t *testing.T) {
	page1 := makePools(1000, 1)
	// Two raw pools mapping to the same contract address: the duplicate is
	// dropped from output, the raw page still counts as full.
	page1[999].ID = page1[0].ID
	source := &fakeSource{pages: [][]model.Pool{page1, makePools(1, 5000)}}

	driver := NewDriver(source, SupportedChainID, 1000, nil)
	tags, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(source.cursors) != 2 {
		t.Fatalf("duplicate must not suppress continuation, got %d fetches", len(source.cursors))
	}
	if len(tags) != 1000 {
		t.Fatalf("expected 999+1 tags, got %d", len(tags))
	}
}

func TestDriverRejectsAndLogsInvalidPools(t *testing.T) {
	page := makePools(3, 1)
	page[1].Token0.Name = "<script>alert(1)</script>"
	source := &fakeSource{pages: [][]model.Pool{page}}

	core, logs := observer.New(zap.WarnLevel)
	driver := NewDriver(source, SupportedChainID, 1000, zap.New(core))

	tags, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags after rejection, got %d", len(tags))
	}

	entries := logs.FilterMessage("pool rejected").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 rejection log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if !strings.Contains(fields["token0_name"].(string), "<script>") {
		t.Fatalf("rejection log should carry offending name: %v", fields)
	}
}

func TestDriverAbortsOnFetchError(t *testing.T) {
	source := &fakeSource{
		pages: [][]model.Pool{makePools(1000, 1)},
		err:   errors.New("boom"),
		errAt: 1,
	}

	driver := NewDriver(source, SupportedChainID, 1000, nil)
	tags, err := driver.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error from second fetch")
	}
	if !errors.Is(err, source.err) {
		t.Fatalf("error should wrap source error: %v", err)
	}
	if tags != nil {
		t.Fatalf("no partial result on failure, got %d tags", len(tags))
	}
}

func TestDriverEmptyFirstPage(t *testing.T) {
	source := &fakeSource{}
	driver := NewDriver(source, SupportedChainID, 1000, nil)

	tags, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %d", len(tags))
	}
	if len(source.cursors) != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", len(source.cursors))
	}
}

func TestDriverTerminatesOnOversizedPage(t *testing.T) {
	source := &fakeSource{pages: [][]model.Pool{
		makePools(1001, 1),
		makePools(1, 5000),
	}}

	driver := NewDriver(source, SupportedChainID, 1000, nil)
	tags, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(source.cursors) != 1 {
		t.Fatalf("oversized page must end the run, got %d fetches", len(source.cursors))
	}
	if len(tags) != 1001 {
		t.Fatalf("expected 1001 tags, got %d", len(tags))
	}
}

func TestDriverContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := NewDriver(&fakeSource{}, SupportedChainID, 1000, nil)
	if _, err := driver.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
