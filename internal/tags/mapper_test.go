package tags

import (
	"reflect"
	"strings"
	"testing"

	"aerotags/internal/model"
)

func TestMapPool(t *testing.T) {
	pool := model.Pool{
		ID:                 "0x1111111111111111111111111111111111111111",
		CreatedAtTimestamp: 1693496112,
		Token0:             model.Token{ID: "0xa", Name: "Wrapped Ether", Symbol: "WETH"},
		Token1:             model.Token{ID: "0xb", Name: "USD Coin", Symbol: "USDC"},
		Ticks:              ticksOf("-200", "-100", "0", "100"),
		FeeTier:            "500",
	}

	got := MapPool(8453, pool)
	want := model.ContractTag{
		ContractAddress: "eip155:8453:0x1111111111111111111111111111111111111111",
		PublicNameTag:   "Aerodrome: CL100 WETH/USDC (5 %)",
		ProjectName:     "Aerodrome",
		Website:         "https://aerodrome.finance",
		PublicNote:      "The Aerodrome CL100 pool contract for the WETH/USDC pair, charging a 5 % trading fee.",
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tag mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestMapPoolUnknownSpacing(t *testing.T) {
	pool := model.Pool{
		ID:      "0xcc",
		Token0:  model.Token{Symbol: "AERO"},
		Token1:  model.Token{Symbol: "WETH"},
		Ticks:   ticksOf("5"),
		FeeTier: "250",
	}

	got := MapPool(8453, pool)
	if !strings.Contains(got.PublicNameTag, "CL? ") {
		t.Fatalf("unknown spacing should label CL?: %s", got.PublicNameTag)
	}
	if !strings.Contains(got.PublicNameTag, "(2.50 %)") {
		t.Fatalf("fee label mismatch: %s", got.PublicNameTag)
	}
}

func TestMapPoolLongSymbolsTruncatedInTagOnly(t *testing.T) {
	long := strings.Repeat("A", 44)
	pool := model.Pool{
		ID:      "0xdd",
		Token0:  model.Token{Symbol: long},
		Token1:  model.Token{Symbol: "B"},
		FeeTier: "3000",
	}

	got := MapPool(8453, pool)
	if !strings.Contains(got.PublicNameTag, strings.Repeat("A", 42)+"...") {
		t.Fatalf("name tag should truncate pair: %s", got.PublicNameTag)
	}
	// The note keeps the raw, untruncated symbols.
	if !strings.Contains(got.PublicNote, long+"/B") {
		t.Fatalf("note should keep raw symbols: %s", got.PublicNote)
	}
}
