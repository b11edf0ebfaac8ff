package tags

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"aerotags/internal/model"
)

const (
	maxPairLen       = 45
	truncatedPairLen = 42
)

// TickSpacing infers a pool's tick spacing as the minimum positive gap
// between consecutive initialized tick indices. Unparseable indices are
// skipped. The second return is false when fewer than two indices parse or
// no positive gap exists; an unknown spacing is never reported as zero.
func TickSpacing(ticks []model.Tick) (int64, bool) {
	values := make([]int64, 0, len(ticks))
	for _, tick := range ticks {
		v, err := strconv.ParseInt(strings.TrimSpace(tick.TickIdx), 10, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) < 2 {
		return 0, false
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	var spacing int64
	for i := 1; i < len(values); i++ {
		diff := values[i] - values[i-1]
		if diff > 0 && (spacing == 0 || diff < spacing) {
			spacing = diff
		}
	}
	if spacing == 0 {
		return 0, false
	}
	return spacing, true
}

// FormatFeeTier renders a basis-point fee tier as a percent label. Whole
// percents drop the decimals. Unparseable input renders as "? %".
func FormatFeeTier(feeTier string) string {
	bps, err := strconv.ParseInt(strings.TrimSpace(feeTier), 10, 64)
	if err != nil {
		return "? %"
	}
	if bps%100 == 0 {
		return fmt.Sprintf("%d %%", bps/100)
	}
	return fmt.Sprintf("%.2f %%", float64(bps)/100)
}

// SymbolPair joins two token symbols for display, truncating pairs that
// would overflow the tag column. Lengths are counted in runes so multibyte
// symbols are never sliced mid-character.
func SymbolPair(symbol0, symbol1 string) string {
	pair := strings.TrimSpace(symbol0) + "/" + strings.TrimSpace(symbol1)
	if utf8.RuneCountInString(pair) > maxPairLen {
		return string([]rune(pair)[:truncatedPairLen]) + "..."
	}
	return pair
}
