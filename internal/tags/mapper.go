package tags

import (
	"fmt"

	"aerotags/internal/model"
)

const (
	projectName = "Aerodrome"
	projectURL  = "https://aerodrome.finance"
)

// labelPrefix names the pool kind, e.g. "CL100" for tick spacing 100 or
// "CL?" when the spacing cannot be inferred.
func labelPrefix(pool model.Pool) string {
	spacing, ok := TickSpacing(pool.Ticks)
	if !ok {
		return "CL?"
	}
	return fmt.Sprintf("CL%d", spacing)
}

// MapPool builds the contract tag for one pool on the given chain. The
// mapping is pure; malformed numeric fields degrade to "CL?" or "? %"
// labels rather than errors.
func MapPool(chainID uint64, pool model.Pool) model.ContractTag {
	prefix := labelPrefix(pool)
	fee := FormatFeeTier(pool.FeeTier)
	pair := SymbolPair(pool.Token0.Symbol, pool.Token1.Symbol)

	return model.ContractTag{
		ContractAddress: fmt.Sprintf("eip155:%d:%s", chainID, pool.ID),
		PublicNameTag:   fmt.Sprintf("%s: %s %s (%s)", projectName, prefix, pair, fee),
		ProjectName:     projectName,
		Website:         projectURL,
		PublicNote: fmt.Sprintf(
			"The %s %s pool contract for the %s/%s pair, charging a %s trading fee.",
			projectName, prefix, pool.Token0.Symbol, pool.Token1.Symbol, fee,
		),
	}
}
