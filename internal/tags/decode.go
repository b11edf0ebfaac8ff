package tags

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var hexSymbolPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{64}$`)

const (
	minSymbolLen = 2
	maxSymbolLen = 32
)

// DecodeSymbol normalizes a raw token symbol or name. Tokens that store
// metadata as bytes32 surface it as 64 hex characters; those are decoded to
// text with the null padding removed. Characters outside the printable ASCII
// range are always stripped and the trimmed result must be 2 to 32
// characters long, otherwise the empty string signals an unusable value.
func DecodeSymbol(raw string) string {
	text := raw
	if hexSymbolPattern.MatchString(raw) {
		text = strings.ReplaceAll(string(common.FromHex(raw)), "\x00", "")
	}

	var b strings.Builder
	for _, r := range text {
		if r >= 0x02 && r <= 0x7f {
			b.WriteRune(r)
		}
	}
	text = strings.TrimSpace(b.String())

	if len(text) < minSymbolLen || len(text) > maxSymbolLen {
		return ""
	}
	return text
}
