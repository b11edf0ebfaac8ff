package tags

import (
	"regexp"

	"aerotags/internal/model"
)

var markupPattern = regexp.MustCompile(`<[^<>]*>`)

// ContainsMarkup reports whether a token name or symbol carries HTML or
// Markdown tag-like content that must not reach published tags.
func ContainsMarkup(text string) bool {
	return markupPattern.MatchString(text)
}

// InvalidPool reports whether either token of a pool fails name or symbol
// validation. A pool failing here is dropped whole.
func InvalidPool(pool model.Pool) bool {
	return ContainsMarkup(pool.Token0.Name) || ContainsMarkup(pool.Token0.Symbol) ||
		ContainsMarkup(pool.Token1.Name) || ContainsMarkup(pool.Token1.Symbol)
}
