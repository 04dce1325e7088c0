package wiki

import (
	"fmt"
	"regexp"
)

// wikiWordPattern matches bicapitalized words: an initial capitalized
// fragment followed by at least one more fragment starting with a capital.
// Trailing digits inside non-head fragments are accepted (PlanB2 links).
var wikiWordPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:[A-Z][A-Za-z0-9]*)+\b`)

// linkWikiWords rewrites every bicapitalized word in text into an anchor
// whose CSS class reflects the classification of the referenced name. The
// input text itself is never mutated in storage; only the rendered view is.
func linkWikiWords(text string, classify func(name string) Classification) string {
	return wikiWordPattern.ReplaceAllStringFunc(text, func(match string) string {
		return fmt.Sprintf(`<a class="%s" href="/%s">%s</a>`, classify(match), match, match)
	})
}
