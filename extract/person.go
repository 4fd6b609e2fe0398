package extract

import (
	"strings"

	"github.com/fwojciec/prospect"
)

// PersonExtractor runs an ordered list of strategies over a page and unions
// their candidates behind the shared name validator.
type PersonExtractor struct {
	strategies []Strategy
}

// NewPersonExtractor creates a PersonExtractor. With no arguments the
// default strategy order is used; pass a reordered or reduced list to tune
// precedence.
func NewPersonExtractor(strategies ...Strategy) *PersonExtractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &PersonExtractor{strategies: strategies}
}

// Persons extracts person candidates from the page. Candidates are
// deduplicated case-insensitively by full name; the first occurrence in
// strategy order wins the role metadata. A strategy that panics on
// malformed input is skipped without affecting the others.
func (e *PersonExtractor) Persons(page *prospect.Page) []prospect.Person {
	seen := make(map[string]bool)
	var out []prospect.Person

	for _, s := range e.strategies {
		for _, cand := range runStrategy(s, page) {
			name := strings.Join(strings.Fields(cand.Name), " ")
			if !ValidName(name) {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true

			first, last := splitName(name)
			out = append(out, prospect.Person{
				Name:      name,
				FirstName: first,
				LastName:  last,
				Title:     cand.Title,
			})
		}
	}
	return out
}

// runStrategy isolates strategy panics so one failing pass never aborts the
// rest of the extraction.
func runStrategy(s Strategy, page *prospect.Page) (out []prospect.Person) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return s.Extract(page)
}
