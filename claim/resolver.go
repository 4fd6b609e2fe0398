// Package claim resolves which extracted person exclusively owns which
// extracted email address.
package claim

import (
	"sort"
	"strings"

	"github.com/fwojciec/prospect"
)

// Resolver matches persons to emails using a deterministic priority order:
// personal name-shaped local parts first, role-based local parts second.
// Resolution is a pure function of its inputs; the claimed-email ledger is
// local to a single Resolve call, so a Resolver is safe to share across
// concurrent scrapes.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve pairs persons with emails. Emails are expected in ascending rank
// order, as produced by extraction. Each email is claimable at most once; an
// address claimed by an earlier person is permanently removed from the pool
// for the remainder of the pass. The returned persons are reordered with
// claimed persons first (stable within each group).
func (r *Resolver) Resolve(persons []prospect.Person, emails []prospect.Email) ([]prospect.Person, []prospect.Claim) {
	out := make([]prospect.Person, len(persons))
	copy(out, persons)

	claimed := make(map[string]bool, len(emails))
	var claims []prospect.Claim

	for i := range out {
		p := &out[i]

		addr := firstMatch(emails, claimed, personalPatterns(p.FirstName, p.LastName))
		if addr == "" && p.Title != "" {
			addr = firstMatch(emails, claimed, rolePatterns(p.Title))
		}
		if addr == "" {
			continue
		}

		claimed[addr] = true
		p.ClaimedEmail = addr
		claims = append(claims, prospect.Claim{Person: p.Name, Email: addr})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Claimed() && !out[j].Claimed()
	})
	return out, claims
}

// firstMatch scans the unclaimed emails highest rank first and returns the
// first address whose local part matches any pattern.
func firstMatch(emails []prospect.Email, claimed map[string]bool, patterns []string) string {
	if len(patterns) == 0 {
		return ""
	}
	for _, e := range emails {
		if claimed[e.Address] {
			continue
		}
		local, _, ok := strings.Cut(e.Address, "@")
		if !ok {
			continue
		}
		for _, pat := range patterns {
			if local == pat {
				return e.Address
			}
		}
	}
	return ""
}

// personalPatterns derives the email local parts a person would plausibly
// use from their name, e.g. jane.smith, janesmith, jane, jsmith, j.smith.
func personalPatterns(first, last string) []string {
	first = strings.ToLower(strings.TrimSpace(first))
	last = strings.ToLower(strings.TrimSpace(last))
	if first == "" {
		return nil
	}
	if last == "" || last == first {
		return []string{first}
	}
	initial := first[:1]
	return []string{
		first + "." + last,
		first + last,
		first,
		initial + last,
		initial + "." + last,
	}
}

// rolePatterns maps a role to the generic local parts that role typically
// answers. Generic info@ is reachable only through the manager mapping so
// two staffers can never both claim it.
func rolePatterns(title string) []string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "manager") || strings.Contains(t, "coordinator"):
		return []string{"pm", "manager", "office", "info"}
	case strings.Contains(t, "owner") ||
		strings.Contains(t, "founder") ||
		strings.Contains(t, "principal") ||
		strings.Contains(t, "director") ||
		strings.Contains(t, "partner") ||
		strings.Contains(t, "proprietor"):
		return []string{"owner", "director", "ceo"}
	case strings.Contains(t, "reception"):
		return []string{"reception", "front"}
	default:
		return nil
	}
}
