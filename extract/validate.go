package extract

import (
	"regexp"
	"strings"
)

// Display name length bounds.
const (
	minNameLen = 5
	maxNameLen = 40
)

// nameWordShape matches a single ordinary name word, allowing O'Brien and
// Smith-Jones forms.
var nameWordShape = regexp.MustCompile(`^[A-Z][a-z]*(?:['-][A-Za-z][a-z]+)*$`)

// sentenceOpeners are capitalized words that start sentences and marketing
// copy far more often than they start names. A candidate whose first word is
// one of these is a sentence fragment, not a person.
var sentenceOpeners = map[string]bool{
	"The": true, "Our": true, "We": true, "This": true, "Your": true,
	"About": true, "Contact": true, "Meet": true, "Welcome": true,
	"All": true, "New": true, "Here": true, "Why": true, "How": true,
	"What": true, "When": true, "Where": true, "Book": true, "Call": true,
	"Visit": true, "Opening": true, "Find": true, "Get": true, "From": true,
	"Chartered": true, "General": true, "Private": true, "Family": true,
	"Emergency": true, "Cosmetic": true, "Digital": true, "Registered": true,
}

// organizationalNouns end business phrases, not surnames.
var organizationalNouns = map[string]bool{
	"Management": true, "Team": true, "Practice": true, "Dental": true,
	"Clinic": true, "Surgery": true, "Care": true, "Centre": true,
	"Center": true, "Group": true, "Associates": true, "Services": true,
	"Solutions": true, "Studio": true, "House": true, "Street": true,
	"Road": true, "Lane": true, "Company": true, "Ltd": true,
	"Limited": true, "Partners": true, "Partnership": true,
}

// qualificationSurnames are post-nominal credentials that pattern matches
// sometimes mistake for surnames when they appear in mixed case.
var qualificationSurnames = map[string]bool{
	"Bds": true, "Dds": true, "Dmd": true, "Msc": true, "Bsc": true,
	"Phd": true, "Mba": true, "Gdc": true, "Mfds": true, "Mjdf": true,
}

// ValidName reports whether a display name looks like a real person's name:
// 2-4 capitalized word-shaped tokens within length bounds, not opening with
// a sentence word, not ending in an organizational noun or a credential
// mistaken for a surname.
func ValidName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < minNameLen || len(name) > maxNameLen {
		return false
	}

	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if len(w) < 2 || !nameWordShape.MatchString(w) {
			return false
		}
	}

	if sentenceOpeners[words[0]] {
		return false
	}
	last := words[len(words)-1]
	if organizationalNouns[last] || qualificationSurnames[last] {
		return false
	}
	return true
}

// splitName derives first and last name components from a display name.
func splitName(name string) (first, last string) {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "", ""
	}
	first = words[0]
	if len(words) > 1 {
		last = words[len(words)-1]
	}
	return first, last
}
