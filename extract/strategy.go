package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/prospect"
)

// Strategy is one independent name-extraction pass. Strategies are weak on
// their own; the extractor unions an ordered list of them behind the shared
// validator, and earlier strategies win the role metadata on duplicates.
type Strategy struct {
	Name    string
	Extract func(page *prospect.Page) []prospect.Person
}

const (
	nameWord = `[A-Z][a-z]+(?:[-'][A-Za-z][a-z]*)?`
	// Lazy repetition keeps greedy captures from swallowing a following
	// role phrase into the name.
	nameSeq = nameWord + `(?:\s+` + nameWord + `){1,3}?`
	namePair = nameWord + `\s+` + nameWord
)

var (
	honorificPattern = regexp.MustCompile(`\bDr\.?\s+(` + nameSeq + `)`)

	qualificationPattern = regexp.MustCompile(
		`(` + nameSeq + `)[,\s]+\(?(BDS|BChD|BDentSc|DDS|DMD|MFDS|MJDF|MSc|BSc|PhD|MBA|RDH|FCA|ACCA)\b`)

	roleWords        = `Principal|Owner|Founder|Director|Partner|Proprietor`
	roleFirstPattern = regexp.MustCompile(`\b(` + roleWords + `)[:\s]\s*(` + nameSeq + `)`)
	roleAfterPattern = regexp.MustCompile(`\b(` + nameSeq + `)\s*[,\x{2013}\x{2014}-]?\s*\(?(` + roleWords + `)\b`)

	narrativePattern = regexp.MustCompile(
		`\b(?:[Ff]ounded|[Ss]tarted|[Ee]stablished)\s+by\s+(?:Dr\.?\s+)?(` + nameSeq + `)`)

	jobPhrases       = `Practice Manager|Office Manager|Practice Owner|Treatment Coordinator|Dental Nurse|Head Nurse|Receptionist|Hygienist|Dentist|Orthodontist|Therapist|Technician|[A-Z][a-z]+ist`
	proximityPattern = regexp.MustCompile(`\b(` + namePair + `)\s*[,\x{2013}\x{2014}-]?\s*\(?(` + jobPhrases + `)\b`)

	regulatorPattern = regexp.MustCompile(
		`\b(` + namePair + `)[^.]{0,40}?\bGDC(?:\s*(?:No|Number|Reg(?:istration)?)\.?)?\s*[:#]?\s*\d{5,7}\b`)
)

// DefaultStrategies returns the built-in strategies in their default
// precedence order: summary metadata first (curated, least noisy), then
// qualification, title-first, narrative, proximity and regulatory passes.
// The order is a tunable default; pass a reordered list to
// NewPersonExtractor to change it.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "summary", Extract: summaryStrategy},
		{Name: "qualification", Extract: qualificationStrategy},
		{Name: "title-first", Extract: titleFirstStrategy},
		{Name: "narrative", Extract: narrativeStrategy},
		{Name: "proximity", Extract: proximityStrategy},
		{Name: "regulatory", Extract: regulatoryStrategy},
	}
}

// summaryStrategy reads names following a Dr honorific out of the page's
// meta description.
func summaryStrategy(page *prospect.Page) []prospect.Person {
	var out []prospect.Person
	for _, m := range honorificPattern.FindAllStringSubmatch(page.Summary, -1) {
		out = append(out, prospect.Person{Name: m[1], Title: "Dr"})
	}
	return out
}

// qualificationStrategy finds names immediately followed by a post-nominal
// credential; the credential becomes the role.
func qualificationStrategy(page *prospect.Page) []prospect.Person {
	var out []prospect.Person
	for _, m := range qualificationPattern.FindAllStringSubmatch(page.VisibleText, -1) {
		out = append(out, prospect.Person{Name: m[1], Title: m[2]})
	}
	return out
}

// titleFirstStrategy finds a role word adjacent to a name, in either order.
func titleFirstStrategy(page *prospect.Page) []prospect.Person {
	var out []prospect.Person
	for _, m := range roleFirstPattern.FindAllStringSubmatch(page.VisibleText, -1) {
		out = append(out, prospect.Person{Name: m[2], Title: m[1]})
	}
	for _, m := range roleAfterPattern.FindAllStringSubmatch(page.VisibleText, -1) {
		out = append(out, prospect.Person{Name: m[1], Title: m[2]})
	}
	return out
}

// narrativeStrategy finds names after biographical verb phrases like
// "founded by"; the role defaults to Founder.
func narrativeStrategy(page *prospect.Page) []prospect.Person {
	var out []prospect.Person
	for _, m := range narrativePattern.FindAllStringSubmatch(page.VisibleText, -1) {
		out = append(out, prospect.Person{Name: m[1], Title: "Founder"})
	}
	return out
}

// proximityStrategy finds two-word capitalized sequences immediately
// followed by a known job-title phrase or an open-ended trade noun.
func proximityStrategy(page *prospect.Page) []prospect.Person {
	var out []prospect.Person
	for _, m := range proximityPattern.FindAllStringSubmatch(page.VisibleText, -1) {
		out = append(out, prospect.Person{Name: m[1], Title: strings.TrimSpace(m[2])})
	}
	return out
}

// regulatoryStrategy finds two-word capitalized sequences shortly before a
// professional register number.
func regulatoryStrategy(page *prospect.Page) []prospect.Person {
	var out []prospect.Person
	for _, m := range regulatorPattern.FindAllStringSubmatch(page.VisibleText, -1) {
		out = append(out, prospect.Person{Name: m[1], Title: "Professional"})
	}
	return out
}
