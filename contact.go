package prospect

import (
	"context"
	"time"
)

// Person is an extracted (name, role) pair. A person is a candidate until
// the resolver pairs it with an email, at which point ClaimedEmail is set.
type Person struct {
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Title is the role attributed by the extraction strategy that first
	// produced this person, e.g. "Principal" or "Practice Manager".
	// Empty when no role could be attributed.
	Title string `json:"title,omitempty"`

	// ClaimedEmail is the address this person exclusively owns, set by the
	// resolver. Empty for unclaimed persons.
	ClaimedEmail string `json:"claimedEmail,omitempty"`
}

// Claimed reports whether the person owns an email address.
func (p *Person) Claimed() bool {
	return p.ClaimedEmail != ""
}

// Email is a normalized email candidate with a relevance rank.
// Lower ranks are better.
type Email struct {
	Address string `json:"address"`
	Rank    int    `json:"rank"`
}

// Email relevance ranks. Addresses on the business's own domain with a
// contact-style local part rank highest; addresses on foreign domains are
// kept but deprioritized, since small businesses legitimately use consumer
// mail providers.
const (
	RankOwnDomainContact = 1  // contact@/info@ on the business domain
	RankOwnDomainHello   = 2  // hello@/enquiries@ on the business domain
	RankOwnDomainOther   = 3  // anything else on the business domain
	RankForeignDomain    = 10 // any other domain
)

// Claim is an exclusive pairing of one person to one email. An email appears
// in at most one claim, and a person appears in at most one claim.
type Claim struct {
	Person string `json:"person"`
	Email  string `json:"email"`
}

// ScrapeResult is the aggregate output of one contact discovery run.
type ScrapeResult struct {
	// ID is assigned by the storage layer on save; empty until then.
	ID string `json:"id,omitempty"`

	// URL is the normalized home page URL the scrape started from.
	URL string `json:"url"`

	// Persons lists extracted persons with claimed persons first.
	Persons []Person `json:"persons"`

	// Emails lists candidate addresses in ascending rank order.
	Emails []Email `json:"emails"`

	// Claims lists the resolved person/email pairings.
	Claims []Claim `json:"claims"`

	// RegistrationID and RegisteredAddress are best-effort auxiliary fields
	// detected on the home page only.
	RegistrationID    string `json:"registrationId,omitempty"`
	RegisteredAddress string `json:"registeredAddress,omitempty"`

	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns EINVALID if the result is missing required fields.
func (r *ScrapeResult) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "result URL required")
	}
	return nil
}

// ContactDiscoverer produces a ScrapeResult for a business website.
// Implementations are stateless across invocations and safe to call
// concurrently for different businesses.
type ContactDiscoverer interface {
	DiscoverContacts(ctx context.Context, websiteURL string) (*ScrapeResult, error)
}

// ResultFilter selects scrape results. Nil pointer fields are ignored.
type ResultFilter struct {
	ID  *string
	URL *string

	Limit  int
	Offset int
}

// ResultService stores and retrieves scrape results.
type ResultService interface {
	// CreateResult persists a result, assigning its ID and normalizing
	// FetchedAt to UTC.
	CreateResult(ctx context.Context, result *ScrapeResult) error

	// FindResultByID retrieves one result, ENOTFOUND if absent.
	FindResultByID(ctx context.Context, id string) (*ScrapeResult, error)

	// FindResults retrieves results matching the filter, most recent first.
	FindResults(ctx context.Context, filter ResultFilter) ([]*ScrapeResult, error)
}
