package scrape

// DefaultSecondaryPaths returns the path suffixes tried after the home page,
// in priority order. The list is bounded and not extensible at call time;
// about/team-style pages come before contact pages because they name people,
// which are scarcer than addresses.
func DefaultSecondaryPaths() []string {
	return []string{
		"/about",
		"/about-us",
		"/our-team",
		"/team",
		"/meet-the-team",
		"/staff",
		"/people",
		"/contact",
		"/contact-us",
		"/blog",
	}
}
