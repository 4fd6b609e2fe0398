package extract

import (
	"regexp"
	"strings"
)

// registrationPattern matches company registration statements commonly found
// in small-business site footers.
var registrationPattern = regexp.MustCompile(
	`(?i)\b(?:company|registration|registered in england(?:\s+(?:and|&)\s+wales)?)[^0-9]{0,25}?(\d{6,8})\b`)

// addressPattern captures the text following a registered office/address
// label up to the next sentence break.
var addressPattern = regexp.MustCompile(
	`(?i)registered\s+(?:office|address)\s*[:\s]\s*([0-9A-Za-z][^.|]{8,120})`)

// RegistrationID returns a registration identifier detected in the text, or
// an empty string. Best effort; only the first match is reported.
func RegistrationID(text string) string {
	m := registrationPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// RegisteredAddress returns a registered address detected in the text, or an
// empty string. Best effort; only the first match is reported.
func RegisteredAddress(text string) string {
	m := addressPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(m[1]), ",;")
}
