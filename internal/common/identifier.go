package common

import (
	"regexp"
	"strings"
)

// CollegeDomainSuffixes is the allow-list of academic email domain suffixes
// accepted for verification. Matching is a case-insensitive suffix match on
// the full address.
var CollegeDomainSuffixes = []string{
	".edu",
	".ac.uk",
	".ac.in",
	".edu.au",
	".ac.za",
	".ac.nz",
}

// emailPattern is deliberately minimal: something, an @, something, a dot,
// something. Full RFC 5322 validation buys nothing here since the domain
// allow-list is the real gate.
var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// IsCollegeEmail reports whether identifier looks like an email address and
// ends with one of the allow-listed academic domain suffixes.
func IsCollegeEmail(identifier string) bool {
	if !emailPattern.MatchString(identifier) {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(identifier))
	for _, suffix := range CollegeDomainSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// IsVerificationCode reports whether code is exactly six ASCII digits.
func IsVerificationCode(code string) bool {
	if len(code) != VerificationCodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
