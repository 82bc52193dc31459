package credits

import (
	"regexp"
	"strings"
)

// creditPattern captures everything up to the last parenthesized group as
// the name and that group's content as the role list. Names may themselves
// carry a Discogs disambiguation number in parentheses, so the final group
// is the role list: "Joel Ross (3) (Performer, Vibraphone)" parses to the
// name "Joel Ross (3)".
var creditPattern = regexp.MustCompile(`^(.*\S)\s*\(([^()]*)\)$`)

// disambiguationSuffix matches a trailing Discogs disambiguation number.
var disambiguationSuffix = regexp.MustCompile(`\s*\(\d+\)$`)

// ParseCredit splits a formatted credit string into the contributor name
// and its role tokens. Malformed input (no trailing parenthesized group)
// yields the whole trimmed string as the name with no roles.
func ParseCredit(credit string) (string, []string) {
	trimmed := strings.TrimSpace(credit)
	match := creditPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return trimmed, nil
	}

	name := strings.TrimSpace(match[1])
	// A bare disambiguation number is part of the name, not a role list:
	// "Joel Ross (3)" has no roles.
	if isDisambiguation(match[2]) {
		return trimmed, nil
	}

	var roles []string
	for _, role := range strings.Split(match[2], ",") {
		role = strings.TrimSpace(role)
		if role != "" {
			roles = append(roles, role)
		}
	}
	return name, roles
}

// FormatCredit renders a credit back into the canonical "Name (R1, R2)"
// form. A credit with no roles is just the name.
func FormatCredit(name string, roles []string) string {
	name = strings.TrimSpace(name)
	if len(roles) == 0 {
		return name
	}
	return name + " (" + strings.Join(roles, ", ") + ")"
}

// CleanDisplayName strips a trailing disambiguation number for
// presentation ("Joel Ross (3)" becomes "Joel Ross"). The numbered form
// remains the identity everywhere else: category matching and contributor
// upserts must see the original name.
func CleanDisplayName(name string) string {
	return strings.TrimSpace(disambiguationSuffix.ReplaceAllString(strings.TrimSpace(name), ""))
}

func isDisambiguation(group string) bool {
	group = strings.TrimSpace(group)
	if group == "" {
		return false
	}
	for _, r := range group {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
