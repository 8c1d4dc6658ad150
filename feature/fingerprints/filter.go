package fingerprints

import (
	"fmt"
	"strings"
)

// Condition is one parsed term of the list filter syntax.
type Condition struct {
	Field string
	Value string
	// Exact selects equality matching; otherwise the term is a fuzzy
	// (substring) match.
	Exact bool
}

// ParseFilter parses the query filter syntax used by the list endpoints:
//
//	name=="WordPress"          exact match
//	name="word"                fuzzy match
//	name="wp" && rule="body="  multiple terms, all must hold
//
// Values may be quoted with double quotes; unquoted values are taken
// verbatim. Which fields are filterable depends on the variant (see the
// registry's column mappings).
func ParseFilter(s string) ([]Condition, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var conds []Condition
	for _, term := range strings.Split(s, "&&") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		var field, value string
		exact := false
		if i := strings.Index(term, "=="); i >= 0 {
			field, value, exact = term[:i], term[i+2:], true
		} else if i := strings.Index(term, "="); i >= 0 {
			field, value = term[:i], term[i+1:]
		} else {
			return nil, fmt.Errorf("invalid filter term: %q", term)
		}

		field = strings.TrimSpace(field)
		if field == "" {
			return nil, fmt.Errorf("invalid filter term: %q", term)
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
			value = value[1 : len(value)-1]
		}

		conds = append(conds, Condition{Field: field, Value: value, Exact: exact})
	}
	return conds, nil
}
