package httpapi

import (
	"fmt"
	"strings"
)

// searchableColumns are the entry columns the "or" filter may reference.
var searchableColumns = map[string]bool{
	"worst_case":         true,
	"worst_consequences": true,
	"what_can_i_do":      true,
	"how_will_i_cope":    true,
}

// parseOrFilter parses the "or" query parameter, a comma separated list of
// clauses of the form "column.ilike.*term*". All clauses share one search
// term, so the first valid clause wins; the columns only gate which clauses
// are accepted. The "*" wildcard is translated to SQL's "%". The term is not
// escaped, so a term containing "%" or "_" widens the match.
func parseOrFilter(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	var result string
	for _, clause := range strings.Split(raw, ",") {
		parts := strings.SplitN(clause, ".", 3)
		if len(parts) != 3 {
			return "", fmt.Errorf("malformed filter clause %q", clause)
		}
		col, op, pattern := parts[0], parts[1], parts[2]
		if !searchableColumns[col] {
			return "", fmt.Errorf("unknown filter column %q", col)
		}
		if op != "ilike" {
			return "", fmt.Errorf("unsupported filter operator %q", op)
		}
		if result == "" {
			result = strings.ReplaceAll(pattern, "*", "%")
		}
	}

	return result, nil
}
