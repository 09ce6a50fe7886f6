package extraction

import "regexp"

// totalsPattern matches aggregate cell content: digits, spaces, separators,
// percent signs, parentheses and an optional leading minus.
var totalsPattern = regexp.MustCompile(`^-?[0-9 .,%()]+$`)

// IsTotalsRow reports whether every non-empty cell looks like an aggregate
// value. A row with no content is not a totals row.
func IsTotalsRow(texts []string) bool {
	seen := false
	for _, t := range texts {
		if t == "" {
			continue
		}
		if !totalsPattern.MatchString(t) {
			return false
		}
		seen = true
	}
	return seen
}
