package extraction

import (
	"strings"

	"tradelens/pkg/contracts/domain"
)

// summaryAnchor opens the Summary block when met outside a tabular section.
const summaryAnchor = "Balance:"

// ParseSummaryPairs pairs the non-empty texts positionally as key/value.
// Only pairs whose key ends with a colon are kept; the colon is stripped.
// A trailing singleton is dropped.
func ParseSummaryPairs(texts []string) []domain.Field {
	nonEmpty := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}

	var pairs []domain.Field
	for i := 0; i+1 < len(nonEmpty); i += 2 {
		key := nonEmpty[i]
		if !strings.HasSuffix(key, ":") {
			continue
		}
		pairs = append(pairs, domain.Field{
			Name:  strings.TrimSpace(strings.TrimSuffix(key, ":")),
			Value: nonEmpty[i+1],
		})
	}
	return pairs
}

func containsSummaryAnchor(texts []string) bool {
	return strings.Contains(strings.Join(texts, " "), summaryAnchor)
}
