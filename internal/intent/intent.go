// Package intent decides whether a user query plausibly needs live,
// current information. It is a fixed keyword heuristic, deliberately
// biased toward triggering augmentation on ambiguous recency cues;
// false positives are acceptable.
package intent

import "strings"

// Keywords that indicate need for real-time or current information:
// temporal words, topical words, and bilingual colloquialisms.
var Keywords = []string{
	"today", "latest", "current", "now", "recent", "live", "breaking",
	"news", "weather", "stock", "price", "score", "match", "election",
	"2024", "2025", "aaj", "abhi", "trending", "update",
	"happening", "going on", "what's new", "kya ho raha", "kya chal raha",
	"market", "crypto", "bitcoin", "dollar", "rate", "exchange",
}

// NeedsRealtime reports whether the query contains any trigger keyword.
// Matching is case-insensitive substring containment over the ASCII
// lowercased query; no Unicode normalization is applied. An empty query
// never matches.
func NeedsRealtime(query string) bool {
	if query == "" {
		return false
	}
	lower := strings.ToLower(query)
	for _, keyword := range Keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
