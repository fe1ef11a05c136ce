package app

import (
	"regexp"
	"strconv"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// Matches the tuples of a multi-row VALUES list after the first one.
	extraValueTuplesRegex = regexp.MustCompile(`(?i)(VALUES \([^()]*\))((?:, ?\([^()]*\))+)`)
	valueTupleRegex       = regexp.MustCompile(`\([^()]*\)`)
)

// formatDBQueryForTrace flattens whitespace and folds multi-row inserts,
// like a rewritten match event ledger, into their first tuple plus a row
// count so span attributes stay readable.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = extraValueTuplesRegex.ReplaceAllStringFunc(normalized, func(match string) string {
		parts := extraValueTuplesRegex.FindStringSubmatch(match)
		extra := len(valueTupleRegex.FindAllString(parts[2], -1))
		return parts[1] + " /* +" + strconv.Itoa(extra) + " rows */"
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
