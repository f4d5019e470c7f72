package store

import "strings"

// insertBatchSize bounds the number of rows in a single multi-row INSERT or
// IN-list, matching the parser's batched-write design.
const insertBatchSize = 512

// stringPlaceholders builds "(?), (?), ..." for a multi-row single-column
// INSERT and the matching args slice.
func stringPlaceholders(values []string) (string, []any) {
	parts := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		parts[i] = "(?)"
		args[i] = v
	}
	return strings.Join(parts, ", "), args
}

// inPlaceholders builds "?, ?, ..." for a string IN (...) clause.
func inPlaceholders(values []string) (string, []any) {
	parts := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		parts[i] = "?"
		args[i] = v
	}
	return strings.Join(parts, ", "), args
}

// intPlaceholders builds "?, ?, ..." for an int64 IN (...) clause.
func intPlaceholders(values []int64) (string, []any) {
	parts := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		parts[i] = "?"
		args[i] = v
	}
	return strings.Join(parts, ", "), args
}
