package session

import "strings"

// Tokenize splits one raw input line into a lower-cased command name and
// its arguments. Whitespace separates tokens; a double-quoted span is a
// single token with the quotes stripped, and a backslash escapes a quote
// inside it. Arguments keep their original casing.
func Tokenize(raw string) (string, []string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	var tokens []string
	var current strings.Builder
	inQuotes := false
	escaped := false
	hasToken := false

	for _, r := range trimmed {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && inQuotes:
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			hasToken = true
		case (r == ' ' || r == '\t') && !inQuotes:
			if hasToken || current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
				hasToken = false
			}
		default:
			current.WriteRune(r)
		}
	}
	if hasToken || current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	if len(tokens) == 0 {
		return "", nil
	}
	return strings.ToLower(tokens[0]), tokens[1:]
}
