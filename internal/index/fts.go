package index

import "strings"

// BuildFieldMatchQuery builds a safe FTS5 MATCH expression scoped to the
// `content` column of the fts_fields table. Unquoted hyphenated tokens are
// quoted so the FTS parser does not read them as operators.
//
// The returned string is meant to be passed as the RHS of
// `fts_fields MATCH ?`.
func BuildFieldMatchQuery(userQuery string) string {
	q := strings.TrimSpace(userQuery)
	if q == "" {
		// Match nothing (FTS phrase query for empty string).
		return `content:""`
	}

	// Parenthesize so the column scope applies to boolean operators too.
	return "content: (" + sanitizeMatchQuery(q) + ")"
}

// sanitizeMatchQuery quotes unquoted tokens containing '-', keeping quoted
// phrases, boolean operators, and grouping parentheses intact.
func sanitizeMatchQuery(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 8)

	inQuotes := false
	i := 0
	for i < len(q) {
		c := q[i]

		if c == '"' {
			inQuotes = !inQuotes
			b.WriteByte(c)
			i++
			continue
		}

		if inQuotes {
			b.WriteByte(c)
			i++
			continue
		}

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '(' || c == ')' {
			b.WriteByte(c)
			i++
			continue
		}

		// Consume a token until whitespace, quote, or paren.
		start := i
		for i < len(q) {
			cc := q[i]
			if cc == '"' || cc == '(' || cc == ')' || cc == ' ' || cc == '\t' || cc == '\n' || cc == '\r' {
				break
			}
			i++
		}
		tok := q[start:i]

		switch strings.ToUpper(tok) {
		case "AND", "OR", "NOT", "NEAR":
			b.WriteString(tok)
			continue
		}

		// Quote hyphenated tokens, but leave unary NOT (`-foo`) alone.
		if strings.Contains(tok, "-") && !strings.HasPrefix(tok, "-") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(tok, `"`, `""`))
			b.WriteByte('"')
			continue
		}

		b.WriteString(tok)
	}

	return b.String()
}
