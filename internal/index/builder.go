package index

import (
	"fmt"

	"github.com/squintql/squint/internal/predicate"
)

// QueryBuilder builds parameterized SQL clauses over the documents table.
// It implements predicate.Builder; the clauses it produces are combined by
// Database.Search.
type QueryBuilder struct {
	alias string
}

// NewQueryBuilder creates a builder for clauses over the document alias
// used by Search.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{alias: "d"}
}

// RangeClause builds an inclusive BETWEEN clause over a field. Numeric
// terms compare as REAL; everything else compares as text.
func (b *QueryBuilder) RangeClause(field string, lower, upper any) predicate.Clause {
	expr := b.fieldExpr(field, isNumeric(lower) && isNumeric(upper))
	return predicate.Clause{
		Cond: fmt.Sprintf("%s BETWEEN ? AND ?", expr),
		Args: []any{jsonFieldPath(field), lower, upper},
	}
}

// EqualsClause builds an exact-match clause over a field.
func (b *QueryBuilder) EqualsClause(field string, value any) predicate.Clause {
	expr := b.fieldExpr(field, isNumeric(value))
	return predicate.Clause{
		Cond: fmt.Sprintf("%s = ?", expr),
		Args: []any{jsonFieldPath(field), value},
	}
}

// MatchClause builds a full-text clause: the document must have an FTS row
// for the field matching the sanitized expression.
func (b *QueryBuilder) MatchClause(field string, query string) predicate.Clause {
	cond := fmt.Sprintf(`%s.id IN (
		SELECT f.doc FROM fts_fields f
		WHERE f.field = ? AND f.fts_fields MATCH ?
	)`, b.alias)
	return predicate.Clause{
		Cond: cond,
		Args: []any{field, BuildFieldMatchQuery(query)},
	}
}

func (b *QueryBuilder) fieldExpr(field string, numeric bool) string {
	if numeric {
		return fmt.Sprintf("CAST(json_extract(%s.fields, ?) AS REAL)", b.alias)
	}
	return fmt.Sprintf("json_extract(%s.fields, ?)", b.alias)
}

// jsonFieldPath converts a dotted field path to a JSON path expression.
func jsonFieldPath(field string) string {
	return "$." + field
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	}
	return false
}
