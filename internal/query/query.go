package query

import "github.com/squintql/squint/internal/predicate"

// ResolvedQuery is the outcome of one resolution pass: the single target
// entity type, the projected field paths, and the deferred predicates.
type ResolvedQuery struct {
	Entity      string
	Projections []Projection
	Predicates  []predicate.Predicate
}

// Projection is one resolved SELECT-clause entry. An empty Path projects
// the whole document.
type Projection struct {
	Path string
}
