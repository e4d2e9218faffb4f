// Package predicate builds deferred backend predicates from resolved leaf
// references and domain values. Construction is eager for inputs; the
// native clause is only built when evaluation is requested, because the
// value-bridge and query-builder collaborators may only be available later
// in the pipeline.
package predicate

import (
	"fmt"
	"strings"

	"github.com/squintql/squint/internal/resolve"
)

// Clause is a parameterized condition over the backing index. Cond is the
// SQL fragment, Args its bound parameters.
type Clause struct {
	Cond string
	Args []any
}

// ValueBridge converts a domain-level value into the backend's native
// indexed term representation for one field.
type ValueBridge interface {
	Term(v any) (any, error)
}

// Builder constructs native clauses over resolved field paths. The internal
// shape of the resulting clauses is opaque to predicates.
type Builder interface {
	RangeClause(field string, lower, upper any) Clause
	EqualsClause(field string, value any) Clause
	MatchClause(field string, query string) Clause
}

// Predicate is a deferred backend predicate over one resolved leaf field.
//
// This is a sealed interface - only Range, Equals, and Match implement it.
// The marker method enables exhaustive type switches in consumers.
type Predicate interface {
	predicateNode()

	// Field returns the dotted physical field path the predicate addresses.
	Field() string

	// Clause builds the native clause. Evaluation is pure and repeatable:
	// invoking it twice yields value-equal clauses.
	Clause(b Builder, bridge ValueBridge) (Clause, error)
}

// ArgumentError indicates a predicate constructed over something other
// than a leaf property reference.
type ArgumentError struct {
	Field string
	Type  string // display name of the offending descriptor
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("predicate on '%s' requires a leaf property, got %s", e.Field, e.Type)
}

// requireLeaf rejects non-leaf references up front, before any deferred
// evaluation can happen.
func requireLeaf(field []string, ref resolve.Reference) error {
	if _, ok := ref.Type.(resolve.LeafProperty); !ok {
		return &ArgumentError{Field: strings.Join(field, "."), Type: ref.Type.DisplayName()}
	}
	return nil
}
