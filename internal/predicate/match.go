package predicate

import (
	"strings"

	"github.com/squintql/squint/internal/resolve"
)

// Match is a full-text predicate over a leaf field. The match expression
// is passed to the backend untouched; the builder owns sanitization.
type Match struct {
	field string
	query string
}

// NewMatch creates a full-text predicate over a resolved leaf reference.
func NewMatch(field []string, ref resolve.Reference, query string) (*Match, error) {
	if err := requireLeaf(field, ref); err != nil {
		return nil, err
	}
	return &Match{field: strings.Join(field, "."), query: query}, nil
}

func (p *Match) predicateNode() {}

// Field returns the dotted physical field path.
func (p *Match) Field() string { return p.field }

// Clause builds a full-text match clause over the field. The match
// expression is not bridged: it is a search expression, not a domain value.
func (p *Match) Clause(b Builder, _ ValueBridge) (Clause, error) {
	return b.MatchClause(p.field, p.query), nil
}
