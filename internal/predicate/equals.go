package predicate

import (
	"strings"

	"github.com/squintql/squint/internal/resolve"
)

// Equals is an exact-match predicate over a leaf field.
type Equals struct {
	field string
	value any
}

// NewEquals creates an equality predicate over a resolved leaf reference.
func NewEquals(field []string, ref resolve.Reference, value any) (*Equals, error) {
	if err := requireLeaf(field, ref); err != nil {
		return nil, err
	}
	return &Equals{field: strings.Join(field, "."), value: value}, nil
}

func (p *Equals) predicateNode() {}

// Field returns the dotted physical field path.
func (p *Equals) Field() string { return p.field }

// Clause converts the value through the bridge and builds an equality
// clause over the field.
func (p *Equals) Clause(b Builder, bridge ValueBridge) (Clause, error) {
	term, err := bridge.Term(p.value)
	if err != nil {
		return Clause{}, err
	}
	return b.EqualsClause(p.field, term), nil
}
