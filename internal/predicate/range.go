package predicate

import (
	"strings"

	"github.com/squintql/squint/internal/resolve"
)

// Range is a BETWEEN predicate: both bounds are converted through the
// field's value bridge and the resulting range is inclusive at both ends.
type Range struct {
	field string
	lower any
	upper any
}

// NewRange creates a range predicate over a resolved leaf reference.
func NewRange(field []string, ref resolve.Reference, lower, upper any) (*Range, error) {
	if err := requireLeaf(field, ref); err != nil {
		return nil, err
	}
	return &Range{field: strings.Join(field, "."), lower: lower, upper: upper}, nil
}

func (p *Range) predicateNode() {}

// Field returns the dotted physical field path.
func (p *Range) Field() string { return p.field }

// Clause converts both bounds through the bridge and builds an inclusive
// bounded range clause over the field.
func (p *Range) Clause(b Builder, bridge ValueBridge) (Clause, error) {
	lower, err := bridge.Term(p.lower)
	if err != nil {
		return Clause{}, err
	}
	upper, err := bridge.Term(p.upper)
	if err != nil {
		return Clause{}, err
	}
	return b.RangeClause(p.field, lower, upper), nil
}
