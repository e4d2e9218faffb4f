package resolve

// Status tracks which clause the resolver is currently defining.
type Status int

const (
	// StatusNone is the initial and terminal scope state.
	StatusNone Status = iota
	// StatusDefiningFrom is active while resolving a FROM or join clause.
	StatusDefiningFrom
	// StatusDefiningSelect is active while resolving a SELECT clause.
	StatusDefiningSelect
)

func (s Status) String() string {
	switch s {
	case StatusDefiningFrom:
		return "from"
	case StatusDefiningSelect:
		return "select"
	default:
		return "none"
	}
}

// scopeTracker holds the single active scope. The grammar contract allows
// exactly one active scope at a time: every push is matched by one pop
// before the next push, and nesting is never attempted.
type scopeTracker struct {
	status Status
	alias  string
}

func (t *scopeTracker) pushFrom(alias string) {
	t.status = StatusDefiningFrom
	t.alias = alias
}

func (t *scopeTracker) pushSelect() {
	t.status = StatusDefiningSelect
}

func (t *scopeTracker) pop() {
	t.status = StatusNone
	t.alias = ""
}
