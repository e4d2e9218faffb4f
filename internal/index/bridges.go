package index

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/squintql/squint/internal/predicate"
	"github.com/squintql/squint/internal/schema"
)

// BridgeFor returns the value bridge declared for a property definition.
// The bridge converts domain values into the representation the index
// stores and compares: strings stay strings, numbers become REAL terms,
// dates and datetimes normalize to sortable ISO strings.
func BridgeFor(pd *schema.PropertyDefinition) predicate.ValueBridge {
	switch pd.Type {
	case schema.PropertyTypeNumber:
		return NumberBridge{}
	case schema.PropertyTypeDate:
		return DateBridge{}
	case schema.PropertyTypeDatetime:
		return DatetimeBridge{}
	case schema.PropertyTypeBool:
		return BoolBridge{}
	default:
		return StringBridge{}
	}
}

// StringBridge passes strings through and stringifies everything else.
type StringBridge struct{}

// Term implements predicate.ValueBridge.
func (StringBridge) Term(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

// NumberBridge converts to float64 so comparisons are numeric, never
// lexicographic.
type NumberBridge struct{}

// Term implements predicate.ValueBridge.
func (NumberBridge) Term(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number value '%s'", n)
		}
		return f, nil
	}
	return nil, fmt.Errorf("invalid number value '%v'", v)
}

// DateBridge normalizes dates to YYYY-MM-DD, which sorts correctly as text.
type DateBridge struct{}

// Term implements predicate.ValueBridge.
func (DateBridge) Term(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("invalid date value '%v'", v)
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid date value '%s' (expected YYYY-MM-DD)", s)
	}
	return t.Format("2006-01-02"), nil
}

// DatetimeBridge normalizes datetimes to RFC 3339 in UTC.
type DatetimeBridge struct{}

// Term implements predicate.ValueBridge.
func (DatetimeBridge) Term(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("invalid datetime value '%v'", v)
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid datetime value '%s' (expected RFC 3339)", s)
	}
	return t.UTC().Format(time.RFC3339), nil
}

// BoolBridge converts to the 0/1 integers SQLite stores for JSON booleans.
type BoolBridge struct{}

// Term implements predicate.ValueBridge.
func (BoolBridge) Term(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		if b {
			return 1, nil
		}
		return 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return 1, nil
		case "false":
			return 0, nil
		}
	}
	return nil, fmt.Errorf("invalid bool value '%v'", v)
}
