package resolve

import "fmt"

// UnknownAliasError indicates a reference to an alias that was never
// registered in the query's FROM clause or as a join alias.
type UnknownAliasError struct {
	Alias string
}

func (e *UnknownAliasError) Error() string {
	return fmt.Sprintf("unknown alias '%s'", e.Alias)
}

// UnknownEntityError indicates a FROM clause naming an entity type that does
// not exist in the schema.
type UnknownEntityError struct {
	Entity string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity type '%s'", e.Entity)
}

// ConflictingAliasError indicates an alias being rebound to a different
// entity type within the same query.
type ConflictingAliasError struct {
	Alias     string
	Bound     string // entity type the alias is already assigned to
	Requested string
}

func (e *ConflictingAliasError) Error() string {
	return fmt.Sprintf("alias '%s' already assigned to type '%s', cannot reassign to '%s'", e.Alias, e.Bound, e.Requested)
}

// MultipleTargetTypesError indicates a query attempting to address a second
// distinct entity type. A query targets exactly one entity type.
type MultipleTargetTypesError struct {
	Current   string
	Requested string
}

func (e *MultipleTargetTypesError) Error() string {
	return fmt.Sprintf("cannot target multiple entity types: '%s' already selected before '%s'", e.Current, e.Requested)
}

// NoSuchPropertyError indicates a property reference that does not exist on
// the type it is navigated from.
type NoSuchPropertyError struct {
	Type     string // display name of the type navigated from
	Property string
}

func (e *NoSuchPropertyError) Error() string {
	return fmt.Sprintf("type %s has no property named '%s'", e.Type, e.Property)
}

// AnalyzedPropertyError indicates an exact-match filter on a full-text
// analyzed property. Tokenized values can be projected but not compared.
type AnalyzedPropertyError struct {
	Entity   string
	Property string
}

func (e *AnalyzedPropertyError) Error() string {
	return fmt.Sprintf("cannot filter on analyzed property '%s' of entity %s: tokenized values support projection only", e.Property, e.Entity)
}

// EmbeddedProjectionError indicates a SELECT clause projecting a whole
// embedded entity rather than one of its leaf properties.
type EmbeddedProjectionError struct {
	Entity string
	Path   string // dotted alias-free path of the offending projection
}

func (e *EmbeddedProjectionError) Error() string {
	return fmt.Sprintf("cannot project embedded entity '%s' of %s: select one of its properties instead", e.Path, e.Entity)
}

// NotSupportedError indicates a query construct the resolver rejects rather
// than silently ignoring.
type NotSupportedError struct {
	Feature string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("not supported: %s", e.Feature)
}
