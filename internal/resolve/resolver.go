package resolve

import (
	"fmt"
	"strings"
)

// Resolver performs one synchronous resolution pass over a single query.
// The external parser drives it left-to-right: alias registration during
// FROM parsing, paired push/pop scope calls, then path navigation calls
// whose results the caller assembles into a PropertyPath.
//
// A Resolver is neither reusable across queries nor safe for concurrent
// use; separate queries get separate instances and share no state.
type Resolver struct {
	model   TypeModel
	aliases *aliasRegistry
	scope   scopeTracker
}

// New creates a resolver for one query against the given type model.
func New(model TypeModel) *Resolver {
	return &Resolver{
		model:   model,
		aliases: newAliasRegistry(model),
	}
}

// RegisterEntityAlias records a FROM-clause alias for an entity type and
// sets the query's single target type on first success.
func (r *Resolver) RegisterEntityAlias(alias, entity string) error {
	return r.aliases.registerEntityAlias(alias, entity)
}

// IsEntityAlias reports whether name is a registered entity alias.
func (r *Resolver) IsEntityAlias(name string) bool {
	return r.aliases.isEntityAlias(name)
}

// TargetEntity returns the single entity type the query addresses, or ""
// if no FROM-clause registration has happened yet.
func (r *Resolver) TargetEntity() string {
	return r.aliases.target
}

// Status returns the currently active scope state.
func (r *Resolver) Status() Status {
	return r.scope.status
}

// CurrentAlias returns the alias recorded by the active FROM scope.
func (r *Resolver) CurrentAlias() string {
	return r.scope.alias
}

// PushFromScope enters a FROM or join clause scope for the given alias.
func (r *Resolver) PushFromScope(alias string) {
	r.scope.pushFrom(alias)
}

// PushSelectScope enters a SELECT clause scope.
func (r *Resolver) PushSelectScope() {
	r.scope.pushSelect()
}

// PopScope leaves the active scope.
func (r *Resolver) PopScope() {
	r.scope.pop()
}

// ResolveUnqualifiedRoot resolves the first segment of a path. Entity
// aliases resolve as qualified roots; join aliases resolve to the embedded
// entity their path ends on.
func (r *Resolver) ResolveUnqualifiedRoot(identifier string) (Reference, error) {
	if r.aliases.isEntityAlias(identifier) {
		return r.ResolveQualifiedRoot(identifier)
	}

	if aliased, ok := r.aliases.pathForAlias(identifier); ok {
		prefix, err := r.aliases.resolveAliasPrefix(aliased)
		if err != nil {
			return Reference{}, err
		}
		source := aliased.First().Type
		return Reference{
			Name: identifier,
			Type: NewEmbeddedEntity(source.IndexedEntity(), prefix, r.model),
			Root: true,
		}, nil
	}

	return Reference{}, &UnknownAliasError{Alias: identifier}
}

// ResolveQualifiedRoot resolves an entity alias to its indexed entity type.
func (r *Resolver) ResolveQualifiedRoot(alias string) (Reference, error) {
	entity, ok := r.aliases.entityForAlias(alias)
	if !ok {
		return Reference{}, &UnknownAliasError{Alias: alias}
	}
	return Reference{
		Name: alias,
		Type: NewIndexedEntity(entity, r.model),
		Root: true,
	}, nil
}

// ResolveUnqualifiedProperty resolves a bare identifier with no alias
// scoping in effect: entity aliases win, anything else is a property of the
// target type.
func (r *Resolver) ResolveUnqualifiedProperty(identifier string) (Reference, error) {
	if r.aliases.isEntityAlias(identifier) {
		return r.ResolveQualifiedRoot(identifier)
	}
	if r.aliases.target == "" {
		return Reference{}, &UnknownAliasError{Alias: identifier}
	}
	return r.resolveProperty(NewIndexedEntity(r.aliases.target, r.model), nil, identifier)
}

// ResolveIntermediary resolves a non-terminal path segment. Intermediary
// nodes are never leaves: the result always carries an embedded entity
// descriptor over the alias-expanded physical path.
func (r *Resolver) ResolveIntermediary(path *PropertyPath, segment string) (Reference, error) {
	source := path.Last().Type
	if !source.HasProperty(segment) {
		return Reference{}, &NoSuchPropertyError{Type: source.DisplayName(), Property: segment}
	}

	prefix, err := r.aliases.resolveAliasPrefix(path)
	if err != nil {
		return Reference{}, err
	}
	full := append(prefix, segment)

	return Reference{
		Name: segment,
		Type: NewEmbeddedEntity(source.IndexedEntity(), full, r.model),
	}, nil
}

// ResolveTerminus resolves the last path segment against the path's
// terminal descriptor and its alias-free node names.
func (r *Resolver) ResolveTerminus(path *PropertyPath, segment string) (Reference, error) {
	return r.resolveProperty(path.Last().Type, path.NodeNamesWithoutAlias(), segment)
}

// resolveProperty is the shared property resolution routine. Analyzed
// leaves may only be referenced inside a SELECT scope: tokenized values
// cannot be filtered exactly.
func (r *Resolver) resolveProperty(source TypeDescriptor, prefix []string, name string) (Reference, error) {
	if !source.HasProperty(name) {
		return Reference{}, &NoSuchPropertyError{Type: source.DisplayName(), Property: name}
	}

	if r.scope.status != StatusDefiningSelect && !source.IsEmbedded(name) && source.IsAnalyzed(name) {
		return Reference{}, &AnalyzedPropertyError{Entity: source.IndexedEntity(), Property: name}
	}

	if source.IsEmbedded(name) {
		full := make([]string, 0, len(prefix)+1)
		full = append(full, prefix...)
		full = append(full, name)
		return Reference{
			Name: name,
			Type: NewEmbeddedEntity(source.IndexedEntity(), full, r.model),
		}, nil
	}

	return Reference{Name: name, Type: LeafProperty{}}, nil
}

// PathCompleted checks a fully assembled path. Whole embedded entities
// cannot be projected, only their leaves.
func (r *Resolver) PathCompleted(path *PropertyPath) error {
	if r.scope.status != StatusDefiningSelect {
		return nil
	}
	if emb, ok := path.Last().Type.(*EmbeddedEntity); ok {
		return &EmbeddedProjectionError{
			Entity: emb.IndexedEntity(),
			Path:   strings.Join(path.NodeNamesWithoutAlias(), "."),
		}
	}
	return nil
}

// RegisterJoinAlias binds a join alias to its resolved path. Empty paths
// and already-bound aliases are silently skipped.
func (r *Resolver) RegisterJoinAlias(alias string, path *PropertyPath) {
	r.aliases.registerPathAlias(alias, path)
}

// PhysicalPath returns the alias-expanded segment names of a completed
// path, suitable for addressing the backing index.
func (r *Resolver) PhysicalPath(path *PropertyPath) ([]string, error) {
	return r.aliases.resolveAliasPrefix(path)
}

// ResolveIndexOperation rejects collection subscript navigation, whether
// intermediate or terminal.
func (r *Resolver) ResolveIndexOperation(property, selector string) (Reference, error) {
	return Reference{}, &NotSupportedError{
		Feature: fmt.Sprintf("collection index navigation on '%s[%s]'", property, selector),
	}
}

// ResolveUnqualifiedPropertySource rejects an unqualified property
// reference used as a join source.
func (r *Resolver) ResolveUnqualifiedPropertySource(identifier string) (Reference, error) {
	return Reference{}, &NotSupportedError{
		Feature: fmt.Sprintf("unqualified property reference '%s' as join source", identifier),
	}
}
