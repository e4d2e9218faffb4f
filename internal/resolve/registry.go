package resolve

import "strings"

// aliasRegistry owns the alias bindings for one query resolution pass:
// alias to entity type, alias to joined property path, and the single
// target entity type the query may address.
type aliasRegistry struct {
	aliasToEntity map[string]string
	aliasToPath   map[string]*PropertyPath
	target        string
	model         TypeModel
}

func newAliasRegistry(model TypeModel) *aliasRegistry {
	return &aliasRegistry{
		aliasToEntity: make(map[string]string),
		aliasToPath:   make(map[string]*PropertyPath),
		model:         model,
	}
}

// registerEntityAlias binds a FROM-clause alias to an entity type. Binding
// the same alias to the same type name again is a no-op; only the duplicate
// check compares type names case-insensitively.
func (r *aliasRegistry) registerEntityAlias(alias, entity string) error {
	if bound, ok := r.aliasToEntity[alias]; ok {
		if strings.EqualFold(bound, entity) {
			return nil
		}
		return &ConflictingAliasError{Alias: alias, Bound: bound, Requested: entity}
	}
	if !r.model.ResolveEntity(entity) {
		return &UnknownEntityError{Entity: entity}
	}
	if r.target != "" && r.target != entity {
		return &MultipleTargetTypesError{Current: r.target, Requested: entity}
	}
	r.aliasToEntity[alias] = entity
	r.target = entity
	return nil
}

func (r *aliasRegistry) isEntityAlias(name string) bool {
	_, ok := r.aliasToEntity[name]
	return ok
}

func (r *aliasRegistry) entityForAlias(name string) (string, bool) {
	entity, ok := r.aliasToEntity[name]
	return entity, ok
}

// registerPathAlias binds a join alias to an already-resolved property path.
// Empty paths are never stored; an existing binding wins.
func (r *aliasRegistry) registerPathAlias(alias string, path *PropertyPath) {
	if path == nil || path.Len() == 0 {
		return
	}
	if _, ok := r.aliasToPath[alias]; ok {
		return
	}
	r.aliasToPath[alias] = path
}

func (r *aliasRegistry) pathForAlias(name string) (*PropertyPath, bool) {
	path, ok := r.aliasToPath[name]
	return path, ok
}

// resolveAliasPrefix returns the physical segment names of a path. A path
// rooted at an entity alias just drops the alias; a path rooted at a join
// alias expands the aliased path recursively and appends the rest.
func (r *aliasRegistry) resolveAliasPrefix(path *PropertyPath) ([]string, error) {
	if path.Len() == 0 {
		return nil, nil
	}

	first := path.First()
	if !first.Root {
		return path.NodeNamesWithoutAlias(), nil
	}

	if r.isEntityAlias(first.Name) {
		return path.NodeNamesWithoutAlias(), nil
	}
	if aliased, ok := r.pathForAlias(first.Name); ok {
		resolved, err := r.resolveAliasPrefix(aliased)
		if err != nil {
			return nil, err
		}
		return append(resolved, path.NodeNamesWithoutAlias()...), nil
	}
	return nil, &UnknownAliasError{Alias: first.Name}
}
