// Package resolve performs semantic analysis of parsed queries: alias
// registration, scope tracking, and property path resolution against an
// entity schema. One Resolver handles exactly one query resolution pass.
package resolve

import "strings"

// TypeModel answers entity and property questions for indexed entity types.
// *schema.Schema implements it; lookups are in-memory and never block.
type TypeModel interface {
	// ResolveEntity reports whether the named entity type exists.
	ResolveEntity(name string) bool
	// HasProperty reports whether the property path exists on the entity.
	HasProperty(entity string, path []string) bool
	// IsEmbedded reports whether the path ends on an embedded property.
	IsEmbedded(entity string, path []string) bool
	// IsAnalyzed reports whether the path ends on a full-text analyzed leaf.
	IsAnalyzed(entity string, path []string) bool
}

// TypeDescriptor describes the referent of a resolved path node.
//
// This is a sealed interface - only IndexedEntity, EmbeddedEntity, and
// LeafProperty implement it. The marker method enables exhaustive type
// switches at every consumption site.
type TypeDescriptor interface {
	typeDescriptor()

	// HasProperty reports whether the referent has a named property.
	HasProperty(name string) bool
	// IsEmbedded reports whether the named property is itself navigable.
	IsEmbedded(name string) bool
	// IsAnalyzed reports whether the named property is a full-text leaf.
	IsAnalyzed(name string) bool
	// IndexedEntity returns the indexed entity type the referent belongs to.
	IndexedEntity() string
	// DisplayName identifies the referent in diagnostics.
	DisplayName() string
}

// IndexedEntity describes a root reference to an indexed entity type.
type IndexedEntity struct {
	entity string
	model  TypeModel
}

// NewIndexedEntity creates a descriptor for an entity type root.
func NewIndexedEntity(entity string, model TypeModel) *IndexedEntity {
	return &IndexedEntity{entity: entity, model: model}
}

func (d *IndexedEntity) typeDescriptor() {}

func (d *IndexedEntity) HasProperty(name string) bool {
	return d.model.HasProperty(d.entity, []string{name})
}

func (d *IndexedEntity) IsEmbedded(name string) bool {
	return d.model.IsEmbedded(d.entity, []string{name})
}

func (d *IndexedEntity) IsAnalyzed(name string) bool {
	return d.model.IsAnalyzed(d.entity, []string{name})
}

func (d *IndexedEntity) IndexedEntity() string { return d.entity }

func (d *IndexedEntity) DisplayName() string { return d.entity }

// EmbeddedEntity describes an embedded property reachable from an indexed
// entity through a physical (alias-free) property path.
type EmbeddedEntity struct {
	entity string
	path   []string
	model  TypeModel
}

// NewEmbeddedEntity creates a descriptor for an embedded property at the
// given physical path under the entity.
func NewEmbeddedEntity(entity string, path []string, model TypeModel) *EmbeddedEntity {
	return &EmbeddedEntity{entity: entity, path: path, model: model}
}

func (d *EmbeddedEntity) typeDescriptor() {}

func (d *EmbeddedEntity) HasProperty(name string) bool {
	return d.model.HasProperty(d.entity, d.childPath(name))
}

func (d *EmbeddedEntity) IsEmbedded(name string) bool {
	return d.model.IsEmbedded(d.entity, d.childPath(name))
}

func (d *EmbeddedEntity) IsAnalyzed(name string) bool {
	return d.model.IsAnalyzed(d.entity, d.childPath(name))
}

func (d *EmbeddedEntity) IndexedEntity() string { return d.entity }

func (d *EmbeddedEntity) DisplayName() string {
	return d.entity + "." + strings.Join(d.path, ".")
}

// Path returns the physical property path of the embedded entity.
func (d *EmbeddedEntity) Path() []string {
	return append([]string{}, d.path...)
}

func (d *EmbeddedEntity) childPath(name string) []string {
	child := make([]string, 0, len(d.path)+1)
	child = append(child, d.path...)
	return append(child, name)
}

// LeafProperty describes a terminal, directly comparable property with no
// further navigation.
type LeafProperty struct{}

func (LeafProperty) typeDescriptor() {}

func (LeafProperty) HasProperty(string) bool { return false }

func (LeafProperty) IsEmbedded(string) bool { return false }

func (LeafProperty) IsAnalyzed(string) bool { return false }

func (LeafProperty) IndexedEntity() string { return "" }

func (LeafProperty) DisplayName() string { return "leaf property" }
