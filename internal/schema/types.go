// Package schema handles index schema loading and validation.
package schema

// Schema represents the complete index schema loaded from schema.yaml.
// It declares the indexed entity types and their property trees.
type Schema struct {
	Entities map[string]*EntityDefinition `yaml:"entities"`
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{
		Entities: make(map[string]*EntityDefinition),
	}
}

// EntityDefinition defines an indexed entity type (Book, Author, ...).
type EntityDefinition struct {
	Properties map[string]*PropertyDefinition `yaml:"properties"`
}

// PropertyDefinition defines a property within an entity or an embedded
// property. Embedded properties carry their own nested Properties map.
type PropertyDefinition struct {
	Type     PropertyType `yaml:"type"`
	Analyzed bool         `yaml:"analyzed,omitempty"`

	// Properties holds the nested property tree for embedded properties.
	Properties map[string]*PropertyDefinition `yaml:"properties,omitempty"`
}

// IsEmbedded returns true if the property navigates into further properties.
func (pd *PropertyDefinition) IsEmbedded() bool {
	return pd.Type == PropertyTypeEmbedded
}

// PropertyType represents the value type of a property.
type PropertyType string

const (
	PropertyTypeString   PropertyType = "string"
	PropertyTypeNumber   PropertyType = "number"
	PropertyTypeDate     PropertyType = "date"
	PropertyTypeDatetime PropertyType = "datetime"
	PropertyTypeBool     PropertyType = "bool"
	PropertyTypeEmbedded PropertyType = "embedded"
)

// knownPropertyTypes lists all valid property type names.
var knownPropertyTypes = map[PropertyType]bool{
	PropertyTypeString:   true,
	PropertyTypeNumber:   true,
	PropertyTypeDate:     true,
	PropertyTypeDatetime: true,
	PropertyTypeBool:     true,
	PropertyTypeEmbedded: true,
}

// Entity returns the definition for an entity type.
func (s *Schema) Entity(name string) (*EntityDefinition, bool) {
	def, ok := s.Entities[name]
	return def, ok
}

// PropertyAt walks the property tree of an entity along path and returns the
// definition it ends on. Returns false if any segment is missing or attempts
// to navigate through a non-embedded property.
func (s *Schema) PropertyAt(entity string, path []string) (*PropertyDefinition, bool) {
	def, ok := s.Entities[entity]
	if !ok || len(path) == 0 {
		return nil, false
	}

	props := def.Properties
	var current *PropertyDefinition
	for _, segment := range path {
		if props == nil {
			return nil, false
		}
		pd, ok := props[segment]
		if !ok || pd == nil {
			return nil, false
		}
		current = pd
		props = pd.Properties
	}
	return current, true
}

// ResolveEntity reports whether an entity type exists in the schema.
func (s *Schema) ResolveEntity(name string) bool {
	_, ok := s.Entities[name]
	return ok
}

// HasProperty reports whether the property path exists on the entity.
func (s *Schema) HasProperty(entity string, path []string) bool {
	_, ok := s.PropertyAt(entity, path)
	return ok
}

// IsEmbedded reports whether the property path ends on an embedded property.
func (s *Schema) IsEmbedded(entity string, path []string) bool {
	pd, ok := s.PropertyAt(entity, path)
	return ok && pd.IsEmbedded()
}

// IsAnalyzed reports whether the property path ends on a full-text analyzed
// property.
func (s *Schema) IsAnalyzed(entity string, path []string) bool {
	pd, ok := s.PropertyAt(entity, path)
	return ok && pd.Analyzed
}
