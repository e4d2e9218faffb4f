package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads a schema from a YAML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses schema YAML and validates it.
func Parse(data []byte) (*Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	if schema.Entities == nil {
		schema.Entities = make(map[string]*EntityDefinition)
	}
	for name, def := range schema.Entities {
		if def == nil {
			schema.Entities[name] = &EntityDefinition{Properties: make(map[string]*PropertyDefinition)}
			continue
		}
		if def.Properties == nil {
			def.Properties = make(map[string]*PropertyDefinition)
		}
	}

	if err := Validate(&schema); err != nil {
		return nil, err
	}

	return &schema, nil
}
