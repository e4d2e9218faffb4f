package schema

import (
	"fmt"
	"strings"
)

// Validate checks the structural rules of a schema:
//   - every property has a known type (empty defaults to string)
//   - embedded properties declare a nested property tree
//   - non-embedded properties declare no nested properties
//   - analyzed is only valid on string properties
func Validate(s *Schema) error {
	for entity, def := range s.Entities {
		if def == nil {
			continue
		}
		if err := validateProperties(entity, nil, def.Properties); err != nil {
			return err
		}
	}
	return nil
}

func validateProperties(entity string, prefix []string, props map[string]*PropertyDefinition) error {
	for name, pd := range props {
		path := append(append([]string{}, prefix...), name)
		at := entity + "." + strings.Join(path, ".")

		if pd == nil {
			return fmt.Errorf("property %s has no definition", at)
		}

		// Default untyped properties to string, matching documents that
		// only list property names.
		if pd.Type == "" {
			pd.Type = PropertyTypeString
		}

		if !knownPropertyTypes[pd.Type] {
			return fmt.Errorf("property %s has unknown type '%s'", at, pd.Type)
		}

		if pd.IsEmbedded() {
			if len(pd.Properties) == 0 {
				return fmt.Errorf("embedded property %s declares no nested properties", at)
			}
			if pd.Analyzed {
				return fmt.Errorf("embedded property %s cannot be analyzed", at)
			}
			if err := validateProperties(entity, path, pd.Properties); err != nil {
				return err
			}
			continue
		}

		if len(pd.Properties) > 0 {
			return fmt.Errorf("property %s of type '%s' cannot declare nested properties", at, pd.Type)
		}
		if pd.Analyzed && pd.Type != PropertyTypeString {
			return fmt.Errorf("property %s of type '%s' cannot be analyzed (only string properties are tokenized)", at, pd.Type)
		}
	}
	return nil
}
