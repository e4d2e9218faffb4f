package index

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/squintql/squint/internal/schema"
)

// Document is one indexable document: an entity type, a stable ID, and a
// nested field tree shaped by the entity's schema.
type Document struct {
	Entity string         `yaml:"entity"`
	ID     string         `yaml:"id"`
	Fields map[string]any `yaml:"fields"`
}

type documentFile struct {
	Documents []Document `yaml:"documents"`
}

// LoadDocuments reads documents from a YAML file.
func LoadDocuments(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents file %s: %w", path, err)
	}

	var file documentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse documents file %s: %w", path, err)
	}
	return file.Documents, nil
}

// IndexDocuments writes documents into the index, replacing any previous
// versions. String leaves are additionally fed to the FTS table so match
// predicates can find them.
func (d *Database) IndexDocuments(sch *schema.Schema, docs []Document) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin indexing transaction: %w", err)
	}
	defer tx.Rollback()

	for _, doc := range docs {
		def, ok := sch.Entity(doc.Entity)
		if !ok {
			return fmt.Errorf("document '%s' has unknown entity type '%s'", doc.ID, doc.Entity)
		}
		if doc.ID == "" {
			return fmt.Errorf("document of entity '%s' has no id", doc.Entity)
		}

		fieldsJSON, err := json.Marshal(doc.Fields)
		if err != nil {
			return fmt.Errorf("failed to encode fields of document '%s': %w", doc.ID, err)
		}

		// Replace any previous version of the document and its FTS rows.
		if _, err := tx.Exec(`DELETE FROM fts_fields WHERE doc IN (SELECT id FROM documents WHERE doc_id = ?)`, doc.ID); err != nil {
			return fmt.Errorf("failed to clear FTS rows for document '%s': %w", doc.ID, err)
		}

		res, err := tx.Exec(`
			INSERT INTO documents (doc_id, entity, fields) VALUES (?, ?, ?)
			ON CONFLICT(doc_id) DO UPDATE SET entity = excluded.entity, fields = excluded.fields
		`, doc.ID, doc.Entity, string(fieldsJSON))
		if err != nil {
			return fmt.Errorf("failed to index document '%s': %w", doc.ID, err)
		}

		rowID, err := res.LastInsertId()
		if err != nil || rowID == 0 {
			if err := tx.QueryRow(`SELECT id FROM documents WHERE doc_id = ?`, doc.ID).Scan(&rowID); err != nil {
				return fmt.Errorf("failed to look up document '%s': %w", doc.ID, err)
			}
		}

		for field, content := range stringLeaves(def.Properties, nil, doc.Fields) {
			if _, err := tx.Exec(`INSERT INTO fts_fields (doc, field, content) VALUES (?, ?, ?)`, rowID, field, content); err != nil {
				return fmt.Errorf("failed to index text of document '%s' field '%s': %w", doc.ID, field, err)
			}
		}
	}

	return tx.Commit()
}

// stringLeaves collects dotted field path -> string content for every
// string-typed leaf present in the document's field tree.
func stringLeaves(props map[string]*schema.PropertyDefinition, prefix []string, fields map[string]any) map[string]string {
	out := make(map[string]string)
	collectStringLeaves(props, prefix, fields, out)
	return out
}

func collectStringLeaves(props map[string]*schema.PropertyDefinition, prefix []string, fields map[string]any, out map[string]string) {
	if fields == nil {
		return
	}
	for name, pd := range props {
		value, ok := fields[name]
		if !ok || pd == nil {
			continue
		}
		path := append(append([]string{}, prefix...), name)

		if pd.IsEmbedded() {
			if nested, ok := value.(map[string]any); ok {
				collectStringLeaves(pd.Properties, path, nested, out)
			}
			continue
		}

		if pd.Type == schema.PropertyTypeString || pd.Type == "" {
			if s, ok := value.(string); ok {
				out[strings.Join(path, ".")] = s
			}
		}
	}
}
