package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/squintql/squint/internal/predicate"
)

// Result is one matched document.
type Result struct {
	DocID  string
	Entity string
	Fields map[string]any
}

// Search returns the documents of an entity type matching every clause,
// ordered by document ID for deterministic output.
func (d *Database) Search(entity string, clauses []predicate.Clause) ([]Result, error) {
	conditions := []string{"d.entity = ?"}
	args := []any{entity}

	for _, c := range clauses {
		conditions = append(conditions, c.Cond)
		args = append(args, c.Args...)
	}

	sqlStr := fmt.Sprintf(`
		SELECT d.doc_id, d.entity, d.fields
		FROM documents d
		WHERE %s
		ORDER BY d.doc_id
	`, strings.Join(conditions, " AND "))

	rows, err := d.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fieldsJSON string
		if err := rows.Scan(&r.DocID, &r.Entity, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		if err := json.Unmarshal([]byte(fieldsJSON), &r.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode fields of document '%s': %w", r.DocID, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Get returns one indexed document by its ID.
func (d *Database) Get(docID string) (Result, error) {
	var r Result
	var fieldsJSON string
	err := d.db.QueryRow(`SELECT doc_id, entity, fields FROM documents WHERE doc_id = ?`, docID).
		Scan(&r.DocID, &r.Entity, &fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrDocumentNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to look up document '%s': %w", docID, err)
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &r.Fields); err != nil {
		return Result{}, fmt.Errorf("failed to decode fields of document '%s': %w", docID, err)
	}
	return r, nil
}

// FieldValue walks a document's field tree along a dotted path.
func FieldValue(fields map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	current := any(fields)
	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
