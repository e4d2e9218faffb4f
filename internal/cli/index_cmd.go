package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squintql/squint/internal/index"
	"github.com/squintql/squint/internal/ui"
)

var indexCmd = &cobra.Command{
	Use:   "index <documents.yaml>",
	Short: "Load documents into the index",
	Long: `Index reads documents from a YAML file, validates their entity types
against the schema, and writes them into the index database. Existing
documents with the same ID are replaced.

The file lists documents under a top-level key:

  documents:
    - entity: Book
      id: book-1
      fields:
        isbn: "140"
        author:
          name: "Iain Banks"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sch, err := loadSchema()
		if err != nil {
			return err
		}

		docs, err := index.LoadDocuments(args[0])
		if err != nil {
			return err
		}

		db, err := index.Open(indexPath())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.IndexDocuments(sch, docs); err != nil {
			return err
		}

		fmt.Println(ui.Successf("indexed %d document(s)", len(docs)))
		return nil
	},
}
