package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squintql/squint/internal/index"
	"github.com/squintql/squint/internal/predicate"
	"github.com/squintql/squint/internal/query"
	"github.com/squintql/squint/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a query against the index",
	Long: `Search parses and resolves a query, compiles its predicates into
native index clauses, and prints the matching documents.

Examples:
  squint search "from Book b where b.isbn between '100' and '200'"
  squint search "from Book b select b.isbn where b.pages = 300"
  squint search "from Book b where b.summary matches 'compiler'"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sch, err := loadSchema()
		if err != nil {
			return err
		}

		q, err := query.Parse(args[0], sch)
		if err != nil {
			return err
		}

		db, err := index.Open(indexPath())
		if err != nil {
			return err
		}
		defer db.Close()

		builder := index.NewQueryBuilder()
		var clauses []predicate.Clause
		for _, pred := range q.Predicates {
			pd, ok := sch.PropertyAt(q.Entity, strings.Split(pred.Field(), "."))
			if !ok {
				return fmt.Errorf("field '%s' missing from schema for entity '%s'", pred.Field(), q.Entity)
			}
			clause, err := pred.Clause(builder, index.BridgeFor(pd))
			if err != nil {
				return err
			}
			clauses = append(clauses, clause)
		}

		results, err := db.Search(q.Entity, clauses)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println(ui.Info("no matches"))
			return nil
		}

		for _, r := range results {
			fmt.Printf("%s %s\n", ui.Header(r.DocID), ui.Hint(r.Entity))
			for _, proj := range q.Projections {
				if proj.Path == "" {
					fmt.Printf("  %v\n", r.Fields)
					continue
				}
				value, ok := index.FieldValue(r.Fields, proj.Path)
				if !ok {
					fmt.Printf("  %s: %s\n", ui.FieldPath(proj.Path), ui.Hint("(unset)"))
					continue
				}
				fmt.Printf("  %s: %v\n", ui.FieldPath(proj.Path), value)
			}
		}
		fmt.Println(ui.Hint(fmt.Sprintf("%d match(es)", len(results))))
		return nil
	},
}
