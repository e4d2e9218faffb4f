package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squintql/squint/internal/query"
	"github.com/squintql/squint/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check <query>",
	Short: "Parse and resolve a query without running it",
	Long: `Check parses a query, resolves every alias and property path against
the schema, and prints the resolved form. Nothing is executed.

Examples:
  squint check "from Book b select b.isbn"
  squint check "from Book b join b.author a select a.name"
  squint check "from Book b where b.isbn between '100' and '200'"`,
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

		fmt.Println(ui.Successf("query targets entity %s", ui.FieldPath(q.Entity)))
		for _, proj := range q.Projections {
			path := proj.Path
			if path == "" {
				path = "(whole document)"
			}
			fmt.Printf("  select %s\n", ui.FieldPath(path))
		}
		for _, pred := range q.Predicates {
			fmt.Printf("  filter %s\n", ui.FieldPath(pred.Field()))
		}
		return nil
	},
}
