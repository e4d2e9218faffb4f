package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/squintql/squint/internal/index"
	"github.com/squintql/squint/internal/ui"
)

var getCmd = &cobra.Command{
	Use:   "get <doc-id>",
	Short: "Show one indexed document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(indexPath())
		if err != nil {
			return err
		}
		defer db.Close()

		r, err := db.Get(args[0])
		if errors.Is(err, index.ErrDocumentNotFound) {
			return fmt.Errorf("no document with id '%s'", args[0])
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.Header(r.DocID), ui.Hint(r.Entity))
		printFields(r.Fields, 1)
		return nil
	},
}

func printFields(fields map[string]any, depth int) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		indent := ""
		for i := 0; i < depth; i++ {
			indent += "  "
		}
		if nested, ok := fields[name].(map[string]any); ok {
			fmt.Printf("%s%s:\n", indent, ui.FieldPath(name))
			printFields(nested, depth+1)
			continue
		}
		fmt.Printf("%s%s: %v\n", indent, ui.FieldPath(name), fields[name])
	}
}
