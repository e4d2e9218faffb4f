package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squintql/squint/internal/schema"
	"github.com/squintql/squint/internal/ui"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the loaded entity schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		sch, err := loadSchema()
		if err != nil {
			return err
		}

		entities := make([]string, 0, len(sch.Entities))
		for name := range sch.Entities {
			entities = append(entities, name)
		}
		sort.Strings(entities)

		for _, name := range entities {
			fmt.Println(ui.Header(name))
			printProperties(sch.Entities[name].Properties, 1)
		}
		return nil
	},
}

func printProperties(props map[string]*schema.PropertyDefinition, depth int) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		pd := props[name]
		switch {
		case pd.IsEmbedded():
			fmt.Printf("%s%s:\n", indent, ui.FieldPath(name))
			printProperties(pd.Properties, depth+1)
		case pd.Analyzed:
			fmt.Printf("%s%s: %s %s\n", indent, ui.FieldPath(name), pd.Type, ui.Hint("(analyzed)"))
		default:
			fmt.Printf("%s%s: %s\n", indent, ui.FieldPath(name), pd.Type)
		}
	}
}
