// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squintql/squint/internal/config"
	"github.com/squintql/squint/internal/schema"
)

var (
	// Global flags
	schemaPathFlag string
	indexPathFlag  string
	configPathFlag string

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "squint",
	Short: "Squint - schema-checked queries over a local document index",
	Long: `Squint resolves an HQL-like query language against a YAML entity
schema and runs the result over a local SQLite full-text index.

Queries name a single entity type, may join embedded properties under
aliases, project leaf fields, and filter with range, equality, and
full-text match predicates.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPathFlag != "" {
			cfg, err = config.LoadFrom(configPathFlag)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaPathFlag, "schema", "", "path to the schema YAML file")
	rootCmd.PersistentFlags().StringVar(&indexPathFlag, "index", "", "path to the index database")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "path to the config file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(getCmd)
}

// schemaPath returns the schema location: flag, then config, then the
// working directory default.
func schemaPath() string {
	if schemaPathFlag != "" {
		return schemaPathFlag
	}
	if cfg != nil && cfg.Schema != "" {
		return cfg.Schema
	}
	return "schema.yaml"
}

// indexPath returns the index database location: flag, then config, then
// the working directory default.
func indexPath() string {
	if indexPathFlag != "" {
		return indexPathFlag
	}
	if cfg != nil && cfg.Index != "" {
		return cfg.Index
	}
	return "squint.db"
}

func loadSchema() (*schema.Schema, error) {
	sch, err := schema.Load(schemaPath())
	if err != nil {
		return nil, err
	}
	return sch, nil
}
