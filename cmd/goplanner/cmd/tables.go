package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goplanner/internal/database"
	"github.com/dbsmedya/goplanner/internal/logger"
	"github.com/dbsmedya/goplanner/internal/schema"
)

var tablesVerbose bool

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables in the schema catalog",
	Long: `Tables introspects the database schema and lists every table the
planner can see. With --verbose each table's columns, foreign keys, and
indexes are shown.`,
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().BoolVarP(&tablesVerbose, "verbose", "v", false,
		"Show columns, foreign keys, and indexes per table")

	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	ctx := database.SetupSignalHandler()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	manager := database.NewManager(cfg)
	if err := manager.Connect(ctx); err != nil {
		return err
	}
	defer manager.Close()

	catalog := schema.NewCatalog(schema.NewMySQLIntrospector(manager.DB), log)
	if err := catalog.Load(ctx); err != nil {
		return fmt.Errorf("failed to load schema catalog: %w", err)
	}

	fmt.Fprintf(outputWriter, "%d tables\n\n", catalog.Len())
	for _, name := range catalog.Tables() {
		fmt.Fprintln(outputWriter, name)
		if !tablesVerbose {
			continue
		}

		meta := catalog.Table(name)
		for el := meta.Columns.Front(); el != nil; el = el.Next() {
			fmt.Fprintf(outputWriter, "  %s %s\n", el.Key, el.Value)
		}
		for _, fk := range meta.ForeignKeys {
			fmt.Fprintf(outputWriter, "  FK %s -> %s.%s\n", fk.Column, fk.RefTable, fk.RefColumn)
		}
		if len(meta.Indexes) > 0 {
			fmt.Fprintf(outputWriter, "  indexes: %s\n", strings.Join(meta.Indexes, ", "))
		}
		fmt.Fprintln(outputWriter)
	}

	return nil
}
