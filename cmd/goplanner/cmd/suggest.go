package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goplanner/internal/database"
)

var suggestColumns bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [question]",
	Short: "Suggest relevant tables (or columns) for a question",
	Long: `Suggest prints the tables the selector considers relevant for a
question, in relevance order. With --columns it prints "table.column"
suggestions instead.

Example:
  goplanner suggest "cheapest milk on blinkit"
  goplanner suggest --columns "sale price and discount"`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestColumns, "columns", false,
		"Suggest table.column references instead of tables")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := database.SetupSignalHandler()

	env, err := setupRuntime(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	if suggestColumns {
		for _, col := range env.engine.SuggestColumns(args[0]) {
			fmt.Fprintln(outputWriter, col)
		}
		return nil
	}

	for i, table := range env.engine.SuggestTables(args[0]) {
		fmt.Fprintf(outputWriter, "%d. %s\n", i+1, table)
	}
	return nil
}
