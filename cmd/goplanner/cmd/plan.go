package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goplanner/internal/database"
	"github.com/dbsmedya/goplanner/internal/render"
)

var planCmd = &cobra.Command{
	Use:   "plan [question]",
	Short: "Show the query plan and SQL for a question without executing it",
	Long: `Plan runs table selection, planning, and compilation for a question
and prints the resulting plan and SQL. Nothing is executed against the
database beyond schema introspection.

Example:
  goplanner plan "top 5 discounted dairy products"`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := database.SetupSignalHandler()

	env, err := setupRuntime(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	plan, sqlText, reasons := env.engine.PlanOnly(args[0])

	render.Plan(outputWriter, plan)
	render.SQL(outputWriter, sqlText)

	if len(reasons) > 0 {
		fmt.Fprintln(outputWriter, "Validation would reject this plan:")
		for _, reason := range reasons {
			fmt.Fprintf(outputWriter, "  - %s\n", reason)
		}
	} else {
		fmt.Fprintln(outputWriter, "Plan is valid.")
	}

	return nil
}
