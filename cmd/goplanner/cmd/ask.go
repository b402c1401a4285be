package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goplanner/internal/agent"
	"github.com/dbsmedya/goplanner/internal/compiler"
	"github.com/dbsmedya/goplanner/internal/database"
	"github.com/dbsmedya/goplanner/internal/render"
)

var askVerbose bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a natural-language question against the database",
	Long: `Ask runs the full pipeline for one question: table selection, query
planning, validation, SQL compilation, and execution. Results are printed
as an aligned table.

When the plan is rejected by validation and an LLM fallback is configured,
the answer comes from the fallback agent instead.

Example:
  goplanner ask "which platform has the cheapest onions right now"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false,
		"Print the plan, SQL, and engine metrics along with results")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := database.SetupSignalHandler()

	env, err := setupRuntime(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	result, err := env.engine.Process(ctx, args[0])
	if err != nil {
		var vErr *agent.ValidationError
		if errors.As(err, &vErr) {
			fmt.Fprintln(outputWriter, "Plan rejected:")
			for _, reason := range vErr.Reasons {
				fmt.Fprintf(outputWriter, "  - %s\n", reason)
			}
			fmt.Fprintln(outputWriter, "\nTry a narrower question, or enable the LLM fallback in config.")
			return err
		}
		var execErr *compiler.ExecutionError
		if errors.As(err, &execErr) {
			return fmt.Errorf("query execution failed: %w", execErr)
		}
		return err
	}

	if askVerbose {
		render.Plan(outputWriter, result.Plan)
		if result.SQL != "" {
			render.SQL(outputWriter, result.SQL)
		}
	}

	if result.Answer != "" {
		fmt.Fprintln(outputWriter, result.Answer)
	} else {
		if result.Cached {
			fmt.Fprintln(outputWriter, "(cached)")
		}
		render.Results(outputWriter, result.Data)
	}

	if askVerbose {
		printMetrics(env.engine.Metrics())
	}

	return nil
}

func printMetrics(m agent.Metrics) {
	fmt.Fprintf(outputWriter, "\nCache: %d entries, %d hits, %d misses\n",
		m.Cache.Size, m.Cache.Hits, m.Cache.Misses)
	for key, b := range m.Buckets {
		fmt.Fprintf(outputWriter, "Bucket %s: %d executions, avg %.3fs, avg %.0f rows\n",
			key, b.Executions, b.AvgSeconds, b.AvgRows)
	}
}
