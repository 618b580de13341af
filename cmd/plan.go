package cmd

import (
	"fmt"
	"os"

	"github.com/relgen/relgen/relgen"
	"github.com/relgen/relgen/relgen/schemaio"
	"github.com/spf13/cobra"
)

var (
	planSchemaPath string

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Print the table dependency plan for a schema",
		Long: `Plan resolves the foreign-key dependency graph for a schema and prints
the phases generation will run in: standalone tables in topological order,
and any FK cycles as deferred-FK groups.

Example:
  relgen plan --schema schema.json`,
		RunE: runPlan,
	}
)

func init() {
	RootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planSchemaPath, "schema", "", "path to the JSON schema document (required)")
	_ = planCmd.MarkFlagRequired("schema")
}

func runPlan(cmd *cobra.Command, args []string) error {
	f, err := os.Open(planSchemaPath)
	if err != nil {
		return fmt.Errorf("opening schema file: %w", err)
	}
	defer f.Close()

	schema, err := schemaio.Decode(f)
	if err != nil {
		return err
	}

	plan, err := relgen.Analyze(schema)
	if err != nil {
		return err
	}

	for i, phase := range plan.Phases {
		if phase.Table != "" {
			fmt.Printf("%2d. %s\n", i+1, phase.Table)
			continue
		}
		fmt.Printf("%2d. cycle group: %v\n", i+1, phase.Cycle.Tables)
		for table, fk := range phase.Cycle.DeferredFK {
			fmt.Printf("      defer %s.%v -> %s\n", table, fk.Columns, fk.RefTable)
		}
	}
	return nil
}
