package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/relgen/relgen/relgen"
	"github.com/relgen/relgen/relgen/schemaio"
	"github.com/spf13/cobra"
)

var (
	validateSchemaPath string
	validateDataPath   string
	validateTAP        bool

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check an already-generated dataset against a schema's constraints",
		Long: `Validate reads a schema and a JSON dataset (the shape relgen generate
--format json writes: {"table_name": [rows...]}) and reports every primary
key, foreign key, unique, not-null, and recognized CHECK violation found.

Example:
  relgen validate --schema schema.json --data dataset.json`,
		RunE: runValidate,
	}
)

func init() {
	RootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "path to the JSON schema document (required)")
	validateCmd.Flags().StringVar(&validateDataPath, "data", "", "path to the JSON dataset to validate (required)")
	validateCmd.Flags().BoolVar(&validateTAP, "tap", false, "emit a TAP-13 report instead of a plain summary")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("data")
}

func runValidate(cmd *cobra.Command, args []string) error {
	sf, err := os.Open(validateSchemaPath)
	if err != nil {
		return fmt.Errorf("opening schema file: %w", err)
	}
	defer sf.Close()
	schema, err := schemaio.Decode(sf)
	if err != nil {
		return err
	}

	df, err := os.Open(validateDataPath)
	if err != nil {
		return fmt.Errorf("opening data file: %w", err)
	}
	defer df.Close()

	var byTable map[string][]relgen.Record
	if err := json.NewDecoder(df).Decode(&byTable); err != nil {
		return fmt.Errorf("decoding dataset: %w", err)
	}

	var data []relgen.TableData
	for _, t := range schema.Tables {
		data = append(data, relgen.TableData{Table: t.Name, Records: byTable[t.Name]})
	}

	report := relgen.Validate(schema, data)
	if validateTAP {
		relgen.WriteTAP(os.Stdout, report)
		return nil
	}

	for name, tr := range report.Tables {
		status := "OK"
		if !tr.Valid {
			status = "FAIL"
		}
		fmt.Printf("%-6s %s (%d error(s))\n", status, name, len(tr.Errors))
		for _, e := range tr.Errors {
			fmt.Printf("       row=%d column=%s %s: %s\n", e.RowIndex, e.Column, e.Type, e.Message)
		}
	}
	if report.Totals.ErrorsFound > 0 {
		os.Exit(1)
	}
	return nil
}
