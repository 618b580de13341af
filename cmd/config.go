package cmd

import (
	"fmt"

	"github.com/relgen/relgen/relgen"
	"github.com/spf13/cobra"
)

var (
	configInitPath string

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage relgen configuration files",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Scaffold a default config file",
		Long: `Init writes a default relgen config file (YAML) with seed, locale,
count, format, output, validate and edge_cases set to defaults; the
distributions and per-table keys are not written.

Example:
  relgen config init --path relgen.yaml`,
		RunE: runConfigInit,
	}
)

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().StringVar(&configInitPath, "path", "relgen.yaml", "where to write the config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configInitPath
	if path == "" {
		p, err := relgen.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := relgen.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Printf("wrote default configuration to %s\n", path)
	return nil
}
