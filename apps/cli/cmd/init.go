package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/respvars/packages/core/config"
	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new respvars project",
	Long: `Initialize a new respvars project in the current directory.

This creates:
  - .respvars.config.json  - Configuration file
  - definitions.yaml       - Example variable definitions

Examples:
  respvars init
  respvars init --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	definitionsFile := filepath.Join(cwd, "definitions.yaml")

	if !forceInit {
		for _, f := range []string{configFile, definitionsFile} {
			if _, err := os.Stat(f); err == nil {
				return withExitCode(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f))
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.Headers = map[string]string{"User-Agent": "respvars/" + version}
	if err := cfg.SaveConfig(configFile); err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("failed to create config file: %w", err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	example := []definition.VariableDefinition{
		{VariableName: "ticketId", Attribute: definition.AttributeBody, Path: "$.ticket.id"},
		{VariableName: "firstTag", Attribute: definition.AttributeBody, Path: "$.ticket.tags[0]"},
		{VariableName: "assignee", Attribute: definition.AttributeBody, Path: "$.ticket.assignee"},
	}
	data, err := yaml.Marshal(example)
	if err != nil {
		return err
	}
	if err := os.WriteFile(definitionsFile, data, 0644); err != nil {
		return fmt.Errorf("failed to create definitions file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", definitionsFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nrespvars project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'respvars define -f definitions.yaml' and then 'respvars fetch <url>'.\n")

	return nil
}
