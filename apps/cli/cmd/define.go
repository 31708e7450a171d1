package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/spf13/cobra"
)

var (
	defineAttributeFlag string
	defineFileFlag      string
	defineListFlag      bool
)

var defineCmd = &cobra.Command{
	Use:   "define [name path]",
	Short: "Queue variable definitions for the next response",
	Long: `Queue variable definitions. The next "apply" or "fetch" saves the value
found at each path under "variable-<name>" and clears the queue.

Examples:
  respvars define ticket '$.ticketId'
  respvars define firstItem '$.items[0].id'
  respvars define --file definitions.yaml
  respvars define --list`,
	Args: func(cmd *cobra.Command, args []string) error {
		if defineFileFlag != "" || defineListFlag {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: defineCommand,
}

func init() {
	defineCmd.Flags().StringVarP(&defineAttributeFlag, "attribute", "a", string(definition.AttributeBody), "Response attribute to read from")
	defineCmd.Flags().StringVarP(&defineFileFlag, "file", "f", "", "Read definitions from a JSON or YAML file")
	defineCmd.Flags().BoolVarP(&defineListFlag, "list", "l", false, "List pending definitions instead of adding")
}

func defineCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	st, err := s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()

	if defineListFlag {
		pending, err := definition.Pending(ctx, st)
		if err != nil {
			return withExitCode(ExitDefinitionError, err)
		}
		if len(pending) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No pending definitions")
			return nil
		}
		for _, d := range pending {
			fmt.Fprintf(cmd.OutOrStdout(), "%s <- %s (%s)\n", d.VariableName, d.Path, d.Attribute)
		}
		return nil
	}

	var defs []definition.VariableDefinition
	if defineFileFlag != "" {
		defs, err = definition.LoadFile(defineFileFlag)
		if err != nil {
			return withExitCode(ExitDefinitionError, err)
		}
		if len(defs) == 0 {
			return withExitCode(ExitDefinitionError, errors.New("no definitions in "+defineFileFlag))
		}
	} else {
		defs = []definition.VariableDefinition{{
			VariableName: args[0],
			Attribute:    definition.Attribute(defineAttributeFlag),
			Path:         args[1],
		}}
	}

	data, err := definition.Encode(defs)
	if err != nil {
		return withExitCode(ExitDefinitionError, err)
	}
	if err := definition.Validate(data); err != nil {
		return withExitCode(ExitDefinitionError, err)
	}

	for _, d := range defs {
		if !d.Attribute.Known() {
			s.logger.Warn("attribute is not supported and will be skipped",
				slog.String("variable", d.VariableName),
				slog.String("attribute", string(d.Attribute)))
		}
	}

	if err := definition.Append(ctx, st, defs...); err != nil {
		return withExitCode(ExitHookError, err)
	}

	for _, d := range defs {
		fmt.Fprintf(cmd.OutOrStdout(), "Queued: %s <- %s (%s)\n", d.VariableName, d.Path, d.Attribute)
	}
	return nil
}
