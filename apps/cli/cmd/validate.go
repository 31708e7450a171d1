package cmd

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/abdul-hamid-achik/respvars/packages/jsonpath"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate definitions files without queuing them",
	Long: `Validate JSON or YAML definitions files without queuing them.

Each file must hold a list of definitions with a name, attribute and path.
Paths are checked for constructs the hook cannot evaluate.

Examples:
  respvars validate definitions.yaml
  respvars validate a.json b.yml`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	hasErrors := false
	for _, file := range args {
		if err := validateFile(file); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
		}
	}

	if hasErrors {
		return withExitCode(ExitDefinitionError, errors.New("validation failed"))
	}
	return nil
}

func validateFile(file string) error {
	defs, err := definition.LoadFile(file)
	if err != nil {
		return err
	}
	data, err := definition.Encode(defs)
	if err != nil {
		return err
	}
	if err := definition.Validate(data); err != nil {
		return err
	}

	var errs []error
	for _, d := range defs {
		if !d.Attribute.Known() {
			errs = append(errs, fmt.Errorf("%s: unsupported attribute %q", d.VariableName, d.Attribute))
		}
		if _, err := jsonpath.Compile(d.Path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.VariableName, err))
		}
	}
	return errors.Join(errs...)
}
