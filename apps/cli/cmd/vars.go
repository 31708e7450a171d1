package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/abdul-hamid-achik/respvars/packages/store"
	"github.com/spf13/cobra"
)

var varsAllFlag bool

var varsCmd = &cobra.Command{
	Use:   "vars [name...]",
	Short: "Show saved variables",
	Long: `Show saved variables. With names, only those variables are printed.

Examples:
  respvars vars
  respvars vars ticket
  respvars vars --all -o json`,
	RunE: varsCommand,
}

func init() {
	varsCmd.Flags().BoolVar(&varsAllFlag, "all", false, "Show every store entry, including pending definitions")
}

func varsCommand(cmd *cobra.Command, args []string) error {
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

	if len(args) > 0 {
		entries := make([]store.Entry, 0, len(args))
		for _, name := range args {
			key := definition.VariableKey(name)
			value, ok, err := st.Get(ctx, key)
			if err != nil {
				return withExitCode(ExitHookError, err)
			}
			if !ok {
				return withExitCode(ExitHookError, fmt.Errorf("variable %q not found", name))
			}
			entries = append(entries, store.Entry{Key: key, Value: value})
		}
		s.formatter.FormatEntries(entries)
		return nil
	}

	all, err := st.All(ctx)
	if err != nil {
		return withExitCode(ExitHookError, err)
	}

	entries := all
	if !varsAllFlag {
		entries = make([]store.Entry, 0, len(all))
		for _, e := range all {
			if strings.HasPrefix(e.Key, definition.VariablePrefix) {
				entries = append(entries, e)
			}
		}
	}
	s.formatter.FormatEntries(entries)
	return nil
}
