package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/spf13/cobra"
)

var clearPendingFlag bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every entry from the store",
	Long: `Remove every entry from the store, or only the pending definitions.

Examples:
  respvars clear
  respvars clear --pending`,
	Args: cobra.NoArgs,
	RunE: clearCommand,
}

func init() {
	clearCmd.Flags().BoolVar(&clearPendingFlag, "pending", false, "Only drop pending definitions")
}

func clearCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	st, err := s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if clearPendingFlag {
		if err := st.Remove(cmd.Context(), definition.StoreKey); err != nil {
			return withExitCode(ExitHookError, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Pending definitions cleared")
		return nil
	}

	if err := st.Clear(cmd.Context()); err != nil {
		return withExitCode(ExitHookError, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Store cleared")
	return nil
}
