package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/abdul-hamid-achik/respvars/packages/capture"
	"github.com/spf13/cobra"
)

var applyWatchFlag bool

var applyCmd = &cobra.Command{
	Use:   "apply [file|-]",
	Short: "Run the variable saving hook on a response body",
	Long: `Run the variable saving hook on a response body read from a file or stdin.

The body is only read when at least one pending definition needs it.

Examples:
  respvars apply response.json
  curl -s https://api.example.com/tickets | respvars apply
  respvars apply response.json --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: applyCommand,
}

func init() {
	applyCmd.Flags().BoolVarP(&applyWatchFlag, "watch", "w", false, "Re-run the hook whenever the file changes")
}

func applyCommand(cmd *cobra.Command, args []string) error {
	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	if applyWatchFlag && source == "-" {
		return withExitCode(ExitUsageError, errors.New("--watch requires a file argument"))
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	st, err := s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	apply := func(ctx context.Context) error {
		return s.runHook(ctx, st, bodySource(cmd.InOrStdin(), source))
	}

	if !applyWatchFlag {
		return apply(cmd.Context())
	}

	if err := apply(cmd.Context()); err != nil {
		s.formatter.FormatError(err)
	}

	// Runs never overlap against the same store.
	var mu sync.Mutex
	return watchFile(cmd.Context(), cmd.OutOrStdout(), source, func() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\n", source)
		if err := apply(cmd.Context()); err != nil {
			s.formatter.FormatError(err)
		}
	})
}

// bodySource reads the response body from stdin ("-") or a file on demand.
func bodySource(stdin io.Reader, source string) capture.Accessor {
	return capture.AccessorFunc(func(context.Context) (string, error) {
		var (
			data []byte
			err  error
		)
		if source == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(source)
		}
		if err != nil {
			return "", fmt.Errorf("cannot read response body: %w", err)
		}
		return string(data), nil
	})
}
