package cmd

import (
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/respvars/packages/http"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Send an HTTP request and save variables from its response",
	Long: `Send an HTTP request and run the variable saving hook on the response.

Examples:
  respvars fetch https://api.example.com/tickets/1
  respvars fetch https://api.example.com/tickets -X POST -H 'Content-Type: application/json' -d '{"title":"x"}'
  respvars fetch https://localhost:8443/health --insecure --timeout 5s`,
	Args: cobra.ExactArgs(1),
	RunE: fetchCommand,
}

var (
	fetchMethodFlag   string
	fetchHeaderFlags  []string
	fetchDataFlag     string
	fetchTimeoutFlag  string
	fetchInsecureFlag bool
	fetchProxyFlag    string
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchMethodFlag, "request", "X", "GET", "HTTP method")
	fetchCmd.Flags().StringArrayVarP(&fetchHeaderFlags, "header", "H", nil, "Request header as 'Name: value' (repeatable)")
	fetchCmd.Flags().StringVarP(&fetchDataFlag, "data", "d", "", "Request body")
	fetchCmd.Flags().StringVar(&fetchTimeoutFlag, "timeout", getEnvString("RESPVARS_TIMEOUT", ""), "Request timeout, e.g. 30s (env: RESPVARS_TIMEOUT)")
	fetchCmd.Flags().BoolVarP(&fetchInsecureFlag, "insecure", "k", getEnvBool("RESPVARS_INSECURE", false), "Disable SSL certificate validation (env: RESPVARS_INSECURE)")
	fetchCmd.Flags().StringVar(&fetchProxyFlag, "proxy", getEnvString("RESPVARS_PROXY", ""), "Proxy URL for HTTP requests (env: RESPVARS_PROXY)")
}

func fetchCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	timeout := time.Duration(s.cfg.Timeout) * time.Millisecond
	if fetchTimeoutFlag != "" {
		timeout, err = time.ParseDuration(fetchTimeoutFlag)
		if err != nil {
			return withExitCode(ExitUsageError, fmt.Errorf("invalid timeout %q: %w", fetchTimeoutFlag, err))
		}
	}

	req := http.NewRequest(fetchMethodFlag, args[0])
	for _, h := range fetchHeaderFlags {
		if !req.ParseHeader(h) {
			return withExitCode(ExitUsageError, fmt.Errorf("invalid header %q, expected 'Name: value'", h))
		}
	}
	if fetchDataFlag != "" {
		req.SetBody(fetchDataFlag)
	}

	st, err := s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	client := http.NewClient(
		http.WithTimeout(timeout),
		http.WithDefaultHeaders(s.cfg.Headers),
		http.WithValidateSSL(!(fetchInsecureFlag || s.cfg.GetInsecure())),
		http.WithProxy(fetchProxyFlag),
	)

	resp, err := client.Do(cmd.Context(), req)
	if err != nil {
		return withExitCode(ExitNetworkError, fmt.Errorf("request failed: %w", err))
	}

	status := color.New(color.FgGreen).SprintFunc()
	if !resp.IsSuccess() {
		status = color.New(color.FgYellow).SprintFunc()
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s (%dms)\n", req.Method, req.URL, status(resp.Status), resp.DurationMs())

	return s.runHook(cmd.Context(), st, resp.Accessor())
}
