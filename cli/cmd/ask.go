package cmd

import (
	"fmt"
	"strings"
	"time"

	"frameworks/api_lookout/lookout"
	"frameworks/pkg/config"
	"frameworks/pkg/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var (
		asHTML   bool
		mcpURL   string
		parallel bool
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Answer one query and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query is required")
			}

			logger := logging.NewLoggerWithService("lookout-cli")
			logger.SetOutput(cmd.ErrOrStderr())
			if !verbose {
				logger.SetLevel(logrus.WarnLevel)
			}
			config.LoadEnv(logger)

			cfg := lookout.LoadConfig()
			if mcpURL != "" {
				cfg.MCPURL = mcpURL
			}
			if cmd.Flags().Changed("parallel") {
				cfg.ParallelTools = parallel
			}
			if timeout > 0 {
				cfg.ToolTimeout = timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			eng, err := lookout.NewEngine(cfg, logger)
			if err != nil {
				return err
			}
			result := eng.Handle(cmd.Context(), query)

			out := cmd.OutOrStdout()
			if asHTML {
				body, err := lookout.RenderHTML(result.Document)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, body)
			} else {
				fmt.Fprint(out, lookout.RenderText(result.Document))
			}
			fmt.Fprintf(out, "\nProcessed in %.2f sec\n", result.Elapsed.Seconds())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "print the HTML rendering instead of text")
	cmd.Flags().StringVar(&mcpURL, "mcp-url", "", "tool server endpoint (overrides MCP_URL)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "query search tools concurrently (overrides LOOKOUT_PARALLEL_TOOLS)")
	cmd.Flags().DurationVar(&timeout, "tool-timeout", 0, "per tool call deadline (overrides LOOKOUT_TOOL_TIMEOUT)")
	return cmd
}
