package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bwilczek/hoverfly-client-go/pkg/cli/internal/output"
)

// StatusOutput is the JSON form of `hfctl status`.
type StatusOutput struct {
	AdminURL   string `json:"adminUrl"`
	ProxyURL   string `json:"proxyUrl"`
	Alive      bool   `json:"alive"`
	Mode       string `json:"mode,omitempty"`
	Middleware string `json:"middleware,omitempty"`
	Pairs      int    `json:"pairs"`
	Journal    int    `json:"journal"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether Hoverfly is reachable and what it is doing",
	Long: `Show the configured admin and proxy URLs and, when the admin API answers,
the mode, middleware, number of simulated pairs and journal size.

An unreachable admin API is reported as not reachable and exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := newClient()
		out := StatusOutput{AdminURL: c.BaseURL(), ProxyURL: cfg.ProxyURL}

		m, err := c.GetMode(ctx)
		if err != nil {
			printStatus(out)
			return err
		}
		out.Alive = true
		out.Mode = string(m.Mode)

		mw, err := c.GetMiddleware(ctx)
		if err != nil {
			return err
		}
		switch {
		case mw.Remote != "":
			out.Middleware = mw.Remote
		case mw.Binary != "":
			out.Middleware = mw.Binary
		}

		sim, err := c.GetSimulation(ctx)
		if err != nil {
			return err
		}
		out.Pairs = len(sim.Data.Pairs)

		j, err := c.GetJournal(ctx)
		if err != nil {
			return err
		}
		out.Journal = j.Total

		printStatus(out)
		return nil
	},
}

func printStatus(out StatusOutput) {
	printResult(out, func() {
		tw := output.Table()
		_, _ = fmt.Fprintf(tw, "Admin URL:\t%s\n", out.AdminURL)
		_, _ = fmt.Fprintf(tw, "Proxy URL:\t%s\n", out.ProxyURL)
		if !out.Alive {
			_, _ = fmt.Fprintln(tw, "Reachable:\tno")
			_ = tw.Flush()
			return
		}
		_, _ = fmt.Fprintln(tw, "Reachable:\tyes")
		_, _ = fmt.Fprintf(tw, "Mode:\t%s\n", output.Title(out.Mode))
		middleware := out.Middleware
		if middleware == "" {
			middleware = "none"
		}
		_, _ = fmt.Fprintf(tw, "Middleware:\t%s\n", middleware)
		_, _ = fmt.Fprintf(tw, "Pairs:\t%d\n", out.Pairs)
		_, _ = fmt.Fprintf(tw, "Journal entries:\t%d\n", out.Journal)
		_ = tw.Flush()
	})
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
