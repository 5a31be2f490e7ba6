package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bwilczek/hoverfly-client-go/pkg/middleware"
)

var (
	middlewareBinary     string
	middlewareScript     string
	middlewareScriptFile string
	middlewareRemote     string
)

var middlewareCmd = &cobra.Command{
	Use:   "middleware",
	Short: "Manage Hoverfly middleware",
}

var middlewareGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the configured middleware",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mw, err := newClient().GetMiddleware(cmd.Context())
		if err != nil {
			return err
		}
		printResult(mw, func() { printMiddleware(mw) })
		return nil
	},
}

var middlewareSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Configure local or remote middleware",
	Example: `  hfctl middleware set --binary python3 --script-file ./middleware.py
  hfctl middleware set --remote http://localhost:9000/process`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := middleware.Payload{
			Binary: middlewareBinary,
			Script: middlewareScript,
			Remote: middlewareRemote,
		}
		if middlewareScriptFile != "" {
			data, err := os.ReadFile(middlewareScriptFile)
			if err != nil {
				return fmt.Errorf("failed to read script file: %w", err)
			}
			payload.Script = string(data)
		}
		if payload.IsEmpty() {
			return errors.New("one of --binary or --remote is required (use 'hfctl middleware purge' to disable middleware)")
		}

		mw, err := newClient().SetMiddleware(cmd.Context(), payload)
		if err != nil {
			return err
		}
		printResult(mw, func() { printMiddleware(mw) })
		return nil
	},
}

var middlewarePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Disable middleware",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mw, err := newClient().PurgeMiddleware(cmd.Context())
		if err != nil {
			return err
		}
		printResult(mw, func() { fmt.Println("Middleware disabled") })
		return nil
	},
}

func printMiddleware(mw *middleware.Payload) {
	switch {
	case mw.IsEmpty():
		fmt.Println("No middleware configured")
	case mw.Remote != "":
		fmt.Printf("Remote: %s\n", mw.Remote)
	default:
		fmt.Printf("Binary: %s\n", mw.Binary)
		if mw.Script != "" {
			fmt.Printf("Script:\n%s\n", mw.Script)
		}
	}
}

func init() {
	rootCmd.AddCommand(middlewareCmd)
	middlewareCmd.AddCommand(middlewareGetCmd)
	middlewareCmd.AddCommand(middlewareSetCmd)
	middlewareCmd.AddCommand(middlewarePurgeCmd)

	middlewareSetCmd.Flags().StringVar(&middlewareBinary, "binary", "", "Executable that runs the middleware script")
	middlewareSetCmd.Flags().StringVar(&middlewareScript, "script", "", "Middleware script source")
	middlewareSetCmd.Flags().StringVar(&middlewareScriptFile, "script-file", "", "Read the middleware script from a file")
	middlewareSetCmd.Flags().StringVar(&middlewareRemote, "remote", "", "URL of a remote HTTP middleware")
	middlewareSetCmd.MarkFlagsMutuallyExclusive("script", "script-file")
	middlewareSetCmd.MarkFlagsMutuallyExclusive("remote", "binary")
}
