package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/bwilczek/hoverfly-client-go/pkg/cli/internal/output"
	"github.com/bwilczek/hoverfly-client-go/pkg/mode"
)

var (
	headersWhitelist   []string
	stateful           bool
	overwriteDuplicate bool
	interactiveMode    bool
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Get or set the Hoverfly mode",
}

var modeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newClient().GetMode(cmd.Context())
		if err != nil {
			return err
		}
		printResult(m, func() {
			fmt.Println(m.Mode)
			if m.Arguments.MatchingStrategy != "" {
				fmt.Printf("Matching strategy: %s\n", m.Arguments.MatchingStrategy)
			}
		})
		return nil
	},
}

var modeSetCmd = &cobra.Command{
	Use:   "set [mode]",
	Short: "Switch Hoverfly to another mode",
	Long: `Switch Hoverfly to capture, simulate, spy, modify or synthesize.

The mode name is sent as given so that Hoverfly itself decides whether it is
valid. Capture arguments only apply to capture mode.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		switch {
		case len(args) == 1:
			name = args[0]
		case interactiveMode:
			picked, err := pickMode()
			if err != nil {
				return err
			}
			name = picked
		default:
			return errors.New(`mode is required

Usage: hfctl mode set <capture|simulate|spy|modify|synthesize>

Run 'hfctl mode set --interactive' to pick one`)
		}

		payload := mode.SetPayload{Mode: mode.Mode(name)}
		if len(headersWhitelist) > 0 || stateful || overwriteDuplicate {
			payload.Arguments = &mode.SetArguments{
				HeadersWhitelist:   headersWhitelist,
				Stateful:           stateful,
				OverwriteDuplicate: overwriteDuplicate,
			}
			if payload.Mode != mode.Capture {
				output.Warn("capture arguments have no effect in %s mode", name)
			}
		}

		m, err := newClient().SetMode(cmd.Context(), payload)
		if err != nil {
			return err
		}
		printResult(m, func() {
			fmt.Printf("Mode set to %s\n", output.Title(string(m.Mode)))
		})
		return nil
	},
}

func pickMode() (string, error) {
	options := make([]huh.Option[string], 0, len(mode.All))
	for _, m := range mode.All {
		options = append(options, huh.NewOption(output.Title(string(m)), string(m)))
	}

	var picked string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Hoverfly mode").
				Options(options...).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return picked, nil
}

func init() {
	rootCmd.AddCommand(modeCmd)
	modeCmd.AddCommand(modeGetCmd)
	modeCmd.AddCommand(modeSetCmd)

	modeSetCmd.Flags().StringSliceVar(&headersWhitelist, "headers-whitelist", nil, "Request headers to capture (\"*\" for all)")
	modeSetCmd.Flags().BoolVar(&stateful, "stateful", false, "Capture sequences of identical requests as stateful pairs")
	modeSetCmd.Flags().BoolVar(&overwriteDuplicate, "overwrite-duplicate", false, "Replace pairs with an identical request when capturing")
	modeSetCmd.Flags().BoolVarP(&interactiveMode, "interactive", "i", false, "Pick the mode from a list")
}
