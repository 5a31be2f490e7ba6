package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

var (
	simOutput      string
	decodeIndex    int
	decodeAllPairs bool
)

var simulationCmd = &cobra.Command{
	Use:     "simulation",
	Aliases: []string{"sim"},
	Short:   "Manage Hoverfly simulations",
}

var simulationGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Fetch the loaded simulation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := newClient().GetSimulation(cmd.Context())
		if err != nil {
			return err
		}
		if simOutput != "" || jsonOutput {
			return writeSimulation(sim, simOutput)
		}
		printPairs(sim)
		return nil
	},
}

var simulationUploadCmd = &cobra.Command{
	Use:   "upload <glob>...",
	Short: "Replace the loaded simulation with one or more files",
	Long: `Load every file matching the given patterns (** is supported), merge them in
lexical order and upload the result. Later files win for identical requests.`,
	Example: `  hfctl simulation upload simulation.json
  hfctl simulation upload 'fixtures/**/*.json'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := loadPatterns(args)
		if err != nil {
			return err
		}
		if _, err := newClient().UploadSimulation(cmd.Context(), sim); err != nil {
			return err
		}
		printResult(sim, func() {
			fmt.Printf("Uploaded %d pair(s)\n", len(sim.Data.Pairs))
		})
		return nil
	},
}

var simulationAppendCmd = &cobra.Command{
	Use:   "append <file>",
	Short: "Merge a simulation file into the loaded simulation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := simulation.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		merged, err := newClient().AppendSimulation(cmd.Context(), sim)
		if err != nil {
			return err
		}
		printResult(merged, func() {
			fmt.Printf("Simulation now has %d pair(s)\n", len(merged.Data.Pairs))
		})
		return nil
	},
}

var simulationPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove the loaded simulation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().PurgeSimulation(cmd.Context()); err != nil {
			return err
		}
		printResult(map[string]bool{"purged": true}, func() {
			fmt.Println("Simulation purged")
		})
		return nil
	},
}

var simulationMergeCmd = &cobra.Command{
	Use:   "merge <left> <right>",
	Short: "Merge two simulation files locally",
	Long:  `Pairs of <right> replace pairs of <left> with an identical request matcher.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, right, err := loadTwo(args)
		if err != nil {
			return err
		}
		return writeSimulation(simulation.Merge(left, right), simOutput)
	},
}

var simulationSubtractCmd = &cobra.Command{
	Use:   "subtract <left> <right>",
	Short: "Drop from <left> every pair whose request also appears in <right>",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, right, err := loadTwo(args)
		if err != nil {
			return err
		}
		return writeSimulation(simulation.Subtract(left, right), simOutput)
	},
}

// ValidateResult is the JSON form of one validated file.
type ValidateResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Pairs int    `json:"pairs"`
	Error string `json:"error,omitempty"`
}

var simulationValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check simulation files without contacting Hoverfly",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]ValidateResult, 0, len(args))
		failed := 0
		for _, path := range args {
			result := ValidateResult{File: path, Valid: true}
			sim, err := simulation.LoadFromFile(path)
			if err != nil {
				result.Valid = false
				result.Error = err.Error()
				failed++
			} else {
				result.Pairs = len(sim.Data.Pairs)
			}
			results = append(results, result)
		}

		printResult(results, func() {
			for _, r := range results {
				if r.Valid {
					fmt.Printf("✓ %s (%d pairs)\n", r.File, r.Pairs)
				} else {
					fmt.Printf("✗ %s: %s\n", r.File, r.Error)
				}
			}
		})
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) invalid", failed, len(args))
		}
		return nil
	},
}

var simulationDecodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Print the plaintext response bodies of a simulation file",
	Long:  `Decode base64, gzip and brotli encoded response bodies.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := simulation.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		var indexes []int
		if decodeAllPairs {
			for i := range sim.Data.Pairs {
				indexes = append(indexes, i)
			}
		} else {
			if decodeIndex < 0 || decodeIndex >= len(sim.Data.Pairs) {
				return fmt.Errorf("pair index %d out of range (%d pairs)", decodeIndex, len(sim.Data.Pairs))
			}
			indexes = []int{decodeIndex}
		}

		bodies := make(map[string]string, len(indexes))
		for _, i := range indexes {
			body, err := sim.Data.Pairs[i].Response.DecodedBody()
			if err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}
			bodies[strconv.Itoa(i)] = body
		}

		printResult(bodies, func() {
			for _, i := range indexes {
				if decodeAllPairs {
					fmt.Printf("--- pair %d\n", i)
				}
				fmt.Println(bodies[strconv.Itoa(i)])
			}
		})
		return nil
	},
}

func loadPatterns(patterns []string) (*simulation.Simulation, error) {
	result := simulation.Build(nil)
	for _, pattern := range patterns {
		sim, err := simulation.LoadGlob(pattern)
		if err != nil {
			return nil, err
		}
		result = simulation.Merge(result, sim)
	}
	return result, nil
}

func loadTwo(args []string) (*simulation.Simulation, *simulation.Simulation, error) {
	left, err := simulation.LoadFromFile(args[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := simulation.LoadFromFile(args[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func init() {
	rootCmd.AddCommand(simulationCmd)
	simulationCmd.AddCommand(simulationGetCmd)
	simulationCmd.AddCommand(simulationUploadCmd)
	simulationCmd.AddCommand(simulationAppendCmd)
	simulationCmd.AddCommand(simulationPurgeCmd)
	simulationCmd.AddCommand(simulationMergeCmd)
	simulationCmd.AddCommand(simulationSubtractCmd)
	simulationCmd.AddCommand(simulationValidateCmd)
	simulationCmd.AddCommand(simulationDecodeCmd)

	for _, c := range []*cobra.Command{simulationGetCmd, simulationMergeCmd, simulationSubtractCmd} {
		c.Flags().StringVarP(&simOutput, "output", "o", "", "Write the simulation to a file (.json, .yaml)")
	}
	simulationDecodeCmd.Flags().IntVar(&decodeIndex, "index", 0, "Pair to decode")
	simulationDecodeCmd.Flags().BoolVar(&decodeAllPairs, "all", false, "Decode every pair")
}

