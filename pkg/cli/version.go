package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/bwilczek/hoverfly-client-go/pkg/cli/internal/output"
	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

var versionShort bool

// VersionOutput is the JSON form of `hfctl version`.
type VersionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	// SchemaVersion and HoverflyVersion are written into the meta block of
	// simulations built by merge, subtract and upload.
	SchemaVersion   string `json:"schemaVersion"`
	HoverflyVersion string `json:"hoverflyVersion"`
}

// buildVersion fills in whatever ldflags left unset from the module build info.
func buildVersion() VersionOutput {
	out := VersionOutput{
		Version:         Version,
		Commit:          Commit,
		Date:            BuildDate,
		Go:              fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		SchemaVersion:   simulation.DefaultSchemaVersion,
		HoverflyVersion: simulation.DefaultHoverflyVersion,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}
	if out.Version == "dev" && info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = setting.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = setting.Value
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty && out.Commit != "none" {
		out.Commit += "-dirty"
	}
	return out
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the hfctl version and the simulation format it writes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := buildVersion()
		switch {
		case jsonOutput:
			return output.JSON(out)
		case versionShort:
			fmt.Println(out.Version)
		default:
			fmt.Printf("hfctl %s (%s, %s)\n", out.Version, out.Commit, out.Date)
			fmt.Printf("simulation schema %s, Hoverfly %s\n", out.SchemaVersion, out.HoverflyVersion)
			fmt.Println(out.Go)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
}
