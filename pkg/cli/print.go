package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/bwilczek/hoverfly-client-go/pkg/cli/internal/output"
	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. Human-readable prose goes to stderr or is omitted entirely.
// textFn is called only in text mode.
func printResult(data any, textFn func()) {
	if jsonOutput {
		_ = output.JSON(data)
		return
	}
	textFn()
}

// printPairs renders simulation pairs as an aligned table.
func printPairs(sim *simulation.Simulation) {
	tw := output.Table()
	_, _ = fmt.Fprintln(tw, "#\tMETHOD\tDESTINATION\tPATH\tSTATUS")
	for i, p := range sim.Data.Pairs {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", i,
			describe(p.Request.Method), describe(p.Request.Destination), describe(p.Request.Path),
			p.Response.Status)
	}
	_ = tw.Flush()
	fmt.Printf("%d pair(s)\n", len(sim.Data.Pairs))
}

// describe renders matchers compactly: exact values as-is, others as matcher:value.
func describe(matchers []simulation.Matcher) string {
	if len(matchers) == 0 {
		return "*"
	}
	parts := make([]string, 0, len(matchers))
	for _, m := range matchers {
		if m.Matcher == simulation.MatcherExact {
			parts = append(parts, fmt.Sprint(m.Value))
		} else {
			parts = append(parts, fmt.Sprintf("%s:%v", m.Matcher, m.Value))
		}
	}
	return strings.Join(parts, ",")
}

// writeSimulation saves sim to path when set, otherwise prints it as JSON.
func writeSimulation(sim *simulation.Simulation, path string) error {
	if path != "" {
		if err := simulation.SaveToFile(path, sim); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d pair(s) to %s\n", len(sim.Data.Pairs), path)
		return nil
	}
	data, err := simulation.ToJSON(sim)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
