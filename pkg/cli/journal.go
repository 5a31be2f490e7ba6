package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bwilczek/hoverfly-client-go/pkg/cli/internal/output"
	"github.com/bwilczek/hoverfly-client-go/pkg/journal"
	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

var (
	journalOffset   int
	journalLimit    int
	journalSort     string
	journalWhere    string
	journalJSONPath string
	journalHAR      string

	searchPath        string
	searchMethod      string
	searchDestination string
	searchScheme      string
	searchFile        string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the requests Hoverfly has served",
}

var journalGetCmd = &cobra.Command{
	Use:   "get",
	Short: "List journal entries",
	Example: `  hfctl journal get --limit 10
  hfctl journal get --where 'response.status >= 500'
  hfctl journal get --jsonpath '$.journal[*].request.path'
  hfctl journal get --har requests.har`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page := journal.Page{Offset: journalOffset, Limit: journalLimit, Sort: journalSort}
		j, err := newClient().GetJournalPage(cmd.Context(), page)
		if err != nil {
			return err
		}
		return showJournal(j)
	},
}

var journalSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the journal with request matchers",
	Long: `Search the journal server-side. Flags build exact matchers; --file reads a
full search payload ({"request": {...}}) for other matcher types.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := searchPayload()
		if err != nil {
			return err
		}
		j, err := newClient().SearchJournal(cmd.Context(), payload)
		if err != nil {
			return err
		}
		return showJournal(j)
	},
}

var journalPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every journal entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().PurgeJournal(cmd.Context()); err != nil {
			return err
		}
		printResult(map[string]bool{"purged": true}, func() {
			fmt.Println("Journal purged")
		})
		return nil
	},
}

func searchPayload() (journal.SearchPayload, error) {
	var payload journal.SearchPayload
	if searchFile != "" {
		data, err := os.ReadFile(searchFile)
		if err != nil {
			return payload, fmt.Errorf("failed to read search file: %w", err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return payload, fmt.Errorf("invalid search file: %w", err)
		}
		return payload, nil
	}

	exact := func(v string) []simulation.Matcher {
		if v == "" {
			return nil
		}
		return simulation.Exact(v)
	}
	payload.Request = simulation.RequestMatcher{
		Path:        exact(searchPath),
		Method:      exact(searchMethod),
		Destination: exact(searchDestination),
		Scheme:      exact(searchScheme),
	}
	if payload.Request.Path == nil && payload.Request.Method == nil &&
		payload.Request.Destination == nil && payload.Request.Scheme == nil {
		return payload, errors.New("at least one of --path, --method, --destination, --scheme or --file is required")
	}
	return payload, nil
}

// showJournal applies the local --where, --jsonpath and --har options.
func showJournal(j *journal.Journal) error {
	if journalWhere != "" {
		filtered, err := journal.Filter(j.Journal, journalWhere)
		if err != nil {
			return err
		}
		j.Journal = filtered
	}

	if journalHAR != "" {
		data, err := json.MarshalIndent(journal.ToHAR(j, Version), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode HAR: %w", err)
		}
		if err := os.WriteFile(journalHAR, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write HAR: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d entries to %s\n", len(j.Journal), journalHAR)
		return nil
	}

	if journalJSONPath != "" {
		values, err := journal.Select(j, journalJSONPath)
		if err != nil {
			return err
		}
		return output.JSON(values)
	}

	printResult(j, func() {
		tw := output.Table()
		_, _ = fmt.Fprintln(tw, "TIME\tMETHOD\tURL\tSTATUS\tLATENCY")
		for _, e := range j.Journal {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2fms\n",
				e.TimeStarted, e.Request.Method, e.Request.URL(), e.Response.Status, e.Latency)
		}
		_ = tw.Flush()
		fmt.Printf("%d of %d entries\n", len(j.Journal), j.Total)
	})
	return nil
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalGetCmd)
	journalCmd.AddCommand(journalSearchCmd)
	journalCmd.AddCommand(journalPurgeCmd)

	for _, c := range []*cobra.Command{journalGetCmd, journalSearchCmd} {
		c.Flags().StringVar(&journalWhere, "where", "", "Keep entries matching an expression, e.g. 'request.method == \"POST\"'")
		c.Flags().StringVar(&journalJSONPath, "jsonpath", "", "Print the values selected by a JSONPath expression")
		c.Flags().StringVar(&journalHAR, "har", "", "Write the entries to a HAR file")
	}

	journalGetCmd.Flags().IntVar(&journalOffset, "offset", 0, "Skip this many entries")
	journalGetCmd.Flags().IntVar(&journalLimit, "limit", 0, "Return at most this many entries")
	journalGetCmd.Flags().StringVar(&journalSort, "sort", "", "Sort order, e.g. timeStarted:desc")

	journalSearchCmd.Flags().StringVar(&searchPath, "path", "", "Exact request path")
	journalSearchCmd.Flags().StringVar(&searchMethod, "method", "", "Exact request method")
	journalSearchCmd.Flags().StringVar(&searchDestination, "destination", "", "Exact request destination (host)")
	journalSearchCmd.Flags().StringVar(&searchScheme, "scheme", "", "Exact request scheme")
	journalSearchCmd.Flags().StringVar(&searchFile, "file", "", "JSON file with a full search payload")
}
