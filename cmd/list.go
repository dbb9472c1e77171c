package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/norregaard/logos-maximus/internal/quote"
)

var (
	flagListCategory string
	flagListShort    bool
	flagListLong     bool
	flagListQuery    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print quotes matching a filter",
	Long: `Ask the endpoint for quotes matching the given filters and print them.

The endpoint returns at most 100 matches.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		client, err := e.quoteClient(nil)
		if err != nil {
			return err
		}

		opts := quote.Options{Category: flagListCategory, Query: flagListQuery}
		switch {
		case flagListShort:
			opts.Length = quote.LengthShort
		case flagListLong:
			opts.Length = quote.LengthLong
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.RequestTimeoutDuration())
		defer cancel()
		res, err := client.List(ctx, opts)
		return reportList(cmd.OutOrStdout(), res, err)
	},
}

func init() {
	listCmd.Flags().StringVar(&flagListCategory, "category", "", "only this category")
	listCmd.Flags().BoolVar(&flagListShort, "short", false, "only short quotes")
	listCmd.Flags().BoolVar(&flagListLong, "long", false, "only long quotes")
	listCmd.MarkFlagsMutuallyExclusive("short", "long")
	listCmd.Flags().StringVarP(&flagListQuery, "query", "q", "", "search text")
}

// reportList prints a listing result. A 404 from the endpoint means nothing
// matched and is not an error.
func reportList(w io.Writer, res quote.ListResult, err error) error {
	switch {
	case quote.IsNotFound(err):
		fmt.Fprintln(w, "No quotes matched.")
		return nil
	case quote.IsRateLimited(err):
		return fmt.Errorf("the endpoint is rate limiting requests, try again shortly: %w", err)
	case err != nil:
		return fmt.Errorf("listing quotes: %w", err)
	}
	if res.Count == 0 {
		fmt.Fprintln(w, "No quotes matched.")
		return nil
	}
	printQuotes(w, res.Items)
	fmt.Fprintf(w, "\n%d match(es)\n", res.Count)
	return nil
}

func printQuotes(w io.Writer, items []quote.Quote) {
	for _, q := range items {
		line := quote.ShareText(q)
		if q.Category != "" {
			line += " [" + q.Category + "]"
		}
		fmt.Fprintf(w, "%-8s %s\n", q.ID, line)
	}
}
