// Command reviewctl loads reviews from the configured sources and prints
// list, analytics and property views as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"guest_reviews/internal/adapters/observability"
	"guest_reviews/internal/app"
	"guest_reviews/internal/bootstrap"
	"guest_reviews/internal/domain"
	"guest_reviews/internal/shared"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "reviewctl",
	Short: "Inspect aggregated guest reviews",
	Long: `reviewctl aggregates reviews from Hostaway, Google Places and the
seed collection using the same environment configuration as the API, then
prints the requested view as JSON on stdout. Source warnings go to stderr.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		log.Logger = observability.NewLogger(os.Stderr, "dev", level)
	},
}

// ============================================================================
// fetch
// ============================================================================

var (
	fetchSort     string
	fetchProperty string
	fetchStatus   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Print the aggregated review list",
	Example: `  reviewctl fetch --sort highest-rating
  reviewctl fetch --property "Sunset Villa" --status approved`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := app.ParseSortKey(fetchSort)
		if err != nil {
			return err
		}
		status := domain.Status(fetchStatus)
		if status != "" && status != domain.StatusAll && !status.Valid() {
			return fmt.Errorf("unknown status %q", fetchStatus)
		}
		deps, agg, err := load(cmd.Context())
		if err != nil {
			return err
		}
		defer deps.Close()
		reportWarnings(cmd.ErrOrStderr(), agg)

		out := app.Sort(app.Filter(deps.Store.Snapshot(), app.Criteria{Property: fetchProperty, Status: status}), key)
		return printJSON(cmd.OutOrStdout(), out)
	},
}

// ============================================================================
// analytics
// ============================================================================

var (
	analyticsWindow string
	analyticsNow    string
)

var analyticsCmd = &cobra.Command{
	Use:     "analytics",
	Short:   "Print windowed analytics",
	Example: `  reviewctl analytics --window 1m --now 2025-08-25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := app.ParseWindow(analyticsWindow)
		if err != nil {
			return err
		}
		now := time.Now()
		if analyticsNow != "" {
			t, ok := domain.ParseDate(analyticsNow)
			if !ok {
				return fmt.Errorf("--now must be YYYY-MM-DD, got %q", analyticsNow)
			}
			now = t
		}
		deps, agg, err := load(cmd.Context())
		if err != nil {
			return err
		}
		defer deps.Close()
		reportWarnings(cmd.ErrOrStderr(), agg)

		return printJSON(cmd.OutOrStdout(), deps.Queries.Analytics(w, now))
	},
}

// ============================================================================
// property
// ============================================================================

var propertyCmd = &cobra.Command{
	Use:     "property NAME",
	Short:   "Print the public view of one property",
	Example: `  reviewctl property "Sunset Villa"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, agg, err := load(cmd.Context())
		if err != nil {
			return err
		}
		defer deps.Close()
		reportWarnings(cmd.ErrOrStderr(), agg)

		d, err := deps.Queries.Property(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return printJSON(cmd.OutOrStdout(), d)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	fetchCmd.Flags().StringVarP(&fetchSort, "sort", "s", string(app.SortNewest), "newest|oldest|highest-rating|lowest-rating")
	fetchCmd.Flags().StringVarP(&fetchProperty, "property", "p", "", "Exact listing name")
	fetchCmd.Flags().StringVar(&fetchStatus, "status", "", "approved|pending|denied|all")
	rootCmd.AddCommand(fetchCmd)

	analyticsCmd.Flags().StringVarP(&analyticsWindow, "window", "w", string(app.DefaultWindow), "1m|3m|6m|1y")
	analyticsCmd.Flags().StringVar(&analyticsNow, "now", "", "Reference date YYYY-MM-DD (default today)")
	rootCmd.AddCommand(analyticsCmd)

	rootCmd.AddCommand(propertyCmd)
}

func load(ctx context.Context) (*bootstrap.Deps, app.Aggregation, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := shared.Load()
	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return nil, app.Aggregation{}, err
	}
	agg, err := deps.Commands.Load(ctx)
	if err != nil {
		deps.Close()
		return nil, app.Aggregation{}, err
	}
	return deps, agg, nil
}

func reportWarnings(w io.Writer, agg app.Aggregation) {
	for _, msg := range agg.WarningMessages() {
		fmt.Fprintln(w, "warning:", msg)
	}
	if agg.Advisory != "" {
		fmt.Fprintln(w, agg.Advisory)
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
