package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/amirR01/google-calendar-tracker/internal/analyze"
	"github.com/amirR01/google-calendar-tracker/internal/config"
	"github.com/amirR01/google-calendar-tracker/internal/dates"
	"github.com/amirR01/google-calendar-tracker/internal/report"
	"github.com/amirR01/google-calendar-tracker/internal/source"
	"github.com/amirR01/google-calendar-tracker/internal/store"
	"github.com/amirR01/google-calendar-tracker/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "calendar-tracker",
	Short: "Analyze where your calendar time actually goes",
	Long: `calendar-tracker pulls events from Google Calendar, groups them into
life categories by their color tag, and reports totals, top activities,
and week-over-week trends.

Run without arguments for the interactive TUI, or use the subcommands
for plain text reports:

  calendar-tracker                # interactive TUI
  calendar-tracker report         # current week summary
  calendar-tracker report --month # current month summary
  calendar-tracker trends -w 6    # six-week trend table
  calendar-tracker breakdown Meetings`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a category summary for a time window",
	RunE:  runReport,
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Print week-over-week trends per category",
	RunE:  runTrends,
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <category>",
	Short: "Print a single category's activity breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runBreakdown,
}

func init() {
	reportCmd.Flags().Bool("month", false, "report on the current month instead of the week")
	reportCmd.Flags().String("from", "", "custom range start (YYYY-MM-DD)")
	reportCmd.Flags().String("to", "", "custom range end (YYYY-MM-DD)")

	trendsCmd.Flags().IntP("weeks", "w", 0, "number of weeks to analyze (default from config)")

	breakdownCmd.Flags().Bool("month", false, "break down the current month instead of the week")

	rootCmd.AddCommand(reportCmd, trendsCmd, breakdownCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and wires the cached event source behind
// an analyzer. The caller owns the returned store.
func setup() (*analyze.Analyzer, *store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cfg, err
	}

	dbPath := cfg.CachePath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, nil, cfg, err
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("opening cache: %w", err)
	}

	client := source.NewGoogleClient(cfg.CalendarID, cfg.AccessToken)
	cached := store.NewCachedSource(client, s, cfg.CalendarID, cfg.MaxAge())

	return analyze.New(cached, cfg.Mapping()), s, cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	analyzer, s, cfg, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	trendWeeks := cfg.TrendWeeks
	if v, err := s.GetSetting("trend_weeks"); err == nil {
		if n, convErr := parseWeeks(v); convErr == nil {
			trendWeeks = n
		}
	}

	app := tui.NewApp(analyzer, s, trendWeeks)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	analyzer, s, _, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := windowFromFlags(cmd)
	if err != nil {
		return err
	}

	r, err := analyzer.Range(cmd.Context(), w)
	if err != nil {
		return err
	}

	report.New(os.Stdout).Summary(r)
	return nil
}

func runTrends(cmd *cobra.Command, args []string) error {
	analyzer, s, cfg, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	weeks, _ := cmd.Flags().GetInt("weeks")
	if weeks == 0 {
		weeks = cfg.TrendWeeks
	}
	if err := validateWeeks(weeks); err != nil {
		return err
	}

	r, err := analyzer.WeeklyTrends(cmd.Context(), weeks)
	if err != nil {
		return err
	}

	report.New(os.Stdout).Trends(r)
	return nil
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	analyzer, s, _, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	target := args[0]
	known := false
	for _, c := range analyzer.Categories() {
		if c == target {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown category %q (valid: %v)", target, analyzer.Categories())
	}

	month, _ := cmd.Flags().GetBool("month")
	w := dates.WeekRange(time.Now())
	if month {
		w = dates.MonthRange(time.Now())
	}

	r, err := analyzer.Breakdown(cmd.Context(), w, target)
	if err != nil {
		return err
	}

	report.New(os.Stdout).Breakdown(r)
	return nil
}

func windowFromFlags(cmd *cobra.Command) (dates.Range, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	if from != "" || to != "" {
		if from == "" || to == "" {
			return dates.Range{}, fmt.Errorf("--from and --to must be given together")
		}
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return dates.Range{}, fmt.Errorf("parsing --from: %w", err)
		}
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return dates.Range{}, fmt.Errorf("parsing --to: %w", err)
		}
		return dates.CustomRange(start, end)
	}

	if month, _ := cmd.Flags().GetBool("month"); month {
		return dates.MonthRange(time.Now()), nil
	}
	return dates.WeekRange(time.Now()), nil
}

// validateWeeks bounds the trend window the same way config and the TUI do.
func validateWeeks(n int) error {
	if n < 2 || n > 12 {
		return fmt.Errorf("weeks must be between 2 and 12, got %d", n)
	}
	return nil
}

func parseWeeks(v string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}
