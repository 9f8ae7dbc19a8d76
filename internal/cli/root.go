// Package cli implements the calendarium command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/logger"
	"github.com/rharbaugh/calendarium/internal/render"
	"github.com/rharbaugh/calendarium/internal/service"
)

// app holds the state shared by every command.
type app struct {
	v   *viper.Viper
	now func() time.Time

	all     bool
	date    string
	year    int
	almanac *service.Almanac
}

// NewRootCmd builds the calendarium command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	a := &app{v: viper.New(), now: now}

	root := &cobra.Command{
		Use:   "calendarium",
		Short: "Roman Catholic liturgical calendar",
		Long: "calendarium computes the liturgical year (seasons, Sundays, solemnities and feasts)\n" +
			"and prints today's celebration, a given date, or a whole year.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runRoot,
	}

	pf := root.PersistentFlags()
	pf.String("feasts", "", "feast overlay file (CSV, YAML or TOML; env FEASTS_PATH)")
	pf.String("log-level", "warn", "log level for diagnostics on stderr (env LOG_LEVEL)")
	_ = a.v.BindPFlag("feasts_path", pf.Lookup("feasts"))
	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	a.v.AutomaticEnv()

	f := root.Flags()
	f.BoolVar(&a.all, "all", false, "print every day of the current liturgical year")
	f.StringVar(&a.date, "date", "", "print the liturgical day for a date (MM-DD-YYYY or YYYY-MM-DD)")
	f.IntVar(&a.year, "year", 0, "print every day of the liturgical year containing January 1 of YYYY")
	root.MarkFlagsMutuallyExclusive("all", "date", "year")

	root.AddCommand(newBrowseCmd(a), newICSCmd(a), newAnchorsCmd(a))
	return root
}

// setup creates the almanac and loads the feast overlay.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	log := logger.New(cmd.ErrOrStderr(), a.v.GetString("log_level"), "text")

	a.almanac = service.New(service.Options{
		FeastsPath: a.v.GetString("feasts_path"),
		Location:   time.Local,
		Logger:     log,
		Now:        a.now,
	})
	return a.almanac.LoadFeasts(cmd.Context())
}

func (a *app) runRoot(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p := render.NewPrinter(cmd.OutOrStdout())

	switch {
	case a.all:
		return p.Year(a.almanac.Year(ctx, a.almanac.Today()))
	case a.year != 0:
		if err := checkYear(a.year); err != nil {
			return err
		}
		return p.Year(a.almanac.YearOf(ctx, a.year))
	case a.date != "":
		d, err := calendar.ParseDate(a.date)
		if err != nil {
			return fmt.Errorf("--date %q: %w (use MM-DD-YYYY)", a.date, err)
		}
		return a.printDay(ctx, p, d)
	default:
		return a.printDay(ctx, p, a.almanac.Today())
	}
}

// printDay prints the winning celebration of d followed by any others.
func (a *app) printDay(ctx context.Context, p *render.Printer, d calendar.Date) error {
	info, err := a.almanac.Day(ctx, d)
	if errors.Is(err, calendar.ErrDateNotFound) {
		return fmt.Errorf("could not find %s in the liturgical calendar", d)
	}
	if err != nil {
		return err
	}

	if err := p.Day(info.Observance); err != nil {
		return err
	}
	for _, c := range info.Celebrations {
		if c == info.Observance {
			continue
		}
		if err := p.Day(c); err != nil {
			return err
		}
	}
	return nil
}

// targetYear resolves the --year flag of a subcommand, defaulting to the
// liturgical year in progress.
func (a *app) targetYear(ctx context.Context, n int) (*calendar.Year, error) {
	if n == 0 {
		return a.almanac.Year(ctx, a.almanac.Today()), nil
	}
	if err := checkYear(n); err != nil {
		return nil, err
	}
	return a.almanac.YearOf(ctx, n), nil
}

func checkYear(n int) error {
	if n < 2 || n > 9999 {
		return fmt.Errorf("invalid year %d: must be between 2 and 9999", n)
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, stderr io.Writer) int {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
