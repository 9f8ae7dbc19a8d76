package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rharbaugh/calendarium/internal/calendar"
	"github.com/rharbaugh/calendarium/internal/ics"
	"github.com/rharbaugh/calendarium/internal/render"
	"github.com/rharbaugh/calendarium/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a liturgical year interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			y, err := a.targetYear(cmd.Context(), year)
			if err != nil {
				return err
			}
			return tui.Run(y, a.almanac.Today(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "liturgical year containing January 1 of YYYY (default: current)")
	return cmd
}

func newICSCmd(a *app) *cobra.Command {
	var (
		year     int
		output   string
		observed bool
	)
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export a liturgical year as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			y, err := a.targetYear(cmd.Context(), year)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := ics.Write(w, y, ics.Options{ObservedOnly: observed}); err != nil {
				return fmt.Errorf("write calendar: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "liturgical year containing January 1 of YYYY (default: current)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&observed, "observed", false, "only the winning celebration of each date")
	return cmd
}

func newAnchorsCmd(a *app) *cobra.Command {
	var (
		year   int
		asCSV  bool
		counts bool
	)
	cmd := &cobra.Command{
		Use:   "anchors",
		Short: "Print the key dates of a liturgical year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			y, err := a.targetYear(cmd.Context(), year)
			if err != nil {
				return err
			}
			anchors := calendar.AnchorsFor(y.Start().Year)

			if asCSV {
				return render.WriteAnchorsCSV(cmd.OutOrStdout(), []calendar.Anchors{anchors})
			}
			p := render.NewPrinter(cmd.OutOrStdout())
			if err := p.Anchors(anchors); err != nil {
				return err
			}
			if counts {
				return p.Seasons(y)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "liturgical year containing January 1 of YYYY (default: current)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print CSV instead of a table")
	cmd.Flags().BoolVar(&counts, "seasons", false, "also print the number of days in each season")
	return cmd
}
