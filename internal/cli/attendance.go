package cli

import (
	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// AttendanceOptions holds flags for the attendance subcommands.
type AttendanceOptions struct {
	*RootOptions
	Employee string
	Year     int
	Month    int
	Day      int
}

// NewAttendanceCommand creates the attendance command group.
func NewAttendanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AttendanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Track employee attendance",
	}

	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Flip one day between present and absent",
		Long: `Toggle attendance for one employee and day. A day never marked before
counts as absent, so the first toggle marks it present.

Example:
  khata attendance toggle --employee <contact-id> --year 2026 --month 8 --day 15`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				merged := engine.ToggleAttendance(doc.Attendance, opts.Employee, opts.Year, opts.Month, opts.Day)
				next, err := eng.SetAttendance(doc, merged)
				if err != nil {
					return doc, nil, err
				}
				return next, engine.SummarizeAttendance(next, opts.Year, opts.Month), nil
			})
		},
	}
	toggle.Flags().StringVar(&opts.Employee, "employee", "", "employee contact id (required)")
	toggle.Flags().IntVar(&opts.Year, "year", 0, "year (required)")
	toggle.Flags().IntVar(&opts.Month, "month", 0, "month 1-12 (required)")
	toggle.Flags().IntVar(&opts.Day, "day", 0, "day of month (required)")
	_ = toggle.MarkFlagRequired("employee")
	_ = toggle.MarkFlagRequired("year")
	_ = toggle.MarkFlagRequired("month")
	_ = toggle.MarkFlagRequired("day")

	summary := &cobra.Command{
		Use:           "summary",
		Short:         "Show present/absent day counts per employee",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				return engine.SummarizeAttendance(doc, opts.Year, opts.Month), nil
			})
		},
	}
	summary.Flags().IntVar(&opts.Year, "year", 0, "restrict to year (with --month)")
	summary.Flags().IntVar(&opts.Month, "month", 0, "restrict to month (with --year)")

	cmd.AddCommand(toggle, summary)
	return cmd
}
