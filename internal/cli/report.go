package cli

import (
	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// ReportOptions holds flags for the report subcommands.
type ReportOptions struct {
	*RootOptions
	Threshold int
}

// NewReportCommand creates the report command group. All reports are
// pure reads over the current document snapshot.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derived views over the current document",
	}

	lowStock := &cobra.Command{
		Use:           "low-stock",
		Short:         "Products below the stock threshold",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				threshold := opts.Threshold
				if threshold == 0 {
					threshold = opts.Config.LowStockThreshold
				}
				products := engine.LowStock(doc, threshold)
				if opts.Format == "text" {
					return productTable(products), nil
				}
				return products, nil
			})
		},
	}
	lowStock.Flags().IntVar(&opts.Threshold, "threshold", 0, "stock threshold (default $KHATA_LOW_STOCK or 5)")

	dashboard := &cobra.Command{
		Use:           "dashboard",
		Short:         "Headline counts and totals",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				return engine.Dashboard(doc, opts.Config.LowStockThreshold), nil
			})
		},
	}

	history := &cobra.Command{
		Use:           "history <product-id>",
		Short:         "Stock movements for one product",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				if doc.ProductIndex(args[0]) < 0 {
					return nil, engine.NewNotFoundError("product", args[0])
				}
				return engine.ProductHistory(doc, args[0]), nil
			})
		},
	}

	cmd.AddCommand(lowStock, dashboard, history)
	return cmd
}
