package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// SaleOptions holds flags for the sale subcommands.
type SaleOptions struct {
	*RootOptions
	Contact string
	Date    string
	Items   string // line items as JSON
	Total   float64
}

// NewSaleCommand creates the sale command group.
func NewSaleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Record and inspect sales",
	}

	record := &cobra.Command{
		Use:   "record",
		Short: "Record a sale",
		Long: `Record a sale against a customer. Stock is decremented per line item;
the sale is rejected if any line exceeds the available stock.

Example:
  khata sale record --contact <customer-id> \
    --items '[{"productId":"p1","quantity":2,"price":9.5}]' --total 19`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				var items []model.SaleItem
				if err := json.Unmarshal([]byte(opts.Items), &items); err != nil {
					return doc, nil, engine.NewValidationError("invalid --items: %v", err)
				}
				date := opts.Date
				if date == "" {
					date = eng.Timestamp()
				}
				tx := model.Transaction{
					ID:        eng.NewID(),
					Date:      date,
					ContactID: opts.Contact,
					Items:     items,
					Total:     opts.Total,
				}
				next, err := eng.ApplySale(doc, tx)
				return next, tx, err
			})
		},
	}
	record.Flags().StringVar(&opts.Contact, "contact", "", "customer contact id (required)")
	record.Flags().StringVar(&opts.Date, "date", "", "sale date, RFC 3339 (default now)")
	record.Flags().StringVar(&opts.Items, "items", "", "line items as JSON array (required)")
	record.Flags().Float64Var(&opts.Total, "total", 0, "sale total, must equal the line sum (required)")
	_ = record.MarkFlagRequired("contact")
	_ = record.MarkFlagRequired("items")
	_ = record.MarkFlagRequired("total")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List recorded sales",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				return doc.Transactions, nil
			})
		},
	}

	cmd.AddCommand(record, list)
	return cmd
}
