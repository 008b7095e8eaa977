package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// PurchaseOptions holds flags for the purchase subcommands.
type PurchaseOptions struct {
	*RootOptions
	Contact string
	Date    string
	Items   string
	Total   float64
}

// NewPurchaseCommand creates the purchase command group.
func NewPurchaseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PurchaseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Record and inspect supplier purchases",
	}

	record := &cobra.Command{
		Use:   "record",
		Short: "Record a purchase",
		Long: `Record a purchase from a supplier. Stock is incremented per line item,
purchasePrice follows the line costPrice, and mrp/salesPrice are
overwritten when the line carries priceUpdates.

Example:
  khata purchase record --contact <supplier-id> \
    --items '[{"productId":"p1","quantity":5,"costPrice":3,"priceUpdates":{"mrp":20}}]' --total 15`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				var items []model.PurchaseItem
				if err := json.Unmarshal([]byte(opts.Items), &items); err != nil {
					return doc, nil, engine.NewValidationError("invalid --items: %v", err)
				}
				date := opts.Date
				if date == "" {
					date = eng.Timestamp()
				}
				p := model.Purchase{
					ID:        eng.NewID(),
					Date:      date,
					ContactID: opts.Contact,
					Items:     items,
					Total:     opts.Total,
				}
				next, err := eng.ApplyPurchase(doc, p)
				return next, p, err
			})
		},
	}
	record.Flags().StringVar(&opts.Contact, "contact", "", "supplier contact id (required)")
	record.Flags().StringVar(&opts.Date, "date", "", "purchase date, RFC 3339 (default now)")
	record.Flags().StringVar(&opts.Items, "items", "", "line items as JSON array (required)")
	record.Flags().Float64Var(&opts.Total, "total", 0, "purchase total, must equal the line sum (required)")
	_ = record.MarkFlagRequired("contact")
	_ = record.MarkFlagRequired("items")
	_ = record.MarkFlagRequired("total")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List recorded purchases",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				return doc.Purchases, nil
			})
		},
	}

	cmd.AddCommand(record, list)
	return cmd
}
