package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// ReturnsOptions holds flags for the returns subcommands.
type ReturnsOptions struct {
	*RootOptions
	Original string
	Contact  string
	Date     string
	Items    string
	Total    float64
	Notes    string
}

// NewReturnsCommand creates the returns command group.
func NewReturnsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReturnsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "returns",
		Short: "Record sales and purchase returns",
	}

	buildReturn := func(eng *engine.Engine) (model.Return, error) {
		var items []model.ReturnItem
		if err := json.Unmarshal([]byte(opts.Items), &items); err != nil {
			return model.Return{}, engine.NewValidationError("invalid --items: %v", err)
		}
		date := opts.Date
		if date == "" {
			date = eng.Timestamp()
		}
		return model.Return{
			ID:         eng.NewID(),
			Date:       date,
			OriginalID: opts.Original,
			ContactID:  opts.Contact,
			Items:      items,
			Total:      opts.Total,
			Notes:      opts.Notes,
		}, nil
	}

	sales := &cobra.Command{
		Use:   "sales",
		Short: "Record a customer return against an original sale",
		Long: `Record a sales return. Each returned quantity is added back to stock.
The cumulative returned quantity per product may not exceed what the
original sale recorded.

Example:
  khata returns sales --original <sale-id> --contact <customer-id> \
    --items '[{"productId":"p1","quantity":1,"price":9.5,"reason":"damaged"}]' --total 9.5`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				ret, err := buildReturn(eng)
				if err != nil {
					return doc, nil, err
				}
				next, err := eng.ApplySalesReturn(doc, ret)
				return next, ret, err
			})
		},
	}

	purchase := &cobra.Command{
		Use:   "purchase",
		Short: "Record a return to a supplier against an original purchase",
		Long: `Record a purchase return. Each returned quantity is removed from stock;
the return is rejected if that would drive stock negative.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				ret, err := buildReturn(eng)
				if err != nil {
					return doc, nil, err
				}
				next, err := eng.ApplyPurchaseReturn(doc, ret)
				return next, ret, err
			})
		},
	}

	for _, c := range []*cobra.Command{sales, purchase} {
		c.Flags().StringVar(&opts.Original, "original", "", "id of the original sale/purchase (required)")
		c.Flags().StringVar(&opts.Contact, "contact", "", "contact id (required)")
		c.Flags().StringVar(&opts.Date, "date", "", "return date, RFC 3339 (default now)")
		c.Flags().StringVar(&opts.Items, "items", "", "return items as JSON array (required)")
		c.Flags().Float64Var(&opts.Total, "total", 0, "return total (required)")
		c.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
		_ = c.MarkFlagRequired("original")
		_ = c.MarkFlagRequired("contact")
		_ = c.MarkFlagRequired("items")
		_ = c.MarkFlagRequired("total")
	}

	cmd.AddCommand(sales, purchase)
	return cmd
}
