package cli

import (
	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/hsn"
	"github.com/khatapp/khata/internal/model"
)

// HSNOptions holds flags for the hsn subcommands.
type HSNOptions struct {
	*RootOptions
}

// NewHSNCommand creates the hsn command group.
func NewHSNCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HSNOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "hsn",
		Short: "Look up GST rates for HSN codes",
	}

	newClient := func() *hsn.Client {
		clientOpts := []hsn.ClientOption{hsn.WithTimeout(opts.Config.HSNTimeout)}
		if opts.Config.HSNBaseURL != "" {
			clientOpts = append(clientOpts, hsn.WithBaseURL(opts.Config.HSNBaseURL))
		}
		return hsn.NewClient(clientOpts...)
	}

	lookup := &cobra.Command{
		Use:           "lookup <hsn-code>",
		Short:         "Fetch the tax rates for an HSN code",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd.OutOrStdout())
			details, err := newClient().Lookup(contextOf(cmd), args[0])
			if err != nil {
				_ = out.Error("HSN_LOOKUP", err.Error(), nil)
				return WrapExitError(ExitCommandError, "lookup failed", err)
			}
			return out.Success(details)
		},
	}

	attach := &cobra.Command{
		Use:   "attach <product-id>",
		Short: "Fetch rates for a product's HSN code and store them on the product",
		Long: `Look up the product's HSN code and persist the returned rates in
Product.hsnDetails. The transition engine itself never calls the rate
service; this command is the boundary that does.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				idx := doc.ProductIndex(args[0])
				if idx < 0 {
					return doc, nil, engine.NewNotFoundError("product", args[0])
				}
				p := doc.Products[idx]
				details, err := newClient().Lookup(contextOf(cmd), p.HSNCode)
				if err != nil {
					return doc, nil, err
				}
				p.HSNDetails = &model.HSNDetails{
					SGSTRate:    details.SGSTRate,
					CGSTRate:    details.CGSTRate,
					IGSTRate:    details.IGSTRate,
					CESSRate:    details.CESSRate,
					Description: details.Description,
				}
				next, err := eng.UpsertProduct(doc, p)
				return next, p, err
			})
		},
	}

	cmd.AddCommand(lookup, attach)
	return cmd
}
