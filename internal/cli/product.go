package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// ProductOptions holds flags for the product subcommands.
type ProductOptions struct {
	*RootOptions
	JSON string // full product as JSON (add)
}

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a product",
		Long: `Add a product to the catalog, or replace an existing one by id.

The product is passed as JSON. Omit "id" to have one generated.

Example:
  khata product add --json '{"brand":"Acme","name":"Widget","art":"W1","design":"plain","colour":"red","uom":"pcs","hsnCode":"9403","mrp":20,"salesPrice":18,"purchasePrice":12,"stock":0}'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				var p model.Product
				if err := json.Unmarshal([]byte(opts.JSON), &p); err != nil {
					return doc, nil, engine.NewValidationError("invalid --json: %v", err)
				}
				if p.ID == "" {
					p.ID = eng.NewID()
				}
				next, err := eng.UpsertProduct(doc, p)
				return next, p, err
			})
		},
	}
	add.Flags().StringVar(&opts.JSON, "json", "", "product as JSON (required)")
	_ = add.MarkFlagRequired("json")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List catalog products",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				if opts.Format == "text" {
					return productTable(doc.Products), nil
				}
				return doc.Products, nil
			})
		},
	}

	rm := &cobra.Command{
		Use:           "rm <product-id>",
		Short:         "Remove a product from the catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				next, err := eng.DeleteProduct(doc, args[0])
				return next, fmt.Sprintf("removed product %s", args[0]), err
			})
		},
	}

	cmd.AddCommand(add, list, rm)
	return cmd
}

// productTable renders a compact text listing.
func productTable(products []model.Product) string {
	if len(products) == 0 {
		return "no products"
	}
	out := fmt.Sprintf("%-36s  %-12s  %-20s  %8s  %8s  %6s\n", "ID", "BRAND", "NAME", "MRP", "PRICE", "STOCK")
	for _, p := range products {
		out += fmt.Sprintf("%-36s  %-12s  %-20s  %8.2f  %8.2f  %6d\n", p.ID, p.Brand, p.Name, p.MRP, p.SalesPrice, p.Stock)
	}
	return out
}
