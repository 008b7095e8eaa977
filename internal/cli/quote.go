package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// QuoteOptions holds flags for the quote subcommands.
type QuoteOptions struct {
	*RootOptions
	JSON  string
	Patch string
}

// NewQuoteCommand creates the quote command group.
func NewQuoteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QuoteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Manage quotations",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a quotation",
		Long: `Add a quotation, or replace an existing one by id. Quotations never
touch stock.

Example:
  khata quote add --json '{"contactId":"c1","validUntil":"2026-09-30","status":"draft","items":[{"productId":"p1","quantity":2,"price":18}],"total":36}'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				var q model.Quotation
				if err := json.Unmarshal([]byte(opts.JSON), &q); err != nil {
					return doc, nil, engine.NewValidationError("invalid --json: %v", err)
				}
				if q.ID == "" {
					q.ID = eng.NewID()
				}
				if q.Date == "" {
					q.Date = eng.Timestamp()
				}
				if q.Status == "" {
					q.Status = model.QuotationDraft
				}
				next, err := eng.UpsertQuotation(doc, q)
				return next, q, err
			})
		},
	}
	add.Flags().StringVar(&opts.JSON, "json", "", "quotation as JSON (required)")
	_ = add.MarkFlagRequired("json")

	update := &cobra.Command{
		Use:   "update <quotation-id>",
		Short: "Patch fields of a quotation",
		Long: `Merge the given fields into an existing quotation. Only fields present
in the patch are changed. Status moves are unconstrained - any status
may follow any other.

Example:
  khata quote update q1 --patch '{"status":"sent"}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				var patch engine.QuotationPatch
				if err := json.Unmarshal([]byte(opts.Patch), &patch); err != nil {
					return doc, nil, engine.NewValidationError("invalid --patch: %v", err)
				}
				next, err := eng.PatchQuotation(doc, args[0], patch)
				if err != nil {
					return doc, nil, err
				}
				return next, next.Quotations[next.QuotationIndex(args[0])], nil
			})
		},
	}
	update.Flags().StringVar(&opts.Patch, "patch", "", "partial quotation as JSON (required)")
	_ = update.MarkFlagRequired("patch")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List quotations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				return doc.Quotations, nil
			})
		},
	}

	cmd.AddCommand(add, update, list)
	return cmd
}
