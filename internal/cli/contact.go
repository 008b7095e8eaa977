package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/engine"
	"github.com/khatapp/khata/internal/model"
)

// ContactOptions holds flags for the contact subcommands.
type ContactOptions struct {
	*RootOptions
	JSON string
	Type string // list filter
}

// NewContactCommand creates the contact command group.
func NewContactCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContactOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage customers, suppliers, and employees",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a contact",
		Long: `Add a contact, or replace an existing one by id.

Example:
  khata contact add --json '{"name":"Ravi","type":"customer","email":"ravi@example.com","phone":"+91 98765 43210","address":"12 MG Road","city":"Pune","state":"MH"}'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				var c model.Contact
				if err := json.Unmarshal([]byte(opts.JSON), &c); err != nil {
					return doc, nil, engine.NewValidationError("invalid --json: %v", err)
				}
				if c.ID == "" {
					c.ID = eng.NewID()
				}
				if c.DateAdded == "" {
					c.DateAdded = eng.Timestamp()
				}
				next, err := eng.UpsertContact(doc, c)
				return next, c, err
			})
		},
	}
	add.Flags().StringVar(&opts.JSON, "json", "", "contact as JSON (required)")
	_ = add.MarkFlagRequired("json")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List contacts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(cmd, opts.RootOptions, func(doc model.Document) (any, error) {
				contacts := doc.Contacts
				if opts.Type != "" {
					filtered := []model.Contact{}
					for _, c := range contacts {
						if string(c.Type) == opts.Type {
							filtered = append(filtered, c)
						}
					}
					contacts = filtered
				}
				if opts.Format == "text" {
					return contactTable(contacts), nil
				}
				return contacts, nil
			})
		},
	}
	list.Flags().StringVar(&opts.Type, "type", "", "filter by type (customer|supplier|employee)")

	rm := &cobra.Command{
		Use:           "rm <contact-id>",
		Short:         "Remove a contact",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, opts.RootOptions, func(eng *engine.Engine, doc model.Document) (model.Document, any, error) {
				next, err := eng.DeleteContact(doc, args[0])
				return next, fmt.Sprintf("removed contact %s", args[0]), err
			})
		},
	}

	cmd.AddCommand(add, list, rm)
	return cmd
}

func contactTable(contacts []model.Contact) string {
	if len(contacts) == 0 {
		return "no contacts"
	}
	out := fmt.Sprintf("%-36s  %-20s  %-10s  %-24s  %-14s\n", "ID", "NAME", "TYPE", "EMAIL", "PHONE")
	for _, c := range contacts {
		out += fmt.Sprintf("%-36s  %-20s  %-10s  %-24s  %-14s\n", c.ID, c.Name, c.Type, c.Email, c.Phone)
	}
	return out
}
