package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khatapp/khata/internal/store"
)

// DataOptions holds flags for the data subcommands.
type DataOptions struct {
	*RootOptions
	File string
}

// NewDataCommand creates the data command group (backup and restore of
// the raw persisted envelope).
func NewDataCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DataOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export and import the persisted document",
	}

	export := &cobra.Command{
		Use:           "export",
		Short:         "Write the raw document envelope to a file (or stdout)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(opts.DB)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open ledger", err)
			}
			defer st.Close()

			payload, err := st.Export(contextOf(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "export failed", err)
			}
			if opts.File == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return nil
			}
			if err := os.WriteFile(opts.File, payload, 0o644); err != nil {
				return WrapExitError(ExitCommandError, "failed to write backup", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", opts.File)
			return nil
		},
	}
	export.Flags().StringVar(&opts.File, "file", "", "destination file (default stdout)")

	imp := &cobra.Command{
		Use:           "import <file>",
		Short:         "Replace the persisted document from a backup",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read backup", err)
			}

			st, err := store.Open(opts.DB)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open ledger", err)
			}
			defer st.Close()

			if err := st.Import(contextOf(cmd), payload); err != nil {
				return WrapExitError(ExitCommandError, "import failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(export, imp)
	return cmd
}

// contextOf returns the command context, or a background context when
// cobra was driven without one (tests).
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
