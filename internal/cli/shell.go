package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.idset/internal/engine"
	"go.idset/internal/ident"
)

var errExit = errors.New("exit")

// newShellCommand builds the command tree served by the interactive session.
func newShellCommand(db *engine.Database) *cobra.Command {
	root := &cobra.Command{
		Use:           db.Name(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		&cobra.Command{
			Use:   "insert <id>...",
			Short: "Insert one or more ids (decimal, 0x hex, uuid form, or a name)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, arg := range args {
					id, err := db.Insert(arg)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "inserted %s\n", ident.Format(id))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "contains <id>",
			Short: "Report whether an id is in the set",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, ok, err := db.Contains(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			},
		},
		&cobra.Command{
			Use:   "count <id>",
			Short: "Report how many times an id was inserted",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, n, err := db.Count(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "gen [n]",
			Short: "Generate and insert n fresh ids",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n := 1
				if len(args) == 1 {
					var err error
					if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
						return fmt.Errorf("invalid count %q", args[0])
					}
				}
				ids, err := db.Generate(n)
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), ident.Format(id))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Print page and cache statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				stats, err := db.Stats()
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), stats)
				return nil
			},
		},
		&cobra.Command{
			Use:   "verify",
			Short: "Check every structural invariant of the tree",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := db.Verify(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			},
		},
		&cobra.Command{
			Use:   "inspect",
			Short: "Dump every page",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return db.Inspect(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "exit",
			Short: "Leave the session",
			RunE: func(cmd *cobra.Command, args []string) error {
				return errExit
			},
		},
	)

	return root
}
