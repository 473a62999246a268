package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.idset/internal/engine"
)

var replCmd = &cobra.Command{
	Use:   "repl [name]",
	Short: "Start an interactive session on a fresh set",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "idset"
		if len(args) == 1 {
			name = args[0]
		}

		db, err := engine.Open(name, cfg)
		if err != nil {
			return fmt.Errorf("Failed to open set: %w", err)
		}
		defer db.Close()

		return runShell(db, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Starts an interactive command session
// Forwards every line to the shell command tree
func runShell(db *engine.Database, in io.Reader, out io.Writer) error {
	root := newShellCommand(db)
	root.SetOut(out)
	root.SetErr(out)

	reader := bufio.NewScanner(in)

	for {
		fmt.Fprintf(out, "%s> ", db.Name())

		if !reader.Scan() {
			fmt.Fprintln(out)
			return reader.Err()
		}

		input := strings.TrimSpace(reader.Text())

		// Check for blank input
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}

		root.SetArgs(strings.Fields(input))

		if err := root.ExecuteContext(context.Background()); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			fmt.Fprintln(out, "Error: ", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
}
