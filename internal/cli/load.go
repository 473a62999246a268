package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.idset/internal/engine"
)

var loadShell bool

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Insert one id or name per line from a file and print stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		db, err := engine.Open("load", cfg)
		if err != nil {
			return fmt.Errorf("Failed to open set: %w", err)
		}
		defer db.Close()

		scanner := bufio.NewScanner(f)
		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			if _, err := db.Insert(text); err != nil {
				return fmt.Errorf("%s:%d: %w", path, line, err)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}

		if err := db.Verify(); err != nil {
			return err
		}

		stats, err := db.Stats()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "loaded %d ids from %s\n", db.Len(), path)
		printStats(out, stats)

		if loadShell {
			return runShell(db, cmd.InOrStdin(), out)
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().BoolVar(&loadShell, "shell", false, "start an interactive session after loading")
	rootCmd.AddCommand(loadCmd)
}
