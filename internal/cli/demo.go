package cli

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/spf13/cobra"
	"go.idset/internal/engine"
	"go.idset/internal/ident"
	"go.idset/internal/storage"
)

var (
	demoCount  int
	demoRandom bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Insert n ids, check membership of every id and a miss for each, then verify",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoCount < 0 {
			return fmt.Errorf("-n must not be negative")
		}

		db, err := engine.Open("demo", cfg)
		if err != nil {
			return fmt.Errorf("Failed to open set: %w", err)
		}
		defer db.Close()

		if demoRandom {
			err = demoGenerated(db, demoCount)
		} else {
			err = demoSequential(db, demoCount)
		}
		if err != nil {
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
		fmt.Fprintln(out, "All tests passed!")
		printStats(out, stats)
		return nil
	},
}

// demoSequential inserts 0..n-1 and checks [0, 2n).
func demoSequential(db *engine.Database, n int) error {
	for i := range n {
		if _, err := db.Insert(strconv.Itoa(i)); err != nil {
			return err
		}
	}

	for i := range 2 * n {
		_, ok, err := db.Contains(strconv.Itoa(i))
		if err != nil {
			return err
		}
		if ok != (i < n) {
			return fmt.Errorf("contains(%d) = %t", i, ok)
		}
	}
	return nil
}

// demoGenerated inserts n generated ids in shuffled order. Each generated id
// carries a unique snowflake in its high half, so id+1 is never generated.
func demoGenerated(db *engine.Database, n int) error {
	gen, err := ident.NewGenerator(cfg.GeneratorNode)
	if err != nil {
		return err
	}

	ids := make([]storage.ID, n)
	for i := range ids {
		ids[i] = gen.Next()
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	for _, id := range ids {
		if _, err := db.Insert(ident.Format(id)); err != nil {
			return err
		}
	}

	for _, id := range ids {
		if _, ok, err := db.Contains(ident.Format(id)); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("contains(%s) = false", ident.Format(id))
		}

		miss := id.Add64(1)
		if _, ok, err := db.Contains(ident.Format(miss)); err != nil {
			return err
		} else if ok {
			return fmt.Errorf("contains(%s) = true", ident.Format(miss))
		}
	}
	return nil
}

func init() {
	demoCmd.Flags().IntVarP(&demoCount, "count", "n", 10000, "number of ids to insert")
	demoCmd.Flags().BoolVar(&demoRandom, "random", false, "insert generated ids in random order")
	rootCmd.AddCommand(demoCmd)
}
