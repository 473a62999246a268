package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"go.idset/internal/storage"
)

func printStats(w io.Writer, s storage.Stats) {
	fmt.Fprintf(w, "ids:    %s\n", humanize.Comma(int64(s.IDs)))
	fmt.Fprintf(w, "pages:  %d (%d leaf, %d internal, %s)\n",
		s.Pages, s.Leaves, s.Internals, humanize.IBytes(uint64(s.Pages)*storage.PageSize))
	fmt.Fprintf(w, "height: %d\n", s.Height)
	if s.Cache.Hits+s.Cache.Misses > 0 {
		fmt.Fprintf(w, "cache:  %d hits, %d misses (%.1f%%)\n", s.Cache.Hits, s.Cache.Misses, s.Cache.Ratio*100)
	}
}
