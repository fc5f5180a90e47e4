// Command trendsnap converts RSTrendX trend snapshots (.DBF/.IDX pairs)
// into tag-labeled CSV or Parquet tables.
package main

import (
	"fmt"
	"os"

	"github.com/jminnion/trendsnap/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
