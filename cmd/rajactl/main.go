// Command rajactl operator tooling: migrations, seeding and offline
// rendering of receipts and weekly summaries.
package main

import (
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
