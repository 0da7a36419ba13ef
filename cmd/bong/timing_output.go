package main

import (
	"fmt"
	"io"

	"bong/internal/observ"
)

// printTimings writes the --timings summary.
func printTimings(w io.Writer, timer *observ.Timer) {
	fmt.Fprint(w, timer.Summary())
}
