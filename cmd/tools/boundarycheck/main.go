// Command boundarycheck runs intelligence.VerifyImportBoundary against a
// reasoning package directory and exits non-zero if it finds a forbidden
// import, so the check can run in CI.
package main

import (
	"fmt"
	"os"

	"mek/internal/intelligence"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: boundarycheck <reasoning-package-dir>")
		os.Exit(2)
	}

	dir := os.Args[1]
	violations, err := intelligence.VerifyImportBoundary(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boundarycheck: %v\n", err)
		os.Exit(2)
	}

	if len(violations) == 0 {
		fmt.Printf("boundarycheck: %s clean\n", dir)
		return
	}

	fmt.Printf("boundarycheck: %s has %d violation(s)\n", dir, len(violations))
	for _, v := range violations {
		fmt.Println("  " + v.String())
	}
	os.Exit(1)
}
