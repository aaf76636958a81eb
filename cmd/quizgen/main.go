// Command quizgen runs the question pipeline from the terminal: it generates
// sets with the configured provider, prints the curriculum and repairs raw
// model output for inspection.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
