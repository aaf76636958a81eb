package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/eduquiz/internal/question"
)

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair <file|->",
		Short: "Run the response sanitizer over raw model output",
		Long: `Repair reads a raw completion, applies the same repairs as the live
pipeline and prints the accepted questions. On a parse failure it prints the
repaired text so the remaining defect is visible.`,
		Args: cobra.ExactArgs(1),
		RunE: runRepair,
	}
}

func runRepair(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	qs, received, err := question.ParseQuestions(string(raw))
	if err != nil {
		var perr *question.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(cmd.ErrOrStderr(), "repaired text:")
			fmt.Fprintln(cmd.ErrOrStderr(), perr.Repaired)
		}
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d items parsed, %d accepted\n", received, len(qs))
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(qs)
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
