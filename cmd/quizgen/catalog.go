package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/eduquiz/internal/curriculum"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [grade]",
		Short: "Print grades, subjects and topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := curriculum.Load()
			if err != nil {
				return err
			}

			grades := catalog.Grades()
			if len(args) == 1 {
				subjects, err := catalog.Subjects(args[0])
				if err != nil {
					return err
				}
				grades = []curriculum.Grade{{Name: args[0], Subjects: subjects}}
			}

			out := cmd.OutOrStdout()
			for _, g := range grades {
				fmt.Fprintln(out, g.Name)
				for _, s := range g.Subjects {
					fmt.Fprintf(out, "  %s: %s\n", s.Name, strings.Join(s.Topics, ", "))
				}
			}
			return nil
		},
	}
	return cmd
}
