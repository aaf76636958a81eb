package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/eduquiz/internal/config"
	"github.com/gokatarajesh/eduquiz/internal/curriculum"
	"github.com/gokatarajesh/eduquiz/internal/question"
	"github.com/gokatarajesh/eduquiz/internal/question/provider"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a question set with the configured provider",
		Long: `Generate runs the same pipeline as the API. Without AI_API_KEY (or with a
placeholder key) it prints fallback questions and makes no network call.`,
		RunE: runGenerate,
	}

	cmd.Flags().String("grade", "", "grade label, e.g. \"Grade 7\" or \"AP\" (required)")
	cmd.Flags().String("subject", "", "subject name (required)")
	cmd.Flags().String("topic", "", "topic name (required)")
	cmd.Flags().Int("count", question.DefaultCount, "number of questions")
	cmd.Flags().Uint64("seed", 0, "fix the random source (0 uses AI_SEED or entropy)")
	cmd.Flags().Bool("json", false, "print the set as JSON")
	cmd.Flags().Bool("any-topic", false, "skip the curriculum check")
	_ = cmd.MarkFlagRequired("grade")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	grade, _ := cmd.Flags().GetString("grade")
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	asJSON, _ := cmd.Flags().GetBool("json")
	anyTopic, _ := cmd.Flags().GetBool("any-topic")

	if !anyTopic {
		catalog, err := curriculum.Load()
		if err != nil {
			return err
		}
		if err := catalog.Validate(grade, subject, topic); err != nil {
			return err
		}
	}

	cfg, err := config.LoadAI()
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	svc, err := provider.NewQuestionService(cmd.Context(), cfg, nil, commandLogger(cmd))
	if err != nil {
		return err
	}

	qs := svc.Generate(cmd.Context(), question.GenerationRequest{
		Grade:   grade,
		Subject: subject,
		Topic:   topic,
		Count:   count,
	})

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(qs)
	}
	printQuestions(out, grade, subject, topic, qs)
	return nil
}

func printQuestions(w io.Writer, grade, subject, topic string, qs []question.Question) {
	fmt.Fprintf(w, "%s / %s / %s (%d questions)\n", grade, subject, topic, len(qs))
	for i, q := range qs {
		fmt.Fprintf(w, "\n%d. %s  [%s]\n", i+1, q.Text, q.Source)
		for j, opt := range q.Options {
			fmt.Fprintf(w, "   %c) %s\n", 'a'+j, opt)
		}
		fmt.Fprintf(w, "   Answer: %s\n", q.Answer)
		if q.Explanation != "" {
			fmt.Fprintf(w, "   Explanation: %s\n", q.Explanation)
		}
	}
}
