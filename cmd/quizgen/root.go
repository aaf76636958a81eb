package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/eduquiz/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizgen",
		Short:         "Generate and inspect quiz questions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
				_ = godotenv.Load(envFile)
			}
		},
	}

	root.PersistentFlags().String("env-file", "configs/.env", "dotenv file to load before reading AI_* settings")
	root.PersistentFlags().BoolP("verbose", "v", false, "log pipeline activity to stderr")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newRepairCmd())
	return root
}

func commandLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zerolog.Nop()
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), "quizgen", "development", "debug")
}
