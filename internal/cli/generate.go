package cli

import (
	"context"
	"fmt"

	"resumeflow/internal/ai"
	"resumeflow/internal/common"
	"resumeflow/internal/generate"
	"resumeflow/internal/types"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [profile-file] [job-description-file]",
	Short: "Generate a tailored resume from a candidate profile",
	Long: `Generate a resume tailored to a job description from a candidate
profile. The command takes two arguments: the path to the candidate profile
file and the path to the job description file. The generator analyzes both,
drafts a resume, and revises it against a quality threshold before formatting
the final version.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if generateConfig.OutputFormat == "" {
			generateConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(generateConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runGenerate,
}

var (
	generateConfig common.CommandConfig
	resumeFormat   string
	humanFeedback  string
	keepDrafts     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	generateCmd.Flags().StringVar(&generateConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	generateCmd.Flags().StringVar(&resumeFormat, "resume-format", "", "Formatting target for the resume text: markdown or plain (default: markdown)")
	generateCmd.Flags().StringVar(&humanFeedback, "feedback", "", "Reviewer guidance applied on revision passes")
	generateCmd.Flags().BoolVar(&keepDrafts, "keep-drafts", false, "Retain every intermediate draft in the output")

	_ = generateCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	registry := ai.NewRegistry(logger)
	defer func() {
		if err := registry.Close(); err != nil {
			logger.LogError(err, "Failed to close AI provider registry")
		}
	}()

	generateAIConfig := cfg.GetGenerateConfig()
	provider, err := registry.Provider(&generateAIConfig, "generate")
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}

	opts := generate.Options{
		MaxIterations:        cfg.Generate.MaxIterations,
		QualityThreshold:     cfg.Generate.QualityThreshold,
		KeywordTargetPercent: cfg.Generate.KeywordTargetPercent,
		KeepDrafts:           keepDrafts || cfg.Generate.KeepDrafts,
	}
	generator := generate.NewGenerator(provider, opts, logger)

	createInput := func(contents []string) (types.GenerateInput, error) {
		if len(contents) != 2 {
			return types.GenerateInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.GenerateInput{
			CandidateProfile: contents[0],
			JobDescription:   contents[1],
			OutputFormat:     resumeFormat,
			HumanFeedback:    humanFeedback,
		}, nil
	}

	logDetails := func(input types.GenerateInput, cfg common.CommandConfig) {
		logger.Info("Starting resume generation",
			"profile_chars", len(input.CandidateProfile),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	generateOperation := func(ctx context.Context, input types.GenerateInput) (types.GenerateOutput, *ai.TokenUsage, error) {
		return generator.Run(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		generateConfig,
		args,
		createInput,
		generateOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate resume: %w", err)
	}
	logger.Info("Resume generation completed successfully")
	return nil
}
