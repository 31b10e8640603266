package cli

import (
	"context"
	"fmt"

	"resumeflow/internal/ai"
	"resumeflow/internal/ats"
	"resumeflow/internal/common"
	"resumeflow/internal/types"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [resume-file] [job-description-file]",
	Short: "Scan a resume against a job description like an ATS would",
	Long: `Scan a resume against a job description the way an applicant tracking
system would. The command takes two arguments: the path to the resume file and
the path to the job description file. Both files should be in plain text format.
The result includes per-aspect scores, a weighted overall score, a
PASS/REVIEW/REJECT decision, and actionable feedback.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scanConfig.OutputFormat == "" {
			scanConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scanConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScan,
}

var scanConfig common.CommandConfig

func init() {
	scanCmd.Flags().StringVarP(&scanConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().StringVar(&scanConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scanCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	registry := ai.NewRegistry(logger)
	defer func() {
		if err := registry.Close(); err != nil {
			logger.LogError(err, "Failed to close AI provider registry")
		}
	}()

	scanAIConfig := cfg.GetScanConfig()
	provider, err := registry.Provider(&scanAIConfig, "scan")
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}

	feedback := ats.NewFeedbackStrategy(cfg.ATS.FeedbackStrategy, provider)
	scanner := ats.NewScanner(provider, feedback, logger)

	createInput := func(contents []string) (types.ScanInput, error) {
		if len(contents) != 2 {
			return types.ScanInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.ScanInput{
			Resume:         contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.ScanInput, cfg common.CommandConfig) {
		logger.Info("Starting ATS scan",
			"resume_chars", len(input.Resume),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	scanOperation := func(ctx context.Context, input types.ScanInput) (types.ScanOutput, *ai.TokenUsage, error) {
		return scanner.Run(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		scanConfig,
		args,
		createInput,
		scanOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to scan resume: %w", err)
	}
	logger.Info("ATS scan completed successfully")
	return nil
}
