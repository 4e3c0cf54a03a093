package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzeResumePath string
	analyzeJobPath    string
	analyzeVocabPath  string
	analyzeServerURL  string
	analyzeQuery      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Score a resume file against a job description. With --server the remote
service is used (falling back to local demo mode when unreachable); without it
the analysis runs entirely locally.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResumePath, "resume", "", "Path to the resume file (PDF or DOCX)")
	analyzeCmd.Flags().StringVar(&analyzeJobPath, "job", "", "Path to the job description text file")
	analyzeCmd.Flags().StringVar(&analyzeVocabPath, "vocabulary", "", "Path to a custom skill vocabulary file")
	analyzeCmd.Flags().StringVar(&analyzeServerURL, "server", "", "Screener server URL (empty runs locally)")
	analyzeCmd.Flags().StringVar(&analyzeQuery, "ask", "", "Optional question for the improvement assistant")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	sess, _, err := buildSession(analyzeResumePath, analyzeJobPath, analyzeVocabPath, analyzeServerURL, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := sess.Analyze(ctx)
	if err != nil {
		return err
	}

	_, demoMode := sess.Result()
	log.Info("analysis complete",
		zap.Int("score", result.Score),
		zap.String("status", string(result.Status)),
		zap.Bool("demo_mode", demoMode))

	if err := printJSON(result); err != nil {
		return err
	}

	if analyzeQuery != "" {
		for _, turn := range sess.History() {
			fmt.Println()
			fmt.Println(turn.Content)
		}
		turn, err := sess.Ask(ctx, analyzeQuery)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(turn.Content)
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}
	return nil
}
