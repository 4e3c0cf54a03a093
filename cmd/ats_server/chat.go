package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-screener/internal/session"
)

var (
	chatResumePath string
	chatJobPath    string
	chatVocabPath  string
	chatServerURL  string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Analyze a resume and discuss improvements interactively",
	Long: `Run an analysis and then chat with the improvement assistant. Type one
question per line; "exit", "quit" or EOF ends the conversation.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatResumePath, "resume", "", "Path to the resume file (PDF or DOCX)")
	chatCmd.Flags().StringVar(&chatJobPath, "job", "", "Path to the job description text file")
	chatCmd.Flags().StringVar(&chatVocabPath, "vocabulary", "", "Path to a custom skill vocabulary file")
	chatCmd.Flags().StringVar(&chatServerURL, "server", "", "Screener server URL (empty runs locally)")
	_ = chatCmd.MarkFlagRequired("resume")
	_ = chatCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	sess, c, err := buildSession(chatResumePath, chatJobPath, chatVocabPath, chatServerURL, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if chatServerURL != "" {
		monitor := session.NewMonitor(c, session.DefaultHealthInterval)
		monitor.Start(ctx)
		defer monitor.Stop()
		log.Info("service liveness", zap.Bool("reachable", monitor.Check(ctx)))
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

	for _, turn := range sess.History() {
		fmt.Println(turn.Content)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("\n> ")
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			fmt.Print("> ")
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		turn, err := sess.Ask(ctx, query)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(turn.Content)
		fmt.Print("\n> ")
	}
	return scanner.Err()
}
