package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-screener/internal/client"
	"github.com/jonathan/ats-screener/internal/session"
	"github.com/jonathan/ats-screener/internal/skills"
)

// buildSession loads the screening inputs and prepares a session against the
// given server URL. An empty URL makes every request fail fast, which routes
// the client straight into its local demo path.
func buildSession(resumePath, jobPath, vocabPath, serverURL string, log *zap.Logger) (*session.Session, *client.Client, error) {
	resume, err := client.LoadResumeFile(resumePath)
	if err != nil {
		return nil, nil, err
	}

	jobData, err := os.ReadFile(jobPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read job description %s: %w", jobPath, err)
	}

	vocab := skills.DefaultVocabulary
	if vocabPath != "" {
		vocab, err = skills.Load(vocabPath)
		if err != nil {
			return nil, nil, err
		}
	}

	baseURL := serverURL
	if baseURL == "" {
		baseURL = "http://127.0.0.1:0"
	}
	c := client.New(baseURL, client.WithVocabulary(vocab), client.WithLogger(log))

	sess := session.New(c)
	sess.SetResume(resume)
	sess.SetJobDescription(strings.TrimSpace(string(jobData)))
	return sess, c, nil
}
