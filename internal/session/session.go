// Package session holds the mutable state of one screening session: the
// selected resume, job description, current result and chat history.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/ats-screener/internal/client"
	"github.com/jonathan/ats-screener/internal/suggest"
	"github.com/jonathan/ats-screener/internal/types"
)

// ErrAnalysisInFlight indicates an analysis is already running. Superseding
// requests are rejected rather than cancelling the running one.
var ErrAnalysisInFlight = errors.New("an analysis is already in flight")

// ErrNoAnalysis indicates the chat was used before any analysis completed.
var ErrNoAnalysis = errors.New("no analysis result available yet")

// ErrNoResume indicates Analyze was called before a resume was selected.
var ErrNoResume = errors.New("no resume selected")

// Session owns the current-analysis slot and the conversation. The result
// slot has a single writer (Analyze) and is replaced atomically on
// completion; Reset clears every field at once.
type Session struct {
	mu sync.Mutex

	client         *client.Client
	resume         *client.ResumeFile
	jobDescription string

	result   *types.AnalysisResult
	demoMode bool
	history  []types.ChatTurn
	inFlight bool
}

// New creates an empty session backed by the given client.
func New(c *client.Client) *Session {
	return &Session{client: c}
}

// SetResume selects the resume for the next analysis.
func (s *Session) SetResume(f client.ResumeFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = &f
}

// SetJobDescription sets the job description for the next analysis.
func (s *Session) SetJobDescription(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = text
}

// CanSubmit reports whether the pre-flight gates pass: a resume is selected
// and the job description meets the minimum length.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume != nil &&
		utf8.RuneCountInString(strings.TrimSpace(s.jobDescription)) >= types.MinJobDescriptionChars
}

// Analyze runs the analysis for the selected resume and job description.
// While one analysis is in flight further calls fail with
// ErrAnalysisInFlight. On completion the result slot is replaced, the chat
// history restarts with the assistant's welcome turn, and the demo flag
// records whether the result was synthesized locally.
func (s *Session) Analyze(ctx context.Context) (*types.AnalysisResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrAnalysisInFlight
	}
	if s.resume == nil {
		s.mu.Unlock()
		return nil, ErrNoResume
	}
	s.inFlight = true
	resume := *s.resume
	jobDescription := s.jobDescription
	s.mu.Unlock()

	outcome, err := s.client.Analyze(ctx, resume, jobDescription)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		return nil, err
	}

	s.result = outcome.Result
	s.demoMode = outcome.DemoMode
	s.history = []types.ChatTurn{assistantTurn(suggest.Welcome(outcome.Result.Score))}
	return outcome.Result, nil
}

// Ask appends the user's query to the conversation and answers it, preferring
// the remote service and falling back to the local rule engine.
func (s *Session) Ask(ctx context.Context, query string) (types.ChatTurn, error) {
	s.mu.Lock()
	if s.result == nil {
		s.mu.Unlock()
		return types.ChatTurn{}, ErrNoAnalysis
	}
	chatCtx := types.ChatContext{
		MissingSkills: s.result.MissingSkills,
		MatchedSkills: s.result.MatchedSkills,
		Score:         s.result.Score,
	}
	s.history = append(s.history, userTurn(query))
	s.mu.Unlock()

	suggestion, _ := s.client.Suggest(ctx, query, chatCtx)

	turn := assistantTurn(suggestion)
	s.mu.Lock()
	s.history = append(s.history, turn)
	s.mu.Unlock()
	return turn, nil
}

// Result returns the current analysis result (nil before the first analysis)
// and whether it came from demo mode.
func (s *Session) Result() (*types.AnalysisResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.demoMode
}

// History returns a copy of the conversation so far.
func (s *Session) History() []types.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]types.ChatTurn, len(s.history))
	copy(history, s.history)
	return history
}

// Reset clears all session fields at once: resume, job description, result,
// demo flag and chat history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = nil
	s.jobDescription = ""
	s.result = nil
	s.demoMode = false
	s.history = nil
}

func userTurn(content string) types.ChatTurn {
	return types.ChatTurn{
		ID:        uuid.New().String(),
		Role:      types.RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func assistantTurn(content string) types.ChatTurn {
	return types.ChatTurn{
		ID:        uuid.New().String(),
		Role:      types.RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}
