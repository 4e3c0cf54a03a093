// Package client implements the consumer side of the screener's HTTP
// contract: analysis, chat suggestions and liveness checks, each degrading to
// a local computation when the remote service is unreachable.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/ats-screener/internal/ingestion"
	"github.com/jonathan/ats-screener/internal/match"
	"github.com/jonathan/ats-screener/internal/skills"
	"github.com/jonathan/ats-screener/internal/suggest"
	"github.com/jonathan/ats-screener/internal/types"
)

// Pre-flight validation errors. These report invalid input before any network
// call; transport failures never surface as errors, they degrade to demo mode.
var (
	ErrUnsupportedFileType    = errors.New("unsupported resume file type (PDF or DOCX required)")
	ErrFileTooLarge           = fmt.Errorf("resume file exceeds %d bytes", ingestion.MaxResumeBytes)
	ErrJobDescriptionTooShort = fmt.Errorf("job description must be at least %d characters", types.MinJobDescriptionChars)
)

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

// Client talks to a remote screener service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	vocab      skills.Vocabulary
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithVocabulary overrides the vocabulary used for local demo analysis.
func WithVocabulary(vocab skills.Vocabulary) Option {
	return func(c *Client) { c.vocab = vocab }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the service at baseURL (e.g.
// "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		vocab:      skills.DefaultVocabulary,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResumeFile is an in-memory resume upload.
type ResumeFile struct {
	Name string
	Data []byte
}

// LoadResumeFile reads a resume from disk.
func LoadResumeFile(path string) (ResumeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResumeFile{}, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}
	return ResumeFile{Name: filepath.Base(path), Data: data}, nil
}

// Validate applies the pre-flight file gates: allowed type and size cap.
func (f ResumeFile) Validate() error {
	if int64(len(f.Data)) > ingestion.MaxResumeBytes {
		return ErrFileTooLarge
	}
	if ingestion.SniffMIME(f.Name, f.Data) == "" {
		return ErrUnsupportedFileType
	}
	return nil
}

// Outcome is a completed analysis. DemoMode marks results synthesized locally
// because the remote service was unreachable or returned an unusable body.
type Outcome struct {
	Result   *types.AnalysisResult
	DemoMode bool
}

// analyzePayload mirrors the /api/analyze response body.
type analyzePayload struct {
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Indeterminate bool     `json:"indeterminate"`
}

// Analyze submits a resume and job description for analysis. Input validation
// failures return an error without attempting the request; any remote failure
// degrades to a local demo analysis so the caller always receives a result.
func (c *Client) Analyze(ctx context.Context, resume ResumeFile, jobDescription string) (*Outcome, error) {
	if err := resume.Validate(); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(strings.TrimSpace(jobDescription)) < types.MinJobDescriptionChars {
		return nil, ErrJobDescriptionTooShort
	}

	body, err := c.postAnalyze(ctx, resume, jobDescription)
	if err != nil {
		c.logger.Warn("remote analysis unavailable, using demo mode", zap.Error(err))
		return c.demoAnalyze(resume, jobDescription), nil
	}

	payload, err := decodeAnalyzeResponse(body)
	if err != nil {
		c.logger.Warn("remote analysis response unusable, using demo mode", zap.Error(err))
		return c.demoAnalyze(resume, jobDescription), nil
	}

	return &Outcome{Result: resultFromPayload(payload)}, nil
}

// postAnalyze performs the multipart request and returns the raw body of a
// 2xx response.
func (c *Client) postAnalyze(ctx context.Context, resume ResumeFile, jobDescription string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("resume", resume.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(resume.Data); err != nil {
		return nil, fmt.Errorf("failed to write resume part: %w", err)
	}
	if err := writer.WriteField("job_description", jobDescription); err != nil {
		return nil, fmt.Errorf("failed to write job description field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server error: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// resultFromPayload derives the classification client-side; a status from the
// server would not be trusted anyway.
func resultFromPayload(p *analyzePayload) *types.AnalysisResult {
	if p.Indeterminate {
		return match.Indeterminate()
	}
	matched := p.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	missing := p.MissingSkills
	if missing == nil {
		missing = []string{}
	}
	return &types.AnalysisResult{
		Score:         p.Score,
		Status:        match.Classify(p.Score),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// demoAnalyze computes the result locally from the resume bytes and job
// description using the same deterministic matching as the server.
func (c *Client) demoAnalyze(resume ResumeFile, jobDescription string) *Outcome {
	resumeText, err := ingestion.ResumeText(resume.Name, resume.Data)
	if err != nil {
		c.logger.Warn("failed to extract resume text for demo analysis", zap.Error(err))
		resumeText = ""
	}

	result, err := match.Analyze(resumeText, jobDescription, c.vocab)
	if err != nil {
		result = match.Indeterminate()
	}
	return &Outcome{Result: result, DemoMode: true}
}

// chatPayload mirrors the /api/chat request body.
type chatPayload struct {
	Query         string   `json:"query"`
	MissingSkills []string `json:"missing_skills"`
	MatchedSkills []string `json:"matched_skills"`
	Score         int      `json:"score"`
}

// Suggest returns an improvement suggestion for the query and analysis
// context. On any remote failure the local rule engine answers instead; local
// reports which side produced the suggestion.
func (c *Client) Suggest(ctx context.Context, query string, chatCtx types.ChatContext) (suggestion string, local bool) {
	payload := chatPayload{
		Query:         query,
		MissingSkills: chatCtx.MissingSkills,
		MatchedSkills: chatCtx.MatchedSkills,
		Score:         chatCtx.Score,
	}

	body, err := c.postJSON(ctx, "/api/chat", payload)
	if err != nil {
		c.logger.Warn("remote suggestion unavailable, answering locally", zap.Error(err))
		return suggest.Respond(query, chatCtx), true
	}

	remote, err := decodeChatResponse(body)
	if err != nil {
		c.logger.Warn("remote suggestion response unusable, answering locally", zap.Error(err))
		return suggest.Respond(query, chatCtx), true
	}
	return remote, false
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server error: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Health reports whether the remote service is reachable: any 2xx response
// counts, any other outcome does not.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}
