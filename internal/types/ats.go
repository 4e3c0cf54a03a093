// Package types defines the shared data model for the ATS screener.
package types

import "time"

// MinJobDescriptionChars is the minimum job description length accepted for
// analysis, counted in runes. It is a pre-flight gate on both sides of the
// client boundary.
const MinJobDescriptionChars = 50

// Status is the screening outcome derived from the match score.
type Status string

const (
	// StatusShortlisted means the score cleared the shortlist threshold.
	StatusShortlisted Status = "Shortlisted"
	// StatusRejected means the score fell below the shortlist threshold.
	StatusRejected Status = "Rejected"
	// StatusIndeterminate means the job description contained no recognized
	// skill terms, so no meaningful score could be computed.
	StatusIndeterminate Status = "Indeterminate"
)

// AnalysisResult is the outcome of matching one resume against one job
// description. It is created once per analysis and never mutated; a new
// analysis or a session reset replaces it wholesale.
type AnalysisResult struct {
	Score         int      `json:"score"`
	Status        Status   `json:"status"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is a single message in an assistant conversation. Turns are
// append-only; the history is cleared only by a session reset.
type ChatTurn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatContext is the read-only snapshot handed to the suggestion engine
// alongside each user query. It does not change between turns within one
// analysis session.
type ChatContext struct {
	MissingSkills []string `json:"missing_skills"`
	MatchedSkills []string `json:"matched_skills"`
	Score         int      `json:"score"`
}
