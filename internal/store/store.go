// Package store provides PostgreSQL persistence for analysis history.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/ats-screener/internal/types"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Analysis is one persisted screening outcome.
type Analysis struct {
	ID            uuid.UUID    `json:"id"`
	Score         int          `json:"score"`
	Status        types.Status `json:"status"`
	MatchedSkills []string     `json:"matched_skills"`
	MissingSkills []string     `json:"missing_skills"`
	JobExcerpt    string       `json:"job_excerpt"`
	CreatedAt     time.Time    `json:"created_at"`
}

// jobExcerptLimit caps how much of the job description is kept with each row.
const jobExcerptLimit = 500

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveAnalysis stores one analysis result and returns its ID.
func (s *Store) SaveAnalysis(ctx context.Context, result *types.AnalysisResult, jobDescription string) (uuid.UUID, error) {
	matched, err := json.Marshal(result.MatchedSkills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	missing, err := json.Marshal(result.MissingSkills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal missing skills: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO analyses (score, status, matched_skills, missing_skills, job_excerpt)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		result.Score, string(result.Status), matched, missing, Excerpt(jobDescription),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis retrieves one analysis by ID. Returns (nil, nil) when not found.
func (s *Store) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, score, status, matched_skills, missing_skills, job_excerpt, created_at
		 FROM analyses WHERE id = $1`, id)

	analysis, err := scanAnalysis(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return analysis, nil
}

// ListAnalyses returns the most recent analyses, newest first.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]*Analysis, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, score, status, matched_skills, missing_skills, job_excerpt, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		analyses = append(analyses, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return analyses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*Analysis, error) {
	var (
		a                analysisRow
		matched, missing []byte
	)
	if err := row.Scan(&a.ID, &a.Score, &a.Status, &matched, &missing, &a.JobExcerpt, &a.CreatedAt); err != nil {
		return nil, err
	}

	analysis := &Analysis{
		ID:         a.ID,
		Score:      a.Score,
		Status:     types.Status(a.Status),
		JobExcerpt: a.JobExcerpt,
		CreatedAt:  a.CreatedAt,
	}
	if err := json.Unmarshal(matched, &analysis.MatchedSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matched skills: %w", err)
	}
	if err := json.Unmarshal(missing, &analysis.MissingSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal missing skills: %w", err)
	}
	return analysis, nil
}

type analysisRow struct {
	ID         uuid.UUID
	Score      int
	Status     string
	JobExcerpt string
	CreatedAt  time.Time
}

// Excerpt truncates a job description to the stored excerpt length.
func Excerpt(jobDescription string) string {
	runes := []rune(jobDescription)
	if len(runes) <= jobExcerptLimit {
		return jobDescription
	}
	return string(runes[:jobExcerptLimit])
}
