package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/ats-screener/internal/ingestion"
	"github.com/jonathan/ats-screener/internal/match"
	"github.com/jonathan/ats-screener/internal/store"
	"github.com/jonathan/ats-screener/internal/suggest"
	"github.com/jonathan/ats-screener/internal/types"
)

var validate = validator.New()

// AnalyzeResponse is the body for POST /api/analyze. Classification status is
// deliberately absent: callers derive it from the score.
type AnalyzeResponse struct {
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Indeterminate bool     `json:"indeterminate,omitempty"`
}

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	Query         string   `json:"query"`
	MissingSkills []string `json:"missing_skills" validate:"dive,min=1"`
	MatchedSkills []string `json:"matched_skills" validate:"dive,min=1"`
	Score         int      `json:"score" validate:"gte=0,lte=100"`
}

// ChatResponse is the body for POST /api/chat.
type ChatResponse struct {
	Suggestion string `json:"suggestion"`
}

// maxAnalyzeBody caps the whole multipart request: resume cap plus headroom
// for the job description field.
const maxAnalyzeBody = ingestion.MaxResumeBytes + 1<<20

// handleAnalyze scores an uploaded resume against a job description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBody)
	if err := r.ParseMultipartForm(maxAnalyzeBody); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, &ErrMissingResume{})
		return
	}
	defer file.Close()

	if header.Size > ingestion.MaxResumeBytes {
		s.errorResponse(w, &ErrFileTooLarge{Size: header.Size, Limit: ingestion.MaxResumeBytes})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxResumeBytes+1))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "resume", Message: "failed to read resume: " + err.Error()})
		return
	}
	if int64(len(data)) > ingestion.MaxResumeBytes {
		s.errorResponse(w, &ErrFileTooLarge{Size: int64(len(data)), Limit: ingestion.MaxResumeBytes})
		return
	}
	if ingestion.SniffMIME(header.Filename, data) == "" {
		s.errorResponse(w, &ErrUnsupportedFileType{Filename: header.Filename})
		return
	}

	jobDescription := strings.TrimSpace(r.FormValue("job_description"))
	if n := utf8.RuneCountInString(jobDescription); n < types.MinJobDescriptionChars {
		s.errorResponse(w, &ErrJobDescriptionTooShort{Length: n, Min: types.MinJobDescriptionChars})
		return
	}

	resumeText, err := ingestion.ResumeText(header.Filename, data)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "resume", Message: err.Error()})
		return
	}

	result, err := match.Analyze(resumeText, jobDescription, s.vocab)
	if err != nil {
		if errors.Is(err, match.ErrNoJobSkills) {
			// Defined outcome for an unrecognizable job description, not a
			// failure: callers receive an explicit indeterminate payload.
			s.persistAnalysis(r, match.Indeterminate(), jobDescription)
			s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
				Score:         0,
				MatchedSkills: []string{},
				MissingSkills: []string{},
				Indeterminate: true,
			})
			return
		}
		s.errorResponse(w, err)
		return
	}

	s.persistAnalysis(r, result, jobDescription)
	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Score:         result.Score,
		MatchedSkills: result.MatchedSkills,
		MissingSkills: result.MissingSkills,
	})
}

// persistAnalysis records the result when history storage is configured.
func (s *Server) persistAnalysis(r *http.Request, result *types.AnalysisResult, jobDescription string) {
	if s.store == nil {
		return
	}
	id, err := s.store.SaveAnalysis(r.Context(), result, jobDescription)
	if err != nil {
		s.logger.Error("failed to persist analysis", zap.Error(err))
		return
	}
	s.logger.Debug("analysis persisted", zap.String("id", id.String()))
}

// handleChat returns an improvement suggestion for the supplied analysis
// context and optional free-text query.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	suggestion := suggest.Respond(req.Query, types.ChatContext{
		MissingSkills: req.MissingSkills,
		MatchedSkills: req.MatchedSkills,
		Score:         req.Score,
	})
	s.jsonResponse(w, http.StatusOK, ChatResponse{Suggestion: suggestion})
}

// validationError converts a validator error into the typed request error.
func validationError(err error) *ErrValidation {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return &ErrValidation{Field: first.Field(), Message: "failed " + first.Tag() + " validation"}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// handleListAnalyses returns recent analysis history.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = parsed
	}

	analyses, err := s.store.ListAnalyses(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if analyses == nil {
		analyses = []*store.Analysis{}
	}
	s.jsonResponse(w, http.StatusOK, analyses)
}

// handleGetAnalysis returns one stored analysis by ID.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "invalid analysis ID format"})
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if analysis == nil {
		s.errorResponse(w, &ErrAnalysisNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}
