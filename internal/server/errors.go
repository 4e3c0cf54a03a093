// Package server provides the HTTP REST API for the ATS screener.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrUnsupportedFileType indicates the resume file is not PDF or DOCX.
type ErrUnsupportedFileType struct {
	Filename string
}

func (e *ErrUnsupportedFileType) Error() string {
	return fmt.Sprintf("unsupported resume file type: %s (PDF or DOCX required)", e.Filename)
}

// ErrFileTooLarge indicates the resume file exceeds the upload cap.
type ErrFileTooLarge struct {
	Size  int64
	Limit int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("resume file too large: %d bytes (limit %d)", e.Size, e.Limit)
}

// ErrJobDescriptionTooShort indicates the job description is below the
// minimum length.
type ErrJobDescriptionTooShort struct {
	Length int
	Min    int
}

func (e *ErrJobDescriptionTooShort) Error() string {
	return fmt.Sprintf("job description too short: %d characters (minimum %d)", e.Length, e.Min)
}

// ErrMissingResume indicates the multipart request had no resume part.
type ErrMissingResume struct{}

func (e *ErrMissingResume) Error() string {
	return "resume file is required"
}

// ErrValidation indicates request payload validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAnalysisNotFound indicates no stored analysis exists with the given ID.
type ErrAnalysisNotFound struct {
	ID uuid.UUID
}

func (e *ErrAnalysisNotFound) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrUnsupportedFileType, *ErrFileTooLarge, *ErrJobDescriptionTooShort,
		*ErrMissingResume, *ErrValidation:
		return http.StatusBadRequest
	case *ErrAnalysisNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
