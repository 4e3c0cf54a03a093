package store

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-screener/internal/types"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"short", "a brief posting", "a brief posting"},
		{"exact limit", strings.Repeat("x", 500), strings.Repeat("x", 500)},
		{"over limit", strings.Repeat("x", 501), strings.Repeat("x", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excerpt(tt.input))
		})
	}
}

func TestExcerpt_MultibyteSafe(t *testing.T) {
	input := strings.Repeat("é", 600)
	got := Excerpt(input)
	assert.Equal(t, 500, len([]rune(got)))
	assert.Equal(t, strings.Repeat("é", 500), got)
}

// testStore connects to the database named by TEST_DATABASE_URL; integration
// tests skip when it is unset.
func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	s, err := Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestStore_SaveAndGetAnalysis(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	result := &types.AnalysisResult{
		Score:         33,
		Status:        types.StatusRejected,
		MatchedSkills: []string{"Python"},
		MissingSkills: []string{"React", "Sql"},
	}

	id, err := s.SaveAnalysis(ctx, result, "We are looking for Python and React engineers with strong SQL skills.")
	require.NoError(t, err)

	got, err := s.GetAnalysis(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, 33, got.Score)
	assert.Equal(t, types.StatusRejected, got.Status)
	assert.Equal(t, []string{"Python"}, got.MatchedSkills)
	assert.Equal(t, []string{"React", "Sql"}, got.MissingSkills)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_GetAnalysisNotFound(t *testing.T) {
	s := testStore(t)

	got, err := s.GetAnalysis(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ListAnalyses(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	result := &types.AnalysisResult{
		Score:         100,
		Status:        types.StatusShortlisted,
		MatchedSkills: []string{"Python"},
		MissingSkills: []string{},
	}
	_, err := s.SaveAnalysis(ctx, result, "Python only.")
	require.NoError(t, err)

	analyses, err := s.ListAnalyses(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, analyses)
	assert.LessOrEqual(t, len(analyses), 10)
}
