package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-screener/internal/skills"
	"github.com/jonathan/ats-screener/internal/types"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name         string
		resumeSkills []string
		jobSkills    []string
		wantMatched  []string
		wantMissing  []string
	}{
		{
			name:         "partial overlap",
			resumeSkills: []string{"python"},
			jobSkills:    []string{"python", "react", "sql"},
			wantMatched:  []string{"python"},
			wantMissing:  []string{"react", "sql"},
		},
		{
			name:         "full overlap",
			resumeSkills: []string{"python", "react", "sql"},
			jobSkills:    []string{"python", "react", "sql"},
			wantMatched:  []string{"python", "react", "sql"},
			wantMissing:  []string{},
		},
		{
			name:         "no overlap",
			resumeSkills: []string{"go"},
			jobSkills:    []string{"python", "react"},
			wantMatched:  []string{},
			wantMissing:  []string{"python", "react"},
		},
		{
			name:         "extra resume skills ignored",
			resumeSkills: []string{"python", "go", "rust"},
			jobSkills:    []string{"python"},
			wantMatched:  []string{"python"},
			wantMissing:  []string{},
		},
		{
			name:         "case-insensitive identity",
			resumeSkills: []string{"Python"},
			jobSkills:    []string{"python"},
			wantMatched:  []string{"python"},
			wantMissing:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, missing := Partition(tt.resumeSkills, tt.jobSkills)
			assert.Equal(t, tt.wantMatched, matched)
			assert.Equal(t, tt.wantMissing, missing)

			// Partition laws: disjoint, and matched ∪ missing covers the job skills.
			assert.Len(t, append(matched, missing...), len(tt.jobSkills))
			for _, m := range matched {
				assert.NotContains(t, missing, m)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		matched, total, want int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{0, 5, 0},
		{1, 2, 50},
		{5, 6, 83},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Score(tt.matched, tt.total))
	}
}

func TestClassify_ThresholdBoundary(t *testing.T) {
	assert.Equal(t, types.StatusShortlisted, Classify(70))
	assert.Equal(t, types.StatusRejected, Classify(69))
	assert.Equal(t, types.StatusShortlisted, Classify(100))
	assert.Equal(t, types.StatusRejected, Classify(0))
}

func TestAnalyze_PartialMatch(t *testing.T) {
	result, err := Analyze(
		"Experienced Python developer",
		"We need Python and React experience with SQL",
		skills.DefaultVocabulary,
	)
	require.NoError(t, err)

	assert.Equal(t, 33, result.Score)
	assert.Equal(t, types.StatusRejected, result.Status)
	assert.Equal(t, []string{"Python"}, result.MatchedSkills)
	assert.Equal(t, []string{"React", "Sql"}, result.MissingSkills)
}

func TestAnalyze_FullMatch(t *testing.T) {
	result, err := Analyze(
		"python react sql",
		"python react sql",
		skills.DefaultVocabulary,
	)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, types.StatusShortlisted, result.Status)
	assert.Empty(t, result.MissingSkills)
}

func TestAnalyze_NoJobSkills(t *testing.T) {
	_, err := Analyze("python react", "an unrecognizable posting", skills.DefaultVocabulary)
	assert.ErrorIs(t, err, ErrNoJobSkills)
}

func TestIndeterminate(t *testing.T) {
	result := Indeterminate()
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, types.StatusIndeterminate, result.Status)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
}
