package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-screener/internal/suggest"
	"github.com/jonathan/ats-screener/internal/types"
)

const testJobDescription = "We are looking for Python and React engineers with strong SQL skills."

var testResume = ResumeFile{
	Name: "resume.pdf",
	Data: []byte("%PDF-1.4\nExperienced Python developer.\n%%EOF"),
}

func TestResumeFile_Validate(t *testing.T) {
	assert.NoError(t, testResume.Validate())

	bad := ResumeFile{Name: "resume.txt", Data: []byte("plain")}
	assert.ErrorIs(t, bad.Validate(), ErrUnsupportedFileType)

	big := ResumeFile{Name: "resume.pdf", Data: make([]byte, 5*1024*1024+1)}
	assert.ErrorIs(t, big.Validate(), ErrFileTooLarge)
}

func TestAnalyze_RemoteSuccess(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analyze", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"score":85,"matched_skills":["Python","React"],"missing_skills":["Sql"]}`))
	}))
	defer backend.Close()

	c := New(backend.URL)
	outcome, err := c.Analyze(context.Background(), testResume, testJobDescription)
	require.NoError(t, err)

	assert.False(t, outcome.DemoMode)
	assert.Equal(t, 85, outcome.Result.Score)
	// Classification is derived locally from the score, never trusted remotely.
	assert.Equal(t, types.StatusShortlisted, outcome.Result.Status)
	assert.Equal(t, []string{"Python", "React"}, outcome.Result.MatchedSkills)
}

func TestAnalyze_ServerErrorFallsBackToDemo(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	c := New(backend.URL)
	outcome, err := c.Analyze(context.Background(), testResume, testJobDescription)
	require.NoError(t, err)
	require.NotNil(t, outcome.Result)

	assert.True(t, outcome.DemoMode)
	// Local demo analysis is deterministic set-difference matching.
	assert.Equal(t, 33, outcome.Result.Score)
	assert.Equal(t, types.StatusRejected, outcome.Result.Status)
	assert.Equal(t, []string{"Python"}, outcome.Result.MatchedSkills)
	assert.Equal(t, []string{"React", "Sql"}, outcome.Result.MissingSkills)
}

func TestAnalyze_UnreachableFallsBackToDemo(t *testing.T) {
	c := New("http://127.0.0.1:1")
	outcome, err := c.Analyze(context.Background(), testResume, testJobDescription)
	require.NoError(t, err)

	assert.True(t, outcome.DemoMode)
	assert.NotNil(t, outcome.Result)
}

func TestAnalyze_MalformedBodyFallsBackToDemo(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", "definitely not json"},
		{"schema violation", `{"score":"high","matched_skills":[],"missing_skills":[]}`},
		{"missing fields", `{"score":50}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer backend.Close()

			c := New(backend.URL)
			outcome, err := c.Analyze(context.Background(), testResume, testJobDescription)
			require.NoError(t, err)
			assert.True(t, outcome.DemoMode)
		})
	}
}

func TestAnalyze_IndeterminateFromRemote(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"score":0,"matched_skills":[],"missing_skills":[],"indeterminate":true}`))
	}))
	defer backend.Close()

	c := New(backend.URL)
	outcome, err := c.Analyze(context.Background(), testResume, testJobDescription)
	require.NoError(t, err)

	assert.False(t, outcome.DemoMode)
	assert.Equal(t, types.StatusIndeterminate, outcome.Result.Status)
}

func TestAnalyze_ValidationSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer backend.Close()

	c := New(backend.URL)

	_, err := c.Analyze(context.Background(), ResumeFile{Name: "r.txt", Data: []byte("x")}, testJobDescription)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = c.Analyze(context.Background(), testResume, "too short")
	assert.ErrorIs(t, err, ErrJobDescriptionTooShort)

	// Length is counted in runes, not bytes: 40 runes spanning 80 bytes.
	_, err = c.Analyze(context.Background(), testResume, strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrJobDescriptionTooShort)

	assert.Equal(t, int32(0), hits.Load(), "validation failures must not reach the network")
}

func TestSuggest_RemoteSuccess(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		_, _ = w.Write([]byte(`{"suggestion":"remote advice"}`))
	}))
	defer backend.Close()

	c := New(backend.URL)
	suggestion, local := c.Suggest(context.Background(), "help", types.ChatContext{Score: 50})
	assert.False(t, local)
	assert.Equal(t, "remote advice", suggestion)
}

func TestSuggest_FallsBackToLocalEngine(t *testing.T) {
	chatCtx := types.ChatContext{
		MissingSkills: []string{"React"},
		MatchedSkills: []string{"Python"},
		Score:         33,
	}

	c := New("http://127.0.0.1:1")
	suggestion, local := c.Suggest(context.Background(), "What skills should I add?", chatCtx)

	assert.True(t, local)
	assert.Equal(t, suggest.Respond("What skills should I add?", chatCtx), suggestion)
}

func TestSuggest_EmptyRemoteSuggestionFallsBack(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"suggestion":""}`))
	}))
	defer backend.Close()

	c := New(backend.URL)
	suggestion, local := c.Suggest(context.Background(), "hello", types.ChatContext{Score: 10})
	assert.True(t, local)
	assert.NotEmpty(t, suggestion)
}

func TestHealth(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	c := New(backend.URL)
	assert.True(t, c.Health(context.Background()))

	backend.Close()
	assert.False(t, c.Health(context.Background()))
}

func TestHealth_Non2xx(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer backend.Close()

	c := New(backend.URL)
	assert.False(t, c.Health(context.Background()))
}
