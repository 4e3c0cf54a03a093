// Package match compares resume skills against job-description skills and
// produces a score, a shortlist classification, and matched/missing lists.
package match

import (
	"errors"
	"math"
	"strings"

	"github.com/jonathan/ats-screener/internal/skills"
	"github.com/jonathan/ats-screener/internal/types"
)

// ShortlistThreshold is the minimum score for a Shortlisted classification.
const ShortlistThreshold = 70

// ErrNoJobSkills indicates the job description contained no recognized
// vocabulary terms, so no meaningful score can be computed.
var ErrNoJobSkills = errors.New("no recognized skills in job description")

// Partition splits the job skills into matched (present in the resume) and
// missing (absent from the resume). Both outputs preserve job-skill order.
// Invariants: matched and missing are disjoint and their union is jobSkills.
func Partition(resumeSkills, jobSkills []string) (matched, missing []string) {
	inResume := make(map[string]bool, len(resumeSkills))
	for _, skill := range resumeSkills {
		inResume[strings.ToLower(skill)] = true
	}

	matched = make([]string, 0, len(jobSkills))
	missing = make([]string, 0, len(jobSkills))
	for _, skill := range jobSkills {
		if inResume[strings.ToLower(skill)] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}

// Score computes round(100 * matched / total). Total must be positive;
// callers handle the zero-job-skills case via ErrNoJobSkills.
func Score(matchedCount, totalCount int) int {
	return int(math.Round(100 * float64(matchedCount) / float64(totalCount)))
}

// Classify maps a score to a screening status.
func Classify(score int) types.Status {
	if score >= ShortlistThreshold {
		return types.StatusShortlisted
	}
	return types.StatusRejected
}

// Analyze extracts skills from both texts, partitions the job skills against
// the resume skills, and returns a scored, classified result with skills in
// display form. When the job description yields no recognized skills it
// returns ErrNoJobSkills; callers that must always produce a result map that
// to Indeterminate().
func Analyze(resumeText, jobText string, vocab skills.Vocabulary) (*types.AnalysisResult, error) {
	jobSkills := vocab.Extract(jobText)
	if len(jobSkills) == 0 {
		return nil, ErrNoJobSkills
	}

	resumeSkills := vocab.Extract(resumeText)
	matched, missing := Partition(resumeSkills, jobSkills)
	score := Score(len(matched), len(jobSkills))

	return &types.AnalysisResult{
		Score:         score,
		Status:        Classify(score),
		MatchedSkills: skills.DisplayAll(matched),
		MissingSkills: skills.DisplayAll(missing),
	}, nil
}

// Indeterminate is the defined result for a job description with no
// recognized skill terms.
func Indeterminate() *types.AnalysisResult {
	return &types.AnalysisResult{
		Score:         0,
		Status:        types.StatusIndeterminate,
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}
}
