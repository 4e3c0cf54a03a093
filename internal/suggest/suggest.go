// Package suggest implements the rule-based resume improvement assistant.
// Responses are canned templates filled from the analysis context; the engine
// is stateless and deterministic.
package suggest

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-screener/internal/match"
	"github.com/jonathan/ats-screener/internal/types"
)

// rule pairs a trigger-keyword group with its response template. Rules are
// evaluated in order and the first group containing any trigger wins.
type rule struct {
	triggers []string
	respond  func(ctx types.ChatContext) string
}

var rules = []rule{
	{triggers: []string{"improve", "better", "help"}, respond: improvementSuggestions},
	{triggers: []string{"skill", "add"}, respond: skillGapSuggestions},
	{triggers: []string{"score", "percent", "%"}, respond: scoreExplanation},
	{triggers: []string{"format", "section", "structure"}, respond: formattingTips},
}

// Respond selects the canned response for a user query. The query is
// lowercased and tested for substring membership against each trigger group
// in order; with no trigger matched the generic menu response is returned.
// Same inputs always yield the same output.
func Respond(query string, ctx types.ChatContext) string {
	lowerQuery := strings.ToLower(query)
	for _, r := range rules {
		for _, trigger := range r.triggers {
			if strings.Contains(lowerQuery, trigger) {
				return r.respond(ctx)
			}
		}
	}
	return menuResponse(ctx)
}

// Welcome is the assistant's opening message for a fresh analysis session.
func Welcome(score int) string {
	verdict := "Let me help you improve your resume."
	if score >= match.ShortlistThreshold {
		verdict = "Congratulations on being shortlisted!"
	}
	return fmt.Sprintf("Hello! I've analyzed your resume against the job description. "+
		"Your ATS score is %d%%. %s\n\n"+
		"Ask me anything like:\n"+
		"• \"How can I improve my resume?\"\n"+
		"• \"What skills should I add?\"\n"+
		"• \"Tips for better matching\"", score, verdict)
}

func improvementSuggestions(ctx types.ChatContext) string {
	if len(ctx.MissingSkills) == 0 {
		return "Your resume is well-aligned with the job description! To further improve:\n\n" +
			"1. Quantify your achievements (e.g., \"increased sales by 20%\")\n" +
			"2. Use action verbs to start bullet points\n" +
			"3. Ensure consistent formatting throughout"
	}

	return fmt.Sprintf("Here are my suggestions to improve your resume:\n\n"+
		"1. **Add Missing Skills**: Consider adding these skills to your resume:\n   %s\n\n"+
		"2. **Highlight Existing Skills**: Make sure these matched skills are prominently displayed:\n   %s\n\n"+
		"3. **Use Keywords**: Mirror the exact terminology from the job description",
		bulletList(firstN(ctx.MissingSkills, 5)),
		bulletList(firstN(ctx.MatchedSkills, 3)))
}

func skillGapSuggestions(ctx types.ChatContext) string {
	if len(ctx.MissingSkills) == 0 {
		return "Great news! Your resume already contains all the key skills from the job description. Consider:\n\n" +
			"• Adding related certifications\n" +
			"• Including relevant projects\n" +
			"• Mentioning tools/technologies you've used"
	}

	lines := make([]string, len(ctx.MissingSkills))
	for i, skill := range ctx.MissingSkills {
		lines[i] = fmt.Sprintf("• **%s** - Research and practice this skill, then add relevant experience", skill)
	}
	return fmt.Sprintf("Based on the job description, you should consider adding these skills:\n\n%s\n\n"+
		"Prioritize the top 3-5 skills that are most commonly mentioned in the job description.",
		strings.Join(lines, "\n"))
}

func scoreExplanation(ctx types.ChatContext) string {
	if ctx.Score >= match.ShortlistThreshold {
		return fmt.Sprintf("Your ATS score is %d%%. This is above the %d%% threshold, "+
			"which means you're likely to be shortlisted!\n\n"+
			"To further improve:\n"+
			"• Add more relevant keywords\n"+
			"• Include measurable achievements\n"+
			"• Tailor your summary to the role", ctx.Score, match.ShortlistThreshold)
	}

	return fmt.Sprintf("Your ATS score is %d%%. This is below the %d%% threshold. To improve:\n\n"+
		"1. Add the missing skills: %s\n"+
		"2. Use exact keywords from the job posting\n"+
		"3. Reorganize to highlight relevant experience first\n"+
		"4. Remove irrelevant information",
		ctx.Score, match.ShortlistThreshold, strings.Join(firstN(ctx.MissingSkills, 3), ", "))
}

func formattingTips(_ types.ChatContext) string {
	return "Here are formatting tips for a better ATS score:\n\n" +
		"1. **Use Standard Sections**: Summary, Experience, Skills, Education\n" +
		"2. **Simple Formatting**: Avoid tables, graphics, or complex layouts\n" +
		"3. **Clear Headings**: Use standard section titles\n" +
		"4. **Bullet Points**: Use simple bullets for experience\n" +
		"5. **Font**: Stick to standard fonts like Arial or Calibri\n" +
		"6. **File Format**: Submit as PDF unless specified otherwise"
}

func menuResponse(ctx types.ChatContext) string {
	return fmt.Sprintf("I can help you with:\n\n"+
		"• **\"How to improve my resume?\"** - Get personalized suggestions\n"+
		"• **\"What skills should I add?\"** - See missing skills analysis\n"+
		"• **\"Explain my score\"** - Understand your ATS score\n"+
		"• **\"Format tips\"** - Best practices for resume structure\n\n"+
		"Your current score is %d%% with %d matched and %d missing skills.",
		ctx.Score, len(ctx.MatchedSkills), len(ctx.MissingSkills))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n   ")
}
