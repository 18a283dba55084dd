package newsletter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/permitrdu/digest/internal/models"
)

// Per-section system prompts framing the model's voice.
var sectionSystemPrompts = map[models.SectionKind]string{
	models.SectionExecutiveSummary:   "You are an executive briefing writer for Triangle development professionals.",
	models.SectionProjectPipeline:    "You are a professional newsletter writer for Triangle development professionals.",
	models.SectionMarketIntelligence: "You are a market analyst specializing in Triangle area development trends.",
	models.SectionRegulatoryWatch:    "You are a regulatory affairs expert focused on Triangle development processes.",
	models.SectionPeoplePolitics:     "You are a political analyst covering Triangle development and planning politics.",
}

// buildSectionPrompt renders the user prompt for one section, embedding the
// relevant slice of the analysis plus that section's style constraints.
func buildSectionPrompt(kind models.SectionKind, a models.Analysis, mctx models.MeetingContext) string {
	meeting := mctx.Label()

	switch kind {
	case models.SectionProjectPipeline:
		return fmt.Sprintf(`Write a professional "Project Pipeline" section for the Triangle Development Digest newsletter.

Meeting: %s

Projects to cover:
%s

Style Guidelines:
- Professional but accessible tone
- Focus on actionable intelligence for developers
- Include specific project details (addresses, developers, timelines)
- Highlight vote outcomes and next steps
- 150-250 words
- Use bullet points for key details

Format as a complete newsletter section with a compelling headline.`, meeting, marshalIndent(projectsOf(a)))

	case models.SectionMarketIntelligence:
		return fmt.Sprintf(`Write a "Market Intelligence" section for the Triangle Development Digest newsletter.

Meeting: %s

Analysis Data:
%s

Focus on:
- Development trends observed in this meeting
- Commissioner attitudes toward development
- Opposition patterns and community concerns
- Process insights that affect project timelines
- Strategic implications for developers

Style: Insightful analysis that helps developers understand the political and market landscape.
Length: 150-200 words
Include a compelling headline.`, meeting, marshalIndent(a))

	case models.SectionRegulatoryWatch:
		return fmt.Sprintf(`Write a "Regulatory Watch" section for the Triangle Development Digest newsletter.

Meeting: %s

Analysis Data:
%s

Focus on:
- Process changes or improvements mentioned
- New requirements or conditions being imposed
- Staff recommendation patterns
- Timeline and deadline insights
- Regulatory efficiency observations

If no major regulatory changes were discussed, focus on process insights and timing observations that would help developers navigate the system more effectively.

Style: Practical guidance for development professionals
Length: 100-150 words
Include headline focused on regulatory insights.`, meeting, marshalIndent(a))

	case models.SectionPeoplePolitics:
		return fmt.Sprintf(`Write a "People & Politics" section for the Triangle Development Digest newsletter.

Meeting: %s

Key People:
%s

Focus on:
- Commissioner positions and voting patterns
- Staff recommendations and their success rate
- Developer/applicant strategies and presentations
- Community opposition leaders and their concerns
- Political dynamics that affect development approval

Style: Professional insider intelligence that helps developers understand the human dynamics
Length: 100-150 words
Include headline about political insights or key relationships.`, meeting, marshalIndent(peopleOf(a)))

	default: // executive summary
		return fmt.Sprintf(`Write an "Executive Summary" section for the Triangle Development Digest newsletter.

Meeting: %s

Key Highlights:
%s

Full Analysis:
%s

Create a compelling executive summary that:
- Captures the most important developments for Triangle developers
- Highlights key opportunities and risks
- Provides actionable takeaways
- Sets context for the detailed sections that follow

Style: Executive briefing tone - concise but comprehensive
Length: 75-125 words
Start with a strong headline that captures the meeting's significance.`, meeting, bulletList(highlightsOf(a)), marshalIndent(a))
	}
}

func projectsOf(a models.Analysis) []models.ProjectEntry {
	if a.Record == nil {
		return nil
	}
	return a.Record.Projects
}

func peopleOf(a models.Analysis) []models.PersonEntry {
	if a.Record == nil {
		return nil
	}
	return a.Record.KeyPeople
}

func highlightsOf(a models.Analysis) []string {
	if a.Record == nil {
		return nil
	}
	return a.Record.Highlights
}

func marshalIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "(none noted)"
	}
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it)
	}
	return strings.TrimRight(b.String(), "\n")
}
