package analysis

import "fmt"

// systemPrompt frames the extraction model as a domain expert.
const systemPrompt = "You are an expert Triangle area development analyst who extracts key information from planning meetings for professional newsletters."

// promptTemplate embeds the meeting context, the expected output schema,
// and the transcript. The schema description is advisory: the model is
// asked for these fields but nothing downstream requires any of them.
const promptTemplate = `Analyze this %s planning meeting transcript and extract development intelligence for the Triangle Development Digest newsletter.

Meeting Details:
- Jurisdiction: %s
- Date: %s
- Type: %s

Extract and return JSON with these sections:

{
    "projects": [
        {
            "name": "project_name or case_number",
            "address": "street_address or location",
            "case_number": "zoning_case_number if mentioned",
            "developer": "developer_company",
            "applicant": "applicant_name",
            "project_type": "residential/commercial/mixed-use/rezoning/etc",
            "current_status": "application/review/approval/denial/deferred",
            "vote_outcome": "approved/denied/deferred/no_vote",
            "vote_details": "vote_count_if_available (e.g. 9-0, 7-2)",
            "key_concerns": ["list", "of", "concerns", "raised"],
            "conditions": ["approval", "conditions", "if any"],
            "timeline": "next_steps_or_deadlines",
            "opposition": "summary_of_public_opposition",
            "staff_recommendation": "staff_position",
            "acreage": "land_size_if_mentioned",
            "previous_action": "history_from_previous_meetings"
        }
    ],
    "regulatory_changes": [
        {
            "topic": "ordinance/fee/policy_change",
            "description": "what_changed",
            "impact": "effect_on_development",
            "effective_date": "when_it_takes_effect"
        }
    ],
    "market_intelligence": [
        {
            "trend": "observed_pattern",
            "description": "trend_details",
            "implications": "what_it_means_for_developers"
        }
    ],
    "key_people": [
        {
            "name": "person_name",
            "role": "commissioner/staff/developer/citizen",
            "notable_positions": "key_statements_or_positions"
        }
    ],
    "newsletter_highlights": [
        "Most important takeaway for Triangle developers 1",
        "Most important takeaway for Triangle developers 2",
        "Most important takeaway for Triangle developers 3"
    ]
}

Focus on actionable intelligence that Triangle development professionals need to know. Pay special attention to:
- Specific project names, addresses, and case numbers
- Vote outcomes and commissioner positions
- Timeline and next steps
- Staff recommendations and their success rate

Transcript:
%s`

func buildPrompt(transcript, jurisdiction, date, meetingType string) string {
	return fmt.Sprintf(promptTemplate, orUnknown(jurisdiction, "Triangle"),
		orUnknown(jurisdiction, "Unknown"), orUnknown(date, "Unknown"),
		orUnknown(meetingType, "Planning Commission"), transcript)
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
