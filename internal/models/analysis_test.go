package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAnalysis(t *testing.T) {
	t.Run("StructuredResponse", func(t *testing.T) {
		a := ParseAnalysis(`{
			"projects": [{
				"name": "Oak Street Apartments",
				"vote_outcome": "Approved",
				"vote_details": "9-0",
				"key_concerns": ["traffic", "stormwater"]
			}],
			"newsletter_highlights": ["Oak Street approved unanimously"]
		}`)

		require.True(t, a.Structured())
		require.Len(t, a.Record.Projects, 1)
		require.Equal(t, "Oak Street Apartments", a.Record.Projects[0].Name)
		require.Equal(t, "Approved", a.Record.Projects[0].VoteOutcome)
		require.Equal(t, []string{"traffic", "stormwater"}, a.Record.Projects[0].KeyConcerns)
		require.Equal(t, []string{"Oak Street approved unanimously"}, a.Record.Highlights)
	})

	t.Run("NumericFieldsCoerceToStrings", func(t *testing.T) {
		// The model sometimes emits numbers for free-text fields.
		a := ParseAnalysis(`{"projects": [{"name": "Midtown Tower", "acreage": 4.2}]}`)

		require.True(t, a.Structured())
		require.Equal(t, "4.2", a.Record.Projects[0].Acreage)
	})

	t.Run("NonJSONFallsBackToRaw", func(t *testing.T) {
		text := "The commission discussed several rezonings but no JSON here."
		a := ParseAnalysis(text)

		require.False(t, a.Structured())
		require.Equal(t, text, a.Raw)
	})

	t.Run("EmptyObjectIsStructured", func(t *testing.T) {
		a := ParseAnalysis(`{}`)

		require.True(t, a.Structured())
		require.True(t, a.Record.Empty())
	})
}

func TestAnalysisJSONRoundTrip(t *testing.T) {
	t.Run("StructuredVariant", func(t *testing.T) {
		orig := Analysis{Record: &ExtractionRecord{
			Projects: []ProjectEntry{{Name: "Oak Street Apartments"}},
		}}

		data, err := json.Marshal(orig)
		require.NoError(t, err)
		require.Contains(t, string(data), `"projects"`)
		require.NotContains(t, string(data), "raw_analysis")

		var got Analysis
		require.NoError(t, json.Unmarshal(data, &got))
		require.True(t, got.Structured())
		require.Equal(t, "Oak Street Apartments", got.Record.Projects[0].Name)
	})

	t.Run("RawVariant", func(t *testing.T) {
		orig := Analysis{Raw: "plain text analysis"}

		data, err := json.Marshal(orig)
		require.NoError(t, err)
		require.JSONEq(t, `{"raw_analysis": "plain text analysis"}`, string(data))

		var got Analysis
		require.NoError(t, json.Unmarshal(data, &got))
		require.False(t, got.Structured())
		require.Equal(t, "plain text analysis", got.Raw)
	})
}

func TestExtractionRecordEmpty(t *testing.T) {
	var nilRec *ExtractionRecord
	require.True(t, nilRec.Empty())
	require.True(t, (&ExtractionRecord{}).Empty())
	require.False(t, (&ExtractionRecord{Highlights: []string{"x"}}).Empty())
}

func TestMeetingContextLabel(t *testing.T) {
	mctx := MeetingContext{
		Jurisdiction: "Raleigh",
		Date:         "2025-08-12",
		MeetingType:  "Planning Commission",
	}
	require.Equal(t, "Raleigh Planning Commission - 2025-08-12", mctx.Label())
}
