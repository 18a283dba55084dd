package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/permitrdu/digest/internal/genai"
	"github.com/permitrdu/digest/internal/models"
)

type fakeCompleter struct {
	lastReq  genai.CompletionRequest
	response string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, req genai.CompletionRequest) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testMeeting() models.MeetingContext {
	return models.MeetingContext{
		Jurisdiction: "Raleigh",
		Date:         "2025-08-12",
		MeetingType:  "Planning Commission",
	}
}

func TestAnalyze(t *testing.T) {
	t.Run("StructuredExtraction", func(t *testing.T) {
		fake := &fakeCompleter{response: `{
			"projects": [{"name": "Oak Street Apartments", "vote_outcome": "Approved 9-0"}],
			"key_people": [{"name": "Jane Chair", "role": "Commission Chair"}]
		}`}
		an := NewAnalyzer(fake, "gpt-4", 12000, nil)

		res := an.Analyze(context.Background(), "transcript text", testMeeting())

		require.True(t, res.Success)
		require.Empty(t, res.Error)
		require.True(t, res.Analysis.Structured())
		require.Equal(t, "Approved 9-0", res.Analysis.Record.Projects[0].VoteOutcome)
		require.Len(t, res.Analysis.Record.KeyPeople, 1)

		require.Equal(t, "gpt-4", fake.lastReq.Model)
		require.InDelta(t, 0.1, fake.lastReq.Temperature, 1e-9)
		require.Contains(t, fake.lastReq.Prompt, "Raleigh")
		require.Contains(t, fake.lastReq.Prompt, "transcript text")
	})

	t.Run("FencedJSONResponse", func(t *testing.T) {
		fake := &fakeCompleter{response: "```json\n{\"projects\": [{\"name\": \"Midtown Tower\"}]}\n```"}
		an := NewAnalyzer(fake, "gpt-4", 12000, nil)

		res := an.Analyze(context.Background(), "transcript", testMeeting())

		require.True(t, res.Success)
		require.True(t, res.Analysis.Structured())
		require.Equal(t, "Midtown Tower", res.Analysis.Record.Projects[0].Name)
	})

	t.Run("UnparseableResponseIsStillSuccess", func(t *testing.T) {
		fake := &fakeCompleter{response: "I could not produce JSON, but here is a summary."}
		an := NewAnalyzer(fake, "gpt-4", 12000, nil)

		res := an.Analyze(context.Background(), "transcript", testMeeting())

		require.True(t, res.Success)
		require.False(t, res.Analysis.Structured())
		require.Equal(t, "I could not produce JSON, but here is a summary.", res.Analysis.Raw)
	})

	t.Run("EndpointFailure", func(t *testing.T) {
		fake := &fakeCompleter{err: &genai.EndpointError{StatusCode: 500, Message: "upstream error"}}
		an := NewAnalyzer(fake, "gpt-4", 12000, nil)

		res := an.Analyze(context.Background(), "transcript", testMeeting())

		require.False(t, res.Success)
		require.Contains(t, res.Error, "500")
		require.False(t, res.Analysis.Structured())
		require.Empty(t, res.Analysis.Raw)
	})

	t.Run("TranscriptTruncatedToBudget", func(t *testing.T) {
		fake := &fakeCompleter{response: "{}"}
		an := NewAnalyzer(fake, "gpt-4", 50, nil)

		transcript := strings.Repeat("abcdefghij", 20)
		res := an.Analyze(context.Background(), transcript, testMeeting())

		require.True(t, res.Success)
		require.Equal(t, 200, res.TranscriptLength, "length reports the full transcript")
		require.Contains(t, fake.lastReq.Prompt, transcript[:50])
		require.NotContains(t, fake.lastReq.Prompt, transcript[:51])
	})
}

func TestStripCodeFences(t *testing.T) {
	require.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
	require.Equal(t, "plain text", stripCodeFences("  plain text\n"))
}
