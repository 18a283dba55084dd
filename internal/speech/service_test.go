package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/permitrdu/digest/internal/genai"
	"github.com/permitrdu/digest/internal/models"
)

type fakeTranscriber struct {
	calls    int
	lastReq  genai.TranscribeRequest
	response *genai.WhisperResponse
	err      error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, req genai.TranscribeRequest) (*genai.WhisperResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type failingEnhancer struct{}

func (failingEnhancer) Enhance(context.Context, string, models.MeetingContext) (string, error) {
	return "", errors.New("enhancement unavailable")
}

func testMeeting() models.MeetingContext {
	return models.MeetingContext{
		Jurisdiction: "Raleigh",
		Date:         "2025-08-12",
		MeetingType:  "Planning Commission",
	}
}

func writeAudioFile(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.mp3")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func TestTranscribeMeeting(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fake := &fakeTranscriber{response: &genai.WhisperResponse{
			Text:     "The commission approved the rezoning.",
			Language: "english",
			Duration: 600,
			Segments: []genai.WhisperSegment{
				{Start: 0, End: 4.5, Text: "The commission approved"},
				{Start: 4.5, End: 7, Text: "the rezoning."},
			},
		}}
		svc := NewService(fake, nil, "whisper-1", nil)

		outcome := svc.TranscribeMeeting(context.Background(), writeAudioFile(t, 1024), testMeeting())

		require.True(t, outcome.Success)
		require.NoError(t, outcome.Err)
		require.Equal(t, "The commission approved the rezoning.", outcome.Transcript.Text)
		require.Len(t, outcome.Transcript.Segments, 2)
		require.InDelta(t, 0.06, outcome.Transcript.CostEstimateUSD, 1e-9)
		require.Equal(t, "whisper-1", fake.lastReq.Model)
		require.Equal(t, DomainPrompt, fake.lastReq.Prompt)
	})

	t.Run("MissingFile", func(t *testing.T) {
		fake := &fakeTranscriber{}
		svc := NewService(fake, nil, "whisper-1", nil)

		outcome := svc.TranscribeMeeting(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"), testMeeting())

		require.False(t, outcome.Success)
		require.Nil(t, outcome.Transcript)
		require.ErrorIs(t, outcome.Err, ErrFileNotFound)
		require.Zero(t, fake.calls, "no endpoint call for a missing file")
	})

	t.Run("FileOverSizeCeiling", func(t *testing.T) {
		fake := &fakeTranscriber{}
		svc := NewService(fake, nil, "whisper-1", nil)

		outcome := svc.TranscribeMeeting(context.Background(), writeAudioFile(t, MaxUploadBytes+1), testMeeting())

		require.False(t, outcome.Success)
		var tooLarge *FileTooLargeError
		require.ErrorAs(t, outcome.Err, &tooLarge)
		require.Equal(t, int64(MaxUploadBytes+1), tooLarge.Size)
		require.Contains(t, outcome.ErrorMessage(), "compress")
		require.Zero(t, fake.calls, "no endpoint call for an oversized file")
	})

	t.Run("EndpointFailure", func(t *testing.T) {
		endpointErr := &genai.EndpointError{StatusCode: 429, Message: "rate limited"}
		fake := &fakeTranscriber{err: endpointErr}
		svc := NewService(fake, nil, "whisper-1", nil)

		outcome := svc.TranscribeMeeting(context.Background(), writeAudioFile(t, 1024), testMeeting())

		require.False(t, outcome.Success)
		var epErr *genai.EndpointError
		require.ErrorAs(t, outcome.Err, &epErr)
		require.Equal(t, 429, epErr.StatusCode)
	})

	t.Run("EnhancementFailureKeepsRawTranscript", func(t *testing.T) {
		fake := &fakeTranscriber{response: &genai.WhisperResponse{
			Text:     "raw transcript text",
			Duration: 60,
		}}
		svc := NewService(fake, failingEnhancer{}, "whisper-1", nil)

		outcome := svc.TranscribeMeeting(context.Background(), writeAudioFile(t, 1024), testMeeting())

		require.True(t, outcome.Success)
		require.Equal(t, "raw transcript text", outcome.Transcript.Text)
	})

	t.Run("ZeroDurationCostsNothing", func(t *testing.T) {
		fake := &fakeTranscriber{response: &genai.WhisperResponse{Text: "short"}}
		svc := NewService(fake, nil, "whisper-1", nil)

		outcome := svc.TranscribeMeeting(context.Background(), writeAudioFile(t, 16), testMeeting())

		require.True(t, outcome.Success)
		require.Zero(t, outcome.Transcript.CostEstimateUSD)
	})
}
