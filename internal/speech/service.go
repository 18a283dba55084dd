// Package speech turns a local media file into a meeting transcript. The
// service never returns an error to its caller: every call produces an
// Outcome whose Success flag and typed Err field report what happened, so
// a multi-stage run can name exactly which stage failed.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/permitrdu/digest/internal/genai"
	"github.com/permitrdu/digest/internal/models"
)

const (
	// MaxUploadBytes is the fixed ceiling accepted by the speech-to-text
	// endpoint. Larger files fail fast without a network call; chunking is
	// a documented gap, not implemented here.
	MaxUploadBytes = 25 * 1024 * 1024

	// PerMinuteRateUSD is the linear cost approximation for transcription.
	PerMinuteRateUSD = 0.006

	// DomainPrompt biases recognition toward planning and zoning
	// vocabulary.
	DomainPrompt = "This is a Triangle area planning commission meeting discussing development projects, zoning, and permits."
)

// ErrFileNotFound reports that the media file to transcribe is missing.
var ErrFileNotFound = errors.New("media file not found")

// FileTooLargeError reports a file over the upload ceiling, with the actual
// size and the remedial suggestion surfaced to the user.
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large (%.1fMB): maximum size is %dMB; compress the audio or split it into chunks",
		float64(e.Size)/(1024*1024), e.Limit/(1024*1024))
}

// Outcome is the result object for one transcription. On success,
// Transcript.Text is non-empty; on failure Transcript is nil and Err holds
// the typed cause.
type Outcome struct {
	Success     bool
	Transcript  *models.TranscriptResult
	Meeting     models.MeetingContext
	Err         error
	ProcessedAt time.Time
}

// ErrorMessage returns the failure cause as display text, or "".
func (o *Outcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Service runs the transcription stage: precondition checks, the endpoint
// call, the cost estimate, and the enhancement pass.
type Service struct {
	transcriber genai.Transcriber
	enhancer    Enhancer
	model       string
	rate        float64
	log         *slog.Logger
}

// NewService creates a Service. enhancer may be nil, in which case the
// pass-through enhancer is used.
func NewService(transcriber genai.Transcriber, enhancer Enhancer, model string, log *slog.Logger) *Service {
	if enhancer == nil {
		enhancer = PassthroughEnhancer{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		transcriber: transcriber,
		enhancer:    enhancer,
		model:       model,
		rate:        PerMinuteRateUSD,
		log:         log,
	}
}

// TranscribeMeeting transcribes the file at filePath for the given meeting.
// The file must exist and be under the size ceiling; violations fail
// immediately, before any network call.
func (s *Service) TranscribeMeeting(ctx context.Context, filePath string, mctx models.MeetingContext) *Outcome {
	fail := func(err error) *Outcome {
		return &Outcome{Success: false, Meeting: mctx, Err: err, ProcessedAt: time.Now()}
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fail(fmt.Errorf("%w: %s", ErrFileNotFound, filePath))
	}
	if info.Size() > MaxUploadBytes {
		return fail(&FileTooLargeError{Size: info.Size(), Limit: MaxUploadBytes})
	}

	s.log.Info("transcribing meeting",
		"file", filePath, "size_bytes", info.Size(), "meeting", mctx.Label())

	resp, err := s.transcriber.Transcribe(ctx, genai.TranscribeRequest{
		FilePath: filePath,
		Model:    s.model,
		Prompt:   DomainPrompt,
	})
	if err != nil {
		s.log.Warn("transcription endpoint failed", "error", err)
		return fail(err)
	}

	text, err := s.enhancer.Enhance(ctx, resp.Text, mctx)
	if err != nil {
		// Enhancement is best-effort; the raw transcript always survives.
		s.log.Warn("transcript enhancement failed, keeping raw transcript", "error", err)
		text = resp.Text
	}

	result := &models.TranscriptResult{
		Text:            text,
		Language:        resp.Language,
		DurationSeconds: resp.Duration,
		CostEstimateUSD: s.costEstimate(resp.Duration),
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, models.TranscriptSegment{
			StartSeconds: seg.Start,
			EndSeconds:   seg.End,
			Text:         seg.Text,
		})
	}

	s.log.Info("transcription complete",
		"text_length", len(result.Text),
		"duration_seconds", result.DurationSeconds,
		"cost_estimate_usd", result.CostEstimateUSD)

	return &Outcome{
		Success:     true,
		Transcript:  result,
		Meeting:     mctx,
		ProcessedAt: time.Now(),
	}
}

// costEstimate is the linear per-minute approximation; there is no metering
// of the actual endpoint charge.
func (s *Service) costEstimate(durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return durationSeconds / 60 * s.rate
}
