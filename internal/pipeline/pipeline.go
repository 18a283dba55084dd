package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/permitrdu/digest/internal/analysis"
	"github.com/permitrdu/digest/internal/artifacts"
	"github.com/permitrdu/digest/internal/models"
	"github.com/permitrdu/digest/internal/newsletter"
	"github.com/permitrdu/digest/internal/speech"
)

// TranscriptionService converts a local media file into a transcript.
type TranscriptionService interface {
	TranscribeMeeting(ctx context.Context, filePath string, mctx models.MeetingContext) *speech.Outcome
}

// MeetingAnalyzer extracts structured intelligence from a transcript.
type MeetingAnalyzer interface {
	Analyze(ctx context.Context, transcript string, mctx models.MeetingContext) *analysis.Result
}

// NewsletterGenerator composes newsletter sections from an analysis.
type NewsletterGenerator interface {
	Generate(ctx context.Context, a models.Analysis, mctx models.MeetingContext) *models.Newsletter
}

// Options tunes a single pipeline run.
type Options struct {
	// SkipNewsletter stops after the analysis stage.
	SkipNewsletter bool
}

// RunResult reports what each stage produced. Stage errors are recorded
// rather than returned so a partial run still surfaces its artifacts and
// cost.
type RunResult struct {
	Meeting    models.MeetingContext
	Transcript *models.TranscriptResult
	Analysis   models.Analysis

	AnalysisPath   string
	NewsletterPath string

	TranscriptionError string
	AnalysisError      string
	NewsletterError    string
}

// Succeeded reports whether every stage that ran completed.
func (r *RunResult) Succeeded() bool {
	return r.TranscriptionError == "" && r.AnalysisError == "" && r.NewsletterError == ""
}

// CostEstimateUSD returns the transcription cost, zero when transcription
// never completed.
func (r *RunResult) CostEstimateUSD() float64 {
	if r.Transcript == nil {
		return 0
	}
	return r.Transcript.CostEstimateUSD
}

// Processor runs the full meeting pipeline: transcription, extraction,
// newsletter composition, artifact persistence.
type Processor struct {
	speech     TranscriptionService
	analyzer   MeetingAnalyzer
	newsletter NewsletterGenerator
	store      *artifacts.Store
	log        *slog.Logger
}

func NewProcessor(sp TranscriptionService, an MeetingAnalyzer, gen NewsletterGenerator, store *artifacts.Store, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{speech: sp, analyzer: an, newsletter: gen, store: store, log: log}
}

// ProcessMeeting runs the stages in order, stopping at the first stage that
// fails. Later stages only run when their input exists.
func (p *Processor) ProcessMeeting(ctx context.Context, audioPath string, mctx models.MeetingContext, opts Options) *RunResult {
	result := &RunResult{Meeting: mctx}

	p.log.Info("processing meeting", "meeting", mctx.Label(), "file", audioPath)

	outcome := p.speech.TranscribeMeeting(ctx, audioPath, mctx)
	if !outcome.Success {
		result.TranscriptionError = outcome.ErrorMessage()
		p.log.Error("transcription failed", "error", result.TranscriptionError)
		return result
	}
	result.Transcript = outcome.Transcript
	p.log.Info("transcription complete",
		"chars", len(outcome.Transcript.Text),
		"cost_usd", outcome.Transcript.CostEstimateUSD)

	ar := p.analyzer.Analyze(ctx, outcome.Transcript.Text, mctx)
	if !ar.Success {
		result.AnalysisError = ar.Error
		p.log.Error("analysis failed", "error", ar.Error)
		return result
	}
	result.Analysis = ar.Analysis

	path, err := p.store.SaveAnalysis(artifacts.SavedAnalysis{
		MeetingInfo:      mctx,
		Analysis:         ar.Analysis,
		TranscriptLength: ar.TranscriptLength,
		AnalyzedAt:       ar.AnalyzedAt,
	})
	if err != nil {
		result.AnalysisError = err.Error()
		p.log.Error("saving analysis failed", "error", err)
		return result
	}
	result.AnalysisPath = path

	if opts.SkipNewsletter {
		return result
	}

	nl := p.newsletter.Generate(ctx, ar.Analysis, mctx)
	markdown := newsletter.Assemble(nl, mctx, time.Now())

	nlPath, err := p.store.SaveNewsletter(markdown, mctx)
	if err != nil {
		result.NewsletterError = err.Error()
		p.log.Error("saving newsletter failed", "error", err)
		return result
	}
	result.NewsletterPath = nlPath

	p.log.Info("pipeline complete", "analysis", path, "newsletter", nlPath)
	return result
}
