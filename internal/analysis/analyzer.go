// Package analysis runs the extraction stage: one chat-completion call
// over the transcript, with the response parsed into a structured record
// when possible and preserved as raw text when not. A parse failure is a
// reduced-fidelity result, not an error: Success reflects only whether
// the endpoint call itself worked.
package analysis

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/permitrdu/digest/internal/genai"
	"github.com/permitrdu/digest/internal/models"
)

// extractionTemperature is near zero to favor consistent extraction over
// creative phrasing.
const extractionTemperature = 0.1

// Result is the outcome of one extraction call.
type Result struct {
	Success          bool
	Analysis         models.Analysis
	Meeting          models.MeetingContext
	Error            string
	TranscriptLength int
	AnalyzedAt       time.Time
}

// Analyzer builds the extraction prompt and interprets the response.
type Analyzer struct {
	completer  genai.Completer
	model      string
	charBudget int
	log        *slog.Logger
}

// NewAnalyzer creates an Analyzer. charBudget caps how many transcript
// characters are embedded in the prompt, respecting the model's context
// window.
func NewAnalyzer(completer genai.Completer, model string, charBudget int, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		completer:  completer,
		model:      model,
		charBudget: charBudget,
		log:        log,
	}
}

// Analyze extracts development intelligence from the transcript. Endpoint
// failure yields Success=false; an unparseable response yields Success=true
// with the unstructured Analysis variant. Malformed responses are not
// retried and field names are not coerced.
func (a *Analyzer) Analyze(ctx context.Context, transcript string, mctx models.MeetingContext) *Result {
	res := &Result{
		Meeting:          mctx,
		TranscriptLength: len(transcript),
		AnalyzedAt:       time.Now(),
	}

	prompt := buildPrompt(truncate(transcript, a.charBudget),
		mctx.Jurisdiction, mctx.Date, mctx.MeetingType)

	a.log.Info("analyzing transcript",
		"meeting", mctx.Label(),
		"transcript_length", len(transcript),
		"prompt_length", len(prompt))

	text, err := a.completer.Complete(ctx, genai.CompletionRequest{
		Model:       a.model,
		System:      systemPrompt,
		Prompt:      prompt,
		Temperature: extractionTemperature,
	})
	if err != nil {
		a.log.Warn("analysis endpoint failed", "error", err)
		res.Error = err.Error()
		return res
	}

	res.Success = true
	res.Analysis = models.ParseAnalysis(stripCodeFences(text))

	if res.Analysis.Structured() {
		a.log.Info("structured analysis extracted",
			"projects", len(res.Analysis.Record.Projects),
			"key_people", len(res.Analysis.Record.KeyPeople),
			"highlights", len(res.Analysis.Record.Highlights))
	} else {
		a.log.Info("analysis response was not parseable JSON, keeping raw text",
			"length", len(res.Analysis.Raw))
	}
	return res
}

// truncate caps s at max characters to fit the model's context window.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}

// stripCodeFences removes a surrounding ```json fence if the model wrapped
// its response in one.
func stripCodeFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
