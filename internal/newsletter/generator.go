package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/permitrdu/digest/internal/genai"
	"github.com/permitrdu/digest/internal/models"
)

const compositionTemperature = 0.3

// Generator composes newsletter sections from a meeting analysis.
type Generator struct {
	completer genai.Completer
	model     string
	workers   int
	log       *slog.Logger
}

func NewGenerator(completer genai.Completer, model string, workers int, log *slog.Logger) *Generator {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		completer: completer,
		model:     model,
		workers:   workers,
		log:       log,
	}
}

// Generate composes every applicable section concurrently and returns the
// assembled newsletter. A section whose composition fails is replaced with an
// inline placeholder; the other sections are unaffected.
func (g *Generator) Generate(ctx context.Context, a models.Analysis, mctx models.MeetingContext) *models.Newsletter {
	kinds := sectionsFor(a)

	var mu sync.Mutex
	sections := make(map[models.SectionKind]string, len(kinds))

	var eg errgroup.Group
	eg.SetLimit(g.workers)

	for _, kind := range kinds {
		eg.Go(func() error {
			content, err := g.ComposeSection(ctx, kind, a, mctx)
			if err != nil {
				g.log.Error("section composition failed", "section", string(kind), "error", err)
				content = fmt.Sprintf("Error generating %s content: %v", strings.ToLower(kind.Title()), err)
			}
			mu.Lock()
			sections[kind] = content
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	return &models.Newsletter{Sections: sections}
}

// ComposeSection renders a single section. The prompt depends only on the
// analysis and meeting context, so repeated calls with the same inputs send
// the same request.
func (g *Generator) ComposeSection(ctx context.Context, kind models.SectionKind, a models.Analysis, mctx models.MeetingContext) (string, error) {
	text, err := g.completer.Complete(ctx, genai.CompletionRequest{
		Model:       g.model,
		System:      sectionSystemPrompts[kind],
		Prompt:      buildSectionPrompt(kind, a, mctx),
		Temperature: compositionTemperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// sectionsFor applies the gating rules: project pipeline only when projects
// were extracted, people & politics only when key people were, the rest always.
func sectionsFor(a models.Analysis) []models.SectionKind {
	kinds := make([]models.SectionKind, 0, len(models.SectionOrder))
	for _, kind := range models.SectionOrder {
		switch kind {
		case models.SectionProjectPipeline:
			if len(projectsOf(a)) == 0 {
				continue
			}
		case models.SectionPeoplePolitics:
			if len(peopleOf(a)) == 0 {
				continue
			}
		}
		kinds = append(kinds, kind)
	}
	return kinds
}
