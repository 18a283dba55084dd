package speech

import (
	"context"

	"github.com/permitrdu/digest/internal/models"
)

// Enhancer reorganizes a raw transcript into labeled speaker sections. The
// pipeline always runs this stage so a real implementation can be
// substituted without changing the pipeline's shape.
type Enhancer interface {
	Enhance(ctx context.Context, transcript string, mctx models.MeetingContext) (string, error)
}

// PassthroughEnhancer returns the transcript unchanged. It is the only
// implementation today; speaker identification is reserved for a second
// model call that has not been built.
type PassthroughEnhancer struct{}

// Enhance returns transcript as-is.
func (PassthroughEnhancer) Enhance(_ context.Context, transcript string, _ models.MeetingContext) (string, error) {
	return transcript, nil
}
