package newsletter

import (
	"fmt"
	"strings"
	"time"

	"github.com/permitrdu/digest/internal/models"
)

// Assemble renders the final markdown document. Sections always appear in the
// canonical order regardless of the order they were composed in.
func Assemble(n *models.Newsletter, mctx models.MeetingContext, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Triangle Development Digest\n\n")
	fmt.Fprintf(&b, "## %s %s - %s\n\n", mctx.Jurisdiction, mctx.MeetingType, mctx.Date)

	for _, kind := range n.InOrder() {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n---\n\n", kind.Title(), n.Sections[kind])
	}

	fmt.Fprintf(&b, "*Generated by PermitRDU AI on %s*\n", generatedAt.Format("January 2, 2006 at 3:04 PM"))

	return b.String()
}
