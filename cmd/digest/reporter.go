package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/permitrdu/digest/internal/artifacts"
	"github.com/permitrdu/digest/internal/pipeline"
)

// reportRun prints a summary of a pipeline run, including the cost of any
// completed transcription even when a later stage failed.
func reportRun(r *pipeline.RunResult) {
	fmt.Printf("\nMeeting: %s\n", r.Meeting.Label())

	if r.Transcript != nil {
		fmt.Printf("Transcript: %d characters, %s of audio (est. $%.2f)\n",
			len(r.Transcript.Text),
			formatDuration(r.Transcript.DurationSeconds),
			r.CostEstimateUSD())
	}
	if r.TranscriptionError != "" {
		fmt.Printf("Transcription failed: %s\n", r.TranscriptionError)
		return
	}

	if r.AnalysisError != "" {
		fmt.Printf("Analysis failed: %s\n", r.AnalysisError)
		return
	}
	fmt.Printf("Analysis: %s\n", r.AnalysisPath)
	if rec := r.Analysis.Record; rec != nil {
		fmt.Printf("  %d projects, %d regulatory changes, %d key people\n",
			len(rec.Projects), len(rec.RegulatoryChanges), len(rec.KeyPeople))
	} else {
		fmt.Println("  unstructured analysis (raw text saved)")
	}

	if r.NewsletterError != "" {
		fmt.Printf("Newsletter failed: %s\n", r.NewsletterError)
		return
	}
	if r.NewsletterPath != "" {
		fmt.Printf("Newsletter: %s\n", r.NewsletterPath)
	}
}

// renderAnalysis prints a saved analysis as aligned terminal output.
func renderAnalysis(w io.Writer, saved *artifacts.SavedAnalysis) {
	fmt.Fprintf(w, "%s\n", saved.MeetingInfo.Label())
	fmt.Fprintf(w, "Analyzed %s from %d transcript characters\n\n",
		saved.AnalyzedAt.Format("2006-01-02 15:04"), saved.TranscriptLength)

	rec := saved.Analysis.Record
	if rec == nil {
		fmt.Fprintln(w, "Unstructured analysis:")
		fmt.Fprintln(w, saved.Analysis.Raw)
		return
	}

	if len(rec.Projects) > 0 {
		fmt.Fprintln(w, "Projects:")
		for _, p := range rec.Projects {
			fmt.Fprintf(w, "  %s %s %s\n",
				pad(p.Name, 36), pad(p.CurrentStatus, 20), p.VoteOutcome)
			if p.Developer != "" || p.Address != "" {
				fmt.Fprintf(w, "  %s %s\n", pad("", 4), strings.TrimSpace(p.Developer+"  "+p.Address))
			}
		}
		fmt.Fprintln(w)
	}

	if len(rec.RegulatoryChanges) > 0 {
		fmt.Fprintln(w, "Regulatory changes:")
		for _, rc := range rec.RegulatoryChanges {
			fmt.Fprintf(w, "  %s %s\n", pad(rc.Topic, 36), rc.Impact)
		}
		fmt.Fprintln(w)
	}

	if len(rec.KeyPeople) > 0 {
		fmt.Fprintln(w, "Key people:")
		for _, p := range rec.KeyPeople {
			fmt.Fprintf(w, "  %s %s\n", pad(p.Name, 36), p.Role)
		}
		fmt.Fprintln(w)
	}

	if len(rec.Highlights) > 0 {
		fmt.Fprintln(w, "Highlights:")
		for _, h := range rec.Highlights {
			fmt.Fprintf(w, "  - %s\n", h)
		}
	}
}

// pad right-pads s to the given display width, truncating long values.
// Display width, not byte length, so wide runes stay aligned.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// formatDuration renders a duration in seconds as "1h02m" or "42m07s".
func formatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
