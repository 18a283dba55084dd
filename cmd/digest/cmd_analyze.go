package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permitrdu/digest/internal/artifacts"
	"github.com/permitrdu/digest/internal/models"
)

var (
	analyzeJurisdiction string
	analyzeDate         string
	analyzeMeetingType  string
	analyzeOutputDir    string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <transcript-file>",
		Short: "Extract development intelligence from a transcript",
		Long: `Run the extraction stage on an existing transcript text file and save
the analysis JSON.

Useful for re-running extraction without paying for transcription again.`,
		Args: cobra.ExactArgs(1),
		RunE: analyzeCommandE,
	}

	cmd.Flags().StringVar(&analyzeJurisdiction, "jurisdiction", "Raleigh", "Meeting jurisdiction")
	cmd.Flags().StringVar(&analyzeDate, "date", "", "Meeting date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&analyzeMeetingType, "meeting-type", "Planning Commission", "Meeting type")
	cmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", "", "Directory for the analysis artifact")

	return cmd
}

func analyzeCommandE(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices(analyzeOutputDir)
	if err != nil {
		return err
	}

	transcript, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	mctx := models.MeetingContext{
		Jurisdiction: analyzeJurisdiction,
		Date:         analyzeDate,
		MeetingType:  analyzeMeetingType,
	}

	result := svcs.analyzer.Analyze(cmd.Context(), string(transcript), mctx)
	if !result.Success {
		return &StageFailureError{Stage: "analysis", Message: result.Error}
	}

	path, err := svcs.store.SaveAnalysis(artifacts.SavedAnalysis{
		MeetingInfo:      mctx,
		Analysis:         result.Analysis,
		TranscriptLength: result.TranscriptLength,
		AnalyzedAt:       result.AnalyzedAt,
	})
	if err != nil {
		return err
	}

	if !result.Analysis.Structured() {
		fmt.Println("Note: analysis did not parse as structured data; raw text was saved.")
	}
	fmt.Printf("Analysis saved: %s\n", path)
	return nil
}
