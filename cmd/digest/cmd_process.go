package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permitrdu/digest/internal/models"
	"github.com/permitrdu/digest/internal/pipeline"
)

var (
	processJurisdiction string
	processDate         string
	processMeetingType  string
	processDescription  string
	processSkipNews     bool
	processOutputDir    string
)

func newProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Run the full pipeline on a downloaded meeting recording",
		Long: `Run transcription, analysis, and newsletter composition on a local
meeting recording.

The analysis JSON and newsletter markdown are written to the output
directory. A stage failure stops the pipeline; artifacts from completed
stages are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: processCommandE,
	}

	cmd.Flags().StringVar(&processJurisdiction, "jurisdiction", "Raleigh", "Meeting jurisdiction")
	cmd.Flags().StringVar(&processDate, "date", "", "Meeting date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&processMeetingType, "meeting-type", "Planning Commission", "Meeting type")
	cmd.Flags().StringVar(&processDescription, "description", "", "Optional meeting description")
	cmd.Flags().BoolVar(&processSkipNews, "skip-newsletter", false, "Stop after the analysis stage")
	cmd.Flags().StringVarP(&processOutputDir, "output-dir", "o", "", "Directory for analysis and newsletter artifacts")

	return cmd
}

func processCommandE(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices(processOutputDir)
	if err != nil {
		return err
	}

	mctx := models.MeetingContext{
		Jurisdiction: processJurisdiction,
		Date:         processDate,
		MeetingType:  processMeetingType,
		Description:  processDescription,
	}

	processor := pipeline.NewProcessor(svcs.speech, svcs.analyzer, svcs.generator, svcs.store, nil)
	result := processor.ProcessMeeting(cmd.Context(), args[0], mctx, pipeline.Options{
		SkipNewsletter: processSkipNews,
	})

	reportRun(result)

	switch {
	case result.TranscriptionError != "":
		return &StageFailureError{Stage: "transcription", Message: result.TranscriptionError}
	case result.AnalysisError != "":
		return &StageFailureError{Stage: "analysis", Message: result.AnalysisError}
	case result.NewsletterError != "":
		return &StageFailureError{Stage: "newsletter", Message: result.NewsletterError}
	}

	fmt.Println("Pipeline complete.")
	return nil
}
