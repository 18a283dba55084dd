package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Pipeline completed
	ExitStageFailure = 1 // A pipeline stage failed (transcription, analysis, composition)
	ExitError        = 2 // Configuration or runtime error
)

// StageFailureError indicates that the pipeline ran but one of its stages
// reported a failure result.
type StageFailureError struct {
	Stage   string
	Message string
}

func (e *StageFailureError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Stage, e.Message)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var stageErr *StageFailureError
		if errors.As(err, &stageErr) {
			os.Exit(ExitStageFailure)
		}
		os.Exit(ExitError)
	}
}
