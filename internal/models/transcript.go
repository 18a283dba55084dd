package models

// TranscriptSegment is a single timestamped span of the transcript, as
// reported by the speech-to-text endpoint's verbose response format.
type TranscriptSegment struct {
	StartSeconds float64 `json:"start"`
	EndSeconds   float64 `json:"end"`
	Text         string  `json:"text"`
}

// TranscriptResult is the output of the transcription stage. Text is the
// only field guaranteed non-empty on success; language, duration and
// segments are present only when the endpoint reports them.
type TranscriptResult struct {
	Text            string              `json:"text"`
	Language        string              `json:"language,omitempty"`
	DurationSeconds float64             `json:"duration,omitempty"`
	Segments        []TranscriptSegment `json:"segments,omitempty"`
	CostEstimateUSD float64             `json:"cost_estimate"`
}
