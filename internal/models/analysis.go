package models

import (
	"encoding/json"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ProjectEntry is one development project discussed in a meeting. Every
// field is free text exactly as the extraction model reported it; nothing
// is validated against a fixed vocabulary, since the model's phrasing
// varies and rejecting it would lose legitimate detail.
type ProjectEntry struct {
	Name                string   `json:"name,omitempty" mapstructure:"name"`
	Address             string   `json:"address,omitempty" mapstructure:"address"`
	CaseNumber          string   `json:"case_number,omitempty" mapstructure:"case_number"`
	Developer           string   `json:"developer,omitempty" mapstructure:"developer"`
	Applicant           string   `json:"applicant,omitempty" mapstructure:"applicant"`
	ProjectType         string   `json:"project_type,omitempty" mapstructure:"project_type"`
	CurrentStatus       string   `json:"current_status,omitempty" mapstructure:"current_status"`
	VoteOutcome         string   `json:"vote_outcome,omitempty" mapstructure:"vote_outcome"`
	VoteDetails         string   `json:"vote_details,omitempty" mapstructure:"vote_details"`
	KeyConcerns         []string `json:"key_concerns,omitempty" mapstructure:"key_concerns"`
	Conditions          []string `json:"conditions,omitempty" mapstructure:"conditions"`
	Timeline            string   `json:"timeline,omitempty" mapstructure:"timeline"`
	Opposition          string   `json:"opposition,omitempty" mapstructure:"opposition"`
	StaffRecommendation string   `json:"staff_recommendation,omitempty" mapstructure:"staff_recommendation"`
	Acreage             string   `json:"acreage,omitempty" mapstructure:"acreage"`
	PreviousAction      string   `json:"previous_action,omitempty" mapstructure:"previous_action"`
}

// PersonEntry is a commissioner, staff member, developer or citizen who
// took a notable position during the meeting.
type PersonEntry struct {
	Name             string `json:"name,omitempty" mapstructure:"name"`
	Role             string `json:"role,omitempty" mapstructure:"role"`
	NotablePositions string `json:"notable_positions,omitempty" mapstructure:"notable_positions"`
}

// RegulatoryEntry captures an ordinance, fee, or policy change.
type RegulatoryEntry struct {
	Topic         string `json:"topic,omitempty" mapstructure:"topic"`
	Description   string `json:"description,omitempty" mapstructure:"description"`
	Impact        string `json:"impact,omitempty" mapstructure:"impact"`
	EffectiveDate string `json:"effective_date,omitempty" mapstructure:"effective_date"`
}

// MarketEntry captures an observed development trend.
type MarketEntry struct {
	Trend        string `json:"trend,omitempty" mapstructure:"trend"`
	Description  string `json:"description,omitempty" mapstructure:"description"`
	Implications string `json:"implications,omitempty" mapstructure:"implications"`
}

// ExtractionRecord is the structured intelligence derived from a meeting
// transcript. Every field is optional: an absent field means the topic was
// not mentioned, not that extraction failed.
type ExtractionRecord struct {
	Projects          []ProjectEntry    `json:"projects,omitempty" mapstructure:"projects"`
	RegulatoryChanges []RegulatoryEntry `json:"regulatory_changes,omitempty" mapstructure:"regulatory_changes"`
	MarketNotes       []MarketEntry     `json:"market_intelligence,omitempty" mapstructure:"market_intelligence"`
	KeyPeople         []PersonEntry     `json:"key_people,omitempty" mapstructure:"key_people"`
	Highlights        []string          `json:"newsletter_highlights,omitempty" mapstructure:"newsletter_highlights"`
}

// Empty reports whether the record carries no structured data at all.
func (r *ExtractionRecord) Empty() bool {
	if r == nil {
		return true
	}
	return len(r.Projects) == 0 && len(r.RegulatoryChanges) == 0 &&
		len(r.MarketNotes) == 0 && len(r.KeyPeople) == 0 && len(r.Highlights) == 0
}

// Analysis is the tagged result of one extraction call: either a structured
// record, or the model's raw text when its response was not parseable JSON.
// The variant is decided once, by a parse attempt at the endpoint boundary;
// downstream code branches on Structured() and never inspects fields ad hoc.
type Analysis struct {
	Record *ExtractionRecord
	Raw    string
}

// Structured reports whether the extraction produced a parseable record.
func (a Analysis) Structured() bool { return a.Record != nil }

// ParseAnalysis decides the Analysis variant from the extraction model's
// response text. An unparseable response is not an error: the whole text is
// preserved as the raw fallback so nothing the model said is lost.
func ParseAnalysis(text string) Analysis {
	rec, ok := decodeRecord([]byte(text))
	if !ok {
		return Analysis{Raw: text}
	}
	return Analysis{Record: rec}
}

// decodeRecord attempts a lenient decode of JSON text into an
// ExtractionRecord. The generic map is decoded with weakly-typed
// mapstructure rules because the model occasionally emits numbers for
// free-text fields (acreage, vote counts); those coerce to strings instead
// of failing the whole parse.
func decodeRecord(data []byte) (*ExtractionRecord, bool) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	var rec ExtractionRecord
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rec,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, false
	}
	if err := dec.Decode(m); err != nil {
		return nil, false
	}
	return &rec, true
}

// rawEnvelope is the persisted form of the unstructured variant.
type rawEnvelope struct {
	Raw string `json:"raw_analysis"`
}

// MarshalJSON writes the record directly for the structured variant, and a
// {"raw_analysis": ...} envelope otherwise, matching the saved analysis
// file format.
func (a Analysis) MarshalJSON() ([]byte, error) {
	if a.Record != nil {
		return json.Marshal(a.Record)
	}
	return json.Marshal(rawEnvelope{Raw: a.Raw})
}

// UnmarshalJSON restores either variant from a saved analysis file. The
// presence of the raw_analysis key selects the unstructured variant.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if rawMsg, ok := probe["raw_analysis"]; ok {
		var raw string
		if err := json.Unmarshal(rawMsg, &raw); err != nil {
			return err
		}
		*a = Analysis{Raw: raw}
		return nil
	}
	rec, ok := decodeRecord(data)
	if !ok {
		// Tolerate any shape: keep the original JSON as raw text.
		*a = Analysis{Raw: strings.TrimSpace(string(data))}
		return nil
	}
	*a = Analysis{Record: rec}
	return nil
}
