package models

import "fmt"

// MeetingContext identifies the meeting a piece of media or analysis belongs
// to. All fields are free text; Date is YYYY-MM-DD by convention.
type MeetingContext struct {
	Jurisdiction string `json:"jurisdiction"`
	Date         string `json:"date"`
	MeetingType  string `json:"type"`
	Description  string `json:"description,omitempty"`
}

// Label returns a short human-readable identifier, e.g.
// "Raleigh Planning Commission - 2025-08-12".
func (m MeetingContext) Label() string {
	return fmt.Sprintf("%s %s - %s", m.Jurisdiction, m.MeetingType, m.Date)
}
