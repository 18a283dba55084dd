package models

// SectionKind names one of the five fixed newsletter sections.
type SectionKind string

const (
	SectionExecutiveSummary   SectionKind = "executive_summary"
	SectionProjectPipeline    SectionKind = "project_pipeline"
	SectionMarketIntelligence SectionKind = "market_intelligence"
	SectionRegulatoryWatch    SectionKind = "regulatory_watch"
	SectionPeoplePolitics     SectionKind = "people_politics"
)

// SectionOrder is the fixed order sections appear in the assembled
// newsletter, regardless of the order they were generated in.
var SectionOrder = []SectionKind{
	SectionExecutiveSummary,
	SectionProjectPipeline,
	SectionMarketIntelligence,
	SectionRegulatoryWatch,
	SectionPeoplePolitics,
}

var sectionTitles = map[SectionKind]string{
	SectionExecutiveSummary:   "Executive Summary",
	SectionProjectPipeline:    "Project Pipeline",
	SectionMarketIntelligence: "Market Intelligence",
	SectionRegulatoryWatch:    "Regulatory Watch",
	SectionPeoplePolitics:     "People & Politics",
}

// Title returns the display heading for the section.
func (k SectionKind) Title() string { return sectionTitles[k] }

// Newsletter maps section kinds to generated prose. A section is present
// only if its prerequisite data existed; absent sections are skipped during
// assembly rather than emitted empty.
type Newsletter struct {
	Sections map[SectionKind]string `json:"sections"`
}

// Has reports whether the section was generated.
func (n *Newsletter) Has(kind SectionKind) bool {
	_, ok := n.Sections[kind]
	return ok
}

// InOrder returns the present sections in the fixed assembly order.
func (n *Newsletter) InOrder() []SectionKind {
	var kinds []SectionKind
	for _, k := range SectionOrder {
		if n.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
