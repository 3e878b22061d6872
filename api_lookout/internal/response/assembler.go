package response

import (
	"fmt"

	"frameworks/api_lookout/internal/evidence"
)

const (
	TicketHeading      = "🎟️ Ticket Information"
	TicketSummaryLabel = "🧠 Structured Ticket Summary"
	DeepAnswerHeading  = "🔧 Deep Technical Answer"
	AnalysisLabel      = "🧠 Technical Analysis"
	NoResults          = "No results."
)

var hitHeaders = []string{"Title", "URL"}

// Assembler lays fragments out in a fixed order: mode heading, evidence,
// then the completion verbatim. Every returned document is sealed.
type Assembler struct{}

func NewAssembler() *Assembler { return &Assembler{} }

func (a *Assembler) Ticket(record evidence.TicketRecord, completion string) *Document {
	doc := NewDocument()
	_ = doc.Heading(2, TicketHeading)
	_ = doc.Preformatted(ToneData, record.Text())
	_ = doc.Heading(3, TicketSummaryLabel)
	_ = doc.Preformatted(ToneAnswer, completion)
	return doc.Seal()
}

// TicketFailure ends a ticket query before any completion is requested.
func (a *Assembler) TicketFailure(message string) *Document {
	doc := NewDocument()
	_ = doc.Heading(2, TicketHeading)
	_ = doc.Error(message)
	return doc.Seal()
}

func (a *Assembler) DeepAnswer(sections []evidence.Section, completion string) *Document {
	doc := NewDocument()
	_ = doc.Heading(2, DeepAnswerHeading)
	for _, section := range sections {
		_ = doc.Heading(3, SectionTitle(section.Tool))
		if section.Empty() {
			_ = doc.Notice(NoResults)
			continue
		}
		_ = doc.Table(hitHeaders, hitRows(section.Hits))
	}
	_ = doc.Heading(3, AnalysisLabel)
	_ = doc.Preformatted(ToneAnswer, completion)
	return doc.Seal()
}

func SectionTitle(tool string) string {
	return fmt.Sprintf("Results from `%s`", tool)
}

// hitRows links each URL; a missing URL keeps its placeholder text and links
// nowhere.
func hitRows(hits []evidence.SearchHit) [][]Cell {
	rows := make([][]Cell, 0, len(hits))
	for _, hit := range hits {
		link := hit.URL
		if link == "" || link == evidence.Placeholder {
			link = "#"
		}
		rows = append(rows, []Cell{
			{Text: hit.Title},
			{Text: hit.URL, Link: link},
		})
	}
	return rows
}
