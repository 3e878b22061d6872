// Package evidence turns raw tool payloads into search hits and ticket
// records and groups them per tool.
package evidence

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"frameworks/api_lookout/internal/tool"
)

// Placeholder stands in for a missing title, URL or ticket field.
const Placeholder = "N/A"

type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// TicketRecord keeps only the three fields shown to users; anything else the
// tool returns is dropped.
type TicketRecord struct {
	TicketID  string `json:"ticket_id"`
	AgentName string `json:"agent_name"`
	Country   string `json:"country"`
}

// Text is the plain-text block embedded in prompts and rendered verbatim.
func (r TicketRecord) Text() string {
	return fmt.Sprintf("Ticket ID: %s\nAgent Name: %s\nCountry: %s", r.TicketID, r.AgentName, r.Country)
}

// Section is one tool's contribution to the answer. Empty Hits render as
// "No results.", whether the tool failed or found nothing.
type Section struct {
	Tool string
	Hits []SearchHit
}

func (s Section) Empty() bool { return len(s.Hits) == 0 }

// NormalizeTicket extracts a TicketRecord from a get_ticket_info payload.
func NormalizeTicket(payload any) TicketRecord {
	obj, _ := payload.(map[string]any)
	return TicketRecord{
		TicketID:  field(obj, "ticket_id", Placeholder),
		AgentName: field(obj, "agent_name", Placeholder),
		Country:   field(obj, "country", Placeholder),
	}
}

// ExtractHits reads the "results" list of a search payload. Entries that are
// not objects are skipped; a payload without a results list has no hits.
func ExtractHits(payload any) []SearchHit {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	entries, ok := obj["results"].([]any)
	if !ok {
		return nil
	}
	hits := make([]SearchHit, 0, len(entries))
	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		hits = append(hits, SearchHit{
			Title:   field(item, "title", Placeholder),
			URL:     field(item, "url", Placeholder),
			Snippet: field(item, "snippet", ""),
		})
	}
	return hits
}

// Aggregate builds one section per outcome, in call order, and the combined
// hit list across tools. No deduplication or ranking is applied.
func Aggregate(outcomes []tool.Outcome) ([]Section, []SearchHit) {
	sections := make([]Section, 0, len(outcomes))
	var combined []SearchHit
	for _, outcome := range outcomes {
		section := Section{Tool: outcome.Call.Name}
		if payload, ok := outcome.Result.Payload(); ok {
			section.Hits = ExtractHits(payload)
		}
		combined = append(combined, section.Hits...)
		sections = append(sections, section)
	}
	return sections, combined
}

// field coerces obj[key] to text. Missing and null values yield fallback.
func field(obj map[string]any, key, fallback string) string {
	value, ok := obj[key]
	if !ok || value == nil {
		return fallback
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fallback
		}
		return string(data)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
