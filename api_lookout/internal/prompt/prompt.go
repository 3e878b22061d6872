// Package prompt fills the fixed per-mode templates. Nothing is conditional
// and the model's reply is never validated against the requested format.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"frameworks/api_lookout/internal/evidence"
	"frameworks/api_lookout/internal/intent"
)

// Evidence is whatever the tools produced for the query. Ticket is used in
// ticket mode; Tools and Hits in deep-answer mode.
type Evidence struct {
	Ticket evidence.TicketRecord
	Tools  []string
	Hits   []evidence.SearchHit
}

func Build(mode intent.Mode, query string, ev Evidence) string {
	if mode == intent.ModeTicket {
		return Ticket(query, ev.Ticket)
	}
	return DeepAnswer(query, ev.Tools, ev.Hits)
}

func Ticket(query string, record evidence.TicketRecord) string {
	return fmt.Sprintf(TicketTemplate, query, record.Text())
}

// DeepAnswer embeds the hits as a JSON array, in aggregation order.
func DeepAnswer(query string, tools []string, hits []evidence.SearchHit) string {
	return fmt.Sprintf(DeepAnswerTemplate, strings.Join(tools, ", "), encodeHits(hits), query)
}

func encodeHits(hits []evidence.SearchHit) string {
	if len(hits) == 0 {
		return "[]"
	}
	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
