package prompt

import (
	"strings"
	"testing"

	"frameworks/api_lookout/internal/evidence"
	"frameworks/api_lookout/internal/intent"
)

func TestTicketPrompt(t *testing.T) {
	record := evidence.TicketRecord{TicketID: "T-42", AgentName: "Asha", Country: evidence.Placeholder}
	got := Build(intent.ModeTicket, "Show me my ticket", Evidence{Ticket: record})

	for _, want := range []string{
		"HEADER:", "BODY:", "FOOTER:",
		"User Query:\nShow me my ticket\n",
		"Ticket Data:\nTicket ID: T-42\nAgent Name: Asha\nCountry: N/A\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("ticket prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "TECHNICAL HEADER") {
		t.Fatal("ticket prompt must not contain deep-answer sections")
	}
}

func TestDeepAnswerPrompt(t *testing.T) {
	hits := []evidence.SearchHit{
		{Title: "Go", URL: "https://go.dev", Snippet: "The Go language"},
		{Title: evidence.Placeholder, URL: evidence.Placeholder},
	}
	got := Build(intent.ModeDeepAnswer, "What is 100% CPU?", Evidence{
		Tools: []string{"resource_search", "duckduckgo_search", "web_search"},
		Hits:  hits,
	})

	for _, want := range []string{
		"TECHNICAL HEADER:", "ANALYSIS:", "EXECUTION STEPS:", "CONCLUSION:",
		"Tools consulted: resource_search, duckduckgo_search, web_search\n",
		`"url": "https://go.dev"`,
		"User Query:\nWhat is 100% CPU?\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("deep-answer prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, `"title": "Go"`) > strings.Index(got, `"title": "N/A"`) {
		t.Fatal("hits must keep aggregation order")
	}
}

func TestDeepAnswerPromptWithoutHits(t *testing.T) {
	got := DeepAnswer("q", []string{"web_search"}, nil)
	if !strings.Contains(got, "Insights extracted from search results:\n[]\n") {
		t.Fatalf("expected empty hit list:\n%s", got)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	ev := Evidence{Tools: []string{"a"}, Hits: []evidence.SearchHit{{Title: "x", URL: "y"}}}
	if Build(intent.ModeDeepAnswer, "q", ev) != Build(intent.ModeDeepAnswer, "q", ev) {
		t.Fatal("expected identical prompts for identical input")
	}
}
