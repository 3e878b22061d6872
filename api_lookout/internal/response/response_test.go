package response

import (
	"errors"
	"io"
	"strings"
	"testing"

	"frameworks/api_lookout/internal/evidence"

	"github.com/charmbracelet/lipgloss"
)

func kinds(doc *Document) []Kind {
	var out []Kind
	for _, f := range doc.Fragments() {
		out = append(out, f.Kind)
	}
	return out
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSealedDocumentRejectsAppend(t *testing.T) {
	doc := NewDocument()
	if err := doc.Notice("first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc.Seal()
	if err := doc.Notice("second"); !errors.Is(err, ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
	if len(doc.Fragments()) != 1 {
		t.Fatalf("expected one fragment, got %d", len(doc.Fragments()))
	}
}

func TestTicketLayout(t *testing.T) {
	record := evidence.TicketRecord{TicketID: "T-1001", AgentName: "Asha", Country: "India"}
	doc := NewAssembler().Ticket(record, "HEADER:\n- Login issue")

	want := []Kind{KindHeading, KindPreformatted, KindHeading, KindPreformatted}
	if got := kinds(doc); !equalKinds(got, want) {
		t.Fatalf("unexpected layout %v", got)
	}
	frags := doc.Fragments()
	if frags[0].Text != TicketHeading || frags[2].Text != TicketSummaryLabel {
		t.Fatalf("unexpected headings %q / %q", frags[0].Text, frags[2].Text)
	}
	if frags[1].Text != "Ticket ID: T-1001\nAgent Name: Asha\nCountry: India" {
		t.Fatalf("unexpected ticket block %q", frags[1].Text)
	}
	if frags[3].Text != "HEADER:\n- Login issue" {
		t.Fatalf("completion not verbatim: %q", frags[3].Text)
	}
	if !doc.Sealed() {
		t.Fatal("expected sealed document")
	}
}

func TestTicketFailureHasOneError(t *testing.T) {
	doc := NewAssembler().TicketFailure("no ticket data found")
	if got := doc.Errors(); len(got) != 1 || got[0] != "no ticket data found" {
		t.Fatalf("unexpected errors %v", got)
	}
	want := []Kind{KindHeading, KindError}
	if got := kinds(doc); !equalKinds(got, want) {
		t.Fatalf("unexpected layout %v", got)
	}
}

func deepSections() []evidence.Section {
	return []evidence.Section{
		{Tool: "resource_search", Hits: []evidence.SearchHit{{Title: "Reset VPN", URL: "https://kb.example/vpn", Snippet: "steps"}}},
		{Tool: "duckduckgo_search"},
		{Tool: "web_search", Hits: []evidence.SearchHit{{Title: "N/A", URL: "N/A"}}},
	}
}

func TestDeepAnswerLayout(t *testing.T) {
	doc := NewAssembler().DeepAnswer(deepSections(), "TECHNICAL HEADER:")

	want := []Kind{
		KindHeading,
		KindHeading, KindTable,
		KindHeading, KindNotice,
		KindHeading, KindTable,
		KindHeading, KindPreformatted,
	}
	if got := kinds(doc); !equalKinds(got, want) {
		t.Fatalf("unexpected layout %v", got)
	}
	frags := doc.Fragments()
	if frags[1].Text != "Results from `resource_search`" || frags[3].Text != "Results from `duckduckgo_search`" || frags[5].Text != "Results from `web_search`" {
		t.Fatal("section headings out of order")
	}
	if frags[4].Text != NoResults {
		t.Fatalf("unexpected notice %q", frags[4].Text)
	}
	if link := frags[6].Rows[0][1]; link.Text != "N/A" || link.Link != "#" {
		t.Fatalf("placeholder URL should link nowhere, got %+v", link)
	}
	if link := frags[2].Rows[0][1]; link.Link != "https://kb.example/vpn" {
		t.Fatalf("unexpected link %+v", link)
	}
}

func TestHTMLRendering(t *testing.T) {
	out, err := HTML(NewAssembler().DeepAnswer(deepSections(), "use <sudo> & restart"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<h2 class="text-xl text-green-400 border-b border-green-500 pb-2 mb-4">🔧 Deep Technical Answer</h2>`,
		"<th>Title</th><th>URL</th>",
		`<a href="https://kb.example/vpn" target="_blank" class="text-cyan-400">https://kb.example/vpn</a>`,
		`<a href="#" target="_blank" class="text-cyan-400">N/A</a>`,
		`<p class="text-gray-500">No results.</p>`,
		"use &lt;sudo&gt; &amp; restart",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in:\n%s", want, html)
		}
	}
	if strings.Index(html, "resource_search") > strings.Index(html, "web_search") {
		t.Error("sections rendered out of order")
	}
}

func TestHTMLSanitizesLinks(t *testing.T) {
	doc := NewAssembler().DeepAnswer([]evidence.Section{
		{Tool: "web_search", Hits: []evidence.SearchHit{{Title: "<b>x</b>", URL: "javascript:alert(1)"}}},
	}, "")
	out, err := HTML(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), `href="javascript:`) {
		t.Fatalf("unsafe link rendered: %s", out)
	}
	if !strings.Contains(string(out), "&lt;b&gt;x&lt;/b&gt;") {
		t.Fatalf("title not escaped: %s", out)
	}
}

func TestHTMLError(t *testing.T) {
	out, err := HTML(NewAssembler().TicketFailure("Tool connection failed: refused"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `<p class="text-red-500">Tool connection failed: refused</p>`) {
		t.Fatalf("unexpected html: %s", out)
	}
}

func TestTextRendering(t *testing.T) {
	renderer := NewTextRenderer(lipgloss.NewRenderer(io.Discard))
	out := renderer.Render(NewAssembler().DeepAnswer(deepSections(), "final advice"))

	for _, want := range []string{"Deep Technical Answer", "Title", "URL", "Reset VPN", "https://kb.example/vpn", NoResults, "final advice"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "Reset VPN") > strings.Index(out, NoResults) {
		t.Error("sections rendered out of order")
	}
}

func TestTextRenderingKeepsCompletionVerbatim(t *testing.T) {
	renderer := NewTextRenderer(lipgloss.NewRenderer(io.Discard))
	completion := "Steps:\n\t1. restart\n\t2. check logs\nlonger closing line here"
	out := renderer.Render(NewAssembler().DeepAnswer(deepSections(), completion))

	if !strings.HasSuffix(out, "\n\n"+completion+"\n") {
		t.Fatalf("completion not rendered verbatim:\n%q", out)
	}
}
