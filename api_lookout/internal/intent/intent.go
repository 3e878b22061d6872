// Package intent routes a query to ticket lookup or deep technical answer.
package intent

import "strings"

type Mode string

const (
	ModeTicket     Mode = "ticket"
	ModeDeepAnswer Mode = "deep_answer"
)

// DefaultKeywords trigger ticket mode when any appears as a substring of the
// lower-cased query.
var DefaultKeywords = []string{"ticket", "raise ticket", "my ticket status"}

// Classifier matches queries against a fixed keyword set. It is immutable
// and safe for concurrent use.
type Classifier struct {
	keywords []string
}

// NewClassifier lower-cases and trims keywords; an empty set falls back to
// DefaultKeywords.
func NewClassifier(keywords []string) *Classifier {
	var normalized []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	if len(normalized) == 0 {
		normalized = append(normalized, DefaultKeywords...)
	}
	return &Classifier{keywords: normalized}
}

func (c *Classifier) Classify(query string) Mode {
	lowered := strings.ToLower(query)
	for _, kw := range c.keywords {
		if strings.Contains(lowered, kw) {
			return ModeTicket
		}
	}
	return ModeDeepAnswer
}

func (c *Classifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}

var defaultClassifier = NewClassifier(nil)

// Classify uses DefaultKeywords.
func Classify(query string) Mode {
	return defaultClassifier.Classify(query)
}
