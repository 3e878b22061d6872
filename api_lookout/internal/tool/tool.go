// Package tool defines the request and result values exchanged with remote
// MCP tools.
package tool

import (
	"fmt"
	"time"
)

// Names of the tools exposed by the lookout tool server.
const (
	ResourceSearch   = "resource_search"
	WebSearch        = "web_search"
	DuckDuckGoSearch = "duckduckgo_search"
	GetTicketInfo    = "get_ticket_info"
)

// Call names one tool and its arguments.
type Call struct {
	Name   string
	Params map[string]any
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%v)", c.Name, c.Params)
}

// FailureKind classifies why a call failed. It feeds logs and metric labels;
// callers branch on Result.OK only.
type FailureKind string

const (
	FailureTransport   FailureKind = "transport"
	FailureApplication FailureKind = "application"
	FailureBridge      FailureKind = "bridge"
	FailureNotFound    FailureKind = "not_found"
)

// Result is either a success carrying a payload or a failure carrying a
// message. The zero value is a failure with an empty message.
type Result struct {
	ok      bool
	payload any
	kind    FailureKind
	message string
}

func Success(payload any) Result {
	return Result{ok: true, payload: payload}
}

func Failure(kind FailureKind, message string) Result {
	return Result{kind: kind, message: message}
}

func (r Result) OK() bool { return r.ok }

// Payload returns the decoded tool output. It is never available on a
// failure.
func (r Result) Payload() (any, bool) {
	if !r.ok {
		return nil, false
	}
	return r.payload, true
}

// Kind is empty for successes.
func (r Result) Kind() FailureKind { return r.kind }

// Message is the failure text shown to the user; empty for successes.
func (r Result) Message() string { return r.message }

// Status is "success" or "failure", used as a metric label.
func (r Result) Status() string {
	if r.ok {
		return "success"
	}
	return "failure"
}

// Outcome records one finished call.
type Outcome struct {
	Call    Call
	Result  Result
	Elapsed time.Duration
}
