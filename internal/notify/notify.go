package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hamed0406/statuswatch/internal/domain"
)

const (
	Title = "🚀 Website Status Update"

	ColorOnline  = 3066993  // green
	ColorOffline = 15158332 // red
)

// Field is one name/value pair attached to a message.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Message is a sink-neutral status announcement.
type Message struct {
	Title       string
	Color       int
	Description string
	Fields      []Field
	Timestamp   time.Time
}

// Sink delivers a message to an external messaging service.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// NewSink picks the webhook flavour from the URL.
func NewSink(webhook string) Sink {
	if u, err := url.Parse(webhook); err == nil && strings.EqualFold(u.Hostname(), "hooks.slack.com") {
		return NewSlack(webhook)
	}
	return NewDiscord(webhook)
}

// StatusLine is the glyph and label used for a status, e.g. "🟢 ONLINE".
func StatusLine(s domain.Status) string {
	if s == domain.StatusHealthy {
		return "🟢 ONLINE"
	}
	return "🔴 OFFLINE"
}

// BuildMessage renders the announcement for a check result.
func BuildMessage(r domain.CheckResult, now time.Time) Message {
	online := r.Status == domain.StatusHealthy
	msg := Message{
		Title:       Title,
		Color:       ColorOffline,
		Description: fmt.Sprintf("**Status:** %s\n**URL:** %s", StatusLine(r.Status), r.URL),
		Timestamp:   now.UTC(),
	}
	switch {
	case online:
		msg.Color = ColorOnline
		msg.Fields = []Field{{Name: "Response Time", Value: fmt.Sprintf("%dms", r.LatencyMS()), Inline: true}}
	case r.Reason != "":
		msg.Fields = []Field{{Name: "Error", Value: "```" + r.Reason + "```"}}
	}
	return msg
}

// Outcome reports whether a notification reached the sink.
// Reason holds the sink's error text when Sent is false.
type Outcome struct {
	Sent   bool
	Reason string
}

func (o Outcome) Failed() bool { return !o.Sent }

// StatusNotifier turns check results into messages and hands them to a sink.
type StatusNotifier struct {
	Sink Sink
	Now  func() time.Time
}

func NewStatusNotifier(sink Sink) *StatusNotifier {
	return &StatusNotifier{Sink: sink, Now: time.Now}
}

// Notify never retries. The caller decides what to do with a failed outcome.
func (n *StatusNotifier) Notify(ctx context.Context, r domain.CheckResult) Outcome {
	if n.Sink == nil {
		return Outcome{Reason: "no sink configured"}
	}
	if err := n.Sink.Send(ctx, BuildMessage(r, n.Now())); err != nil {
		return Outcome{Reason: err.Error()}
	}
	return Outcome{Sent: true}
}
