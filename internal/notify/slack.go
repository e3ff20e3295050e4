package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

type Slack struct {
	Webhook string
	Client  *http.Client
}

func NewSlack(webhook string) *Slack {
	if webhook == "" {
		return nil
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// slackMessage renders a message as one colored attachment. Slack bolds with
// single asterisks, so the Discord-style "**" in descriptions is collapsed.
func slackMessage(msg Message) *slack.WebhookMessage {
	att := slack.Attachment{
		Color:      fmt.Sprintf("#%06x", msg.Color),
		Title:      msg.Title,
		Text:       strings.ReplaceAll(msg.Description, "**", "*"),
		MarkdownIn: []string{"text", "fields"},
	}
	for _, f := range msg.Fields {
		att.Fields = append(att.Fields, slack.AttachmentField{Title: f.Name, Value: f.Value, Short: f.Inline})
	}
	if !msg.Timestamp.IsZero() {
		att.Ts = json.Number(strconv.FormatInt(msg.Timestamp.Unix(), 10))
	}
	return &slack.WebhookMessage{
		Text:        "*" + msg.Title + "*",
		Attachments: []slack.Attachment{att},
	}
}

func (s *Slack) Send(ctx context.Context, msg Message) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack disabled")
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, s.Webhook, s.Client, slackMessage(msg)); err != nil {
		return fmt.Errorf("slack: %w", err)
	}
	return nil
}
