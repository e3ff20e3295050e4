package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

type Discord struct {
	Webhook string
	Session *discordgo.Session
}

// NewDiscord builds a sink for a ".../webhooks/<id>/<token>" URL. The session
// never retries: one status change is one delivery attempt.
func NewDiscord(webhook string) *Discord {
	if webhook == "" {
		return nil
	}
	s, _ := discordgo.New("")
	s.ShouldRetryOnRateLimit = false
	s.MaxRestRetries = 0
	s.Client = &http.Client{}
	return &Discord{Webhook: webhook, Session: s}
}

// webhookCredentials pulls the id and token out of a Discord webhook URL.
func webhookCredentials(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", errors.New("URL must look like .../webhooks/<id>/<token>")
}

func discordEmbed(msg Message) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Description,
		Color:       msg.Color,
		Timestamp:   msg.Timestamp.Format(time.RFC3339),
	}
	for _, f := range msg.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return embed
}

func (d *Discord) Send(ctx context.Context, msg Message) error {
	if d == nil || d.Webhook == "" {
		return errors.New("discord disabled")
	}
	id, token, err := webhookCredentials(d.Webhook)
	if err != nil {
		return fmt.Errorf("discord: %w", err)
	}
	params := &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{discordEmbed(msg)}}
	if _, err := d.Session.WebhookExecute(id, token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: %w", err)
	}
	return nil
}
