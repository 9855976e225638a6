package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
)

const (
	defaultBaseURL   = "https://discord.com/api/v10"
	defaultUserAgent = "token-price-notifier/1.0 (+https://github.com/NastyaGoryachaya/token-price-notifier)"
	maxErrorBody     = 4096
)

type Config struct {
	BaseURL   string
	Token     string
	ChannelID string
	UserAgent string
	Timeout   time.Duration
}

// APIError - Discord ответил не 2xx
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("discord api: %s", e.Status)
	}
	return fmt.Sprintf("discord api: %s: %s", e.Status, e.Body)
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

type embedThumbnail struct {
	URL string `json:"url"`
}

type embed struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Color       int             `json:"color"`
	Thumbnail   *embedThumbnail `json:"thumbnail,omitempty"`
}

type createMessageRequest struct {
	Embeds []embed `json:"embeds"`
}

// NewClient - клиент REST API Discord, шлёт сообщения в один канал
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (c *Client) Name() string { return "discord" }

// Send - POST /channels/{id}/messages с одним embed
func (c *Client) Send(ctx context.Context, n domain.Notification) error {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u = u.JoinPath("channels", c.cfg.ChannelID, "messages")

	e := embed{Title: n.Title, Description: n.Description, Color: n.Color}
	if n.ThumbnailURL != "" {
		e.Thumbnail = &embedThumbnail{URL: n.ThumbnailURL}
	}
	body, err := json.Marshal(createMessageRequest{Embeds: []embed{e}})
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(raw)}
	}
	// тело ответа не нужно, но соединение переиспользуется только после вычитки
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("discord message sent", slog.String("channel_id", c.cfg.ChannelID))
	return nil
}
