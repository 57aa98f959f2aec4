package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Telegram Sender — trade commands and notifications via the Bot API
// ---------------------------------------------------------------------------

// Sender delivers a plain-text message to the configured channel.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramConfig configures the Telegram sender.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
	BaseURL  string `yaml:"base_url"` // override for tests; default Bot API
}

// Telegram implements Sender against the Telegram Bot API.
type Telegram struct {
	config     TelegramConfig
	httpClient *http.Client
	apiURL     string
}

// Compile-time interface check.
var _ Sender = (*Telegram)(nil)

// NewTelegram creates a Telegram sender.
func NewTelegram(config TelegramConfig) *Telegram {
	base := config.BaseURL
	if base == "" {
		base = "https://api.telegram.org"
	}
	return &Telegram{
		config: config,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiURL: fmt.Sprintf("%s/bot%s", base, config.BotToken),
	}
}

type telegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// SendMessage posts a sendMessage call to the Bot API.
func (t *Telegram) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(telegramMessage{
		ChatID: t.config.ChatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.apiURL+"/sendMessage", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	defer resp.Body.Close()

	var apiResp telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("telegram: decode response: %w", err)
	}
	if !apiResp.OK {
		desc := apiResp.Description
		if desc == "" {
			desc = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("telegram: API error: %s", desc)
	}

	log.Debug().Str("chat_id", t.config.ChatID).Msg("telegram: message sent")
	return nil
}

// LogSender is a Sender that only logs, used in stub/dry-run mode.
type LogSender struct{}

// Compile-time interface check.
var _ Sender = (*LogSender)(nil)

// SendMessage logs the message instead of delivering it.
func (LogSender) SendMessage(_ context.Context, text string) error {
	log.Info().Str("text", text).Msg("notify: message (dry-run)")
	return nil
}
