package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegram_SendMessage(t *testing.T) {
	var gotPath string
	var gotMsg telegramMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegram(TelegramConfig{
		BotToken: "123:abc",
		ChatID:   "-100200300",
		BaseURL:  srv.URL,
	})

	require.NoError(t, tg.SendMessage(context.Background(), "hello"))
	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "-100200300", gotMsg.ChatID)
	assert.Equal(t, "hello", gotMsg.Text)
}

func TestTelegram_SendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	tg := NewTelegram(TelegramConfig{BotToken: "123:abc", ChatID: "x", BaseURL: srv.URL})
	err := tg.SendMessage(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

type recordingSender struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (r *recordingSender) SendMessage(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, text)
	return nil
}

func TestDispatcher_BuildsCommandAndNotification(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, "/bonk")

	require.NoError(t, d.Dispatch(context.Background(), "BAR", "buy"))

	require.Len(t, sender.messages, 2)
	assert.Equal(t, "/bonk buy BAR", sender.messages[0])
	assert.Equal(t, "Buy order placed for BAR.", sender.messages[1])
}

func TestDispatcher_DeliveryFailurePropagates(t *testing.T) {
	sender := &recordingSender{err: fmt.Errorf("network down")}
	d := NewDispatcher(sender, "/bonk")

	err := d.Dispatch(context.Background(), "BAR", "buy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
}
