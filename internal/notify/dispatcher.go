package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Dispatcher turns an accept decision into an outbound trade command plus a
// human-readable notification. It keeps no state; delivery failures are
// reported to the caller and never escalate past the current item.
type Dispatcher struct {
	sender        Sender
	commandPrefix string
}

// NewDispatcher creates a dispatcher with the configured command prefix
// (e.g. "/bonk" for BonkBot).
func NewDispatcher(sender Sender, commandPrefix string) *Dispatcher {
	return &Dispatcher{
		sender:        sender,
		commandPrefix: commandPrefix,
	}
}

// Dispatch sends "<prefix> <action> <symbol>" followed by a notification.
// Both messages are attempted; the first failure is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, symbol, action string) error {
	command := fmt.Sprintf("%s %s %s", d.commandPrefix, action, symbol)
	if err := d.sender.SendMessage(ctx, command); err != nil {
		return fmt.Errorf("dispatch %s command for %s: %w", action, symbol, err)
	}
	log.Info().Str("symbol", symbol).Str("action", action).Msg("dispatcher: trade command sent")

	notification := fmt.Sprintf("%s order placed for %s.", capitalize(action), symbol)
	if err := d.sender.SendMessage(ctx, notification); err != nil {
		return fmt.Errorf("dispatch notification for %s: %w", symbol, err)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-('a'-'A')) + s[1:]
	}
	return s
}
