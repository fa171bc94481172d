// Package notify hands order confirmations off to external messaging
// channels. The only channel today is a WhatsApp click-to-chat deep link;
// the caller opens the link, nothing is pushed server side.
package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// WhatsApp builds wa.me deep links that open a chat with the store's
// number, the confirmation text prefilled.
type WhatsApp struct {
	number string
	logger zerolog.Logger
}

// NewWhatsApp creates a WhatsApp notifier for the given phone number
// (digits only, country code included, no leading plus).
func NewWhatsApp(number string, logger zerolog.Logger) (*WhatsApp, error) {
	number = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(number), "+"))
	if number == "" {
		return nil, fmt.Errorf("whatsapp number is required")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("whatsapp number must be digits only, got %q", number)
		}
	}
	return &WhatsApp{
		number: number,
		logger: logger.With().Str("component", "notify").Logger(),
	}, nil
}

// Send returns the deep link for the given text. It never contacts the
// network; the error return exists to satisfy channels that do.
func (w *WhatsApp) Send(ctx context.Context, text string) (string, error) {
	link := "https://wa.me/" + w.number + "?text=" + url.QueryEscape(text)
	w.logger.Debug().Int("text_len", len(text)).Msg("built whatsapp handoff link")
	return link, nil
}
