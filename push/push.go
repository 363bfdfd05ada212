// Package push delivers notifications to the patient's phone. Providers are
// OneSignal (web push), Telegram and a log-only fallback; the Dispatcher puts
// every notification on the board and pushes it in the background.
package push

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/giygas/medreminder/config"
	"github.com/giygas/medreminder/interfaces"
)

// ErrNotConfigured is returned when a provider is selected without its credentials.
var ErrNotConfigured = errors.New("push provider not configured")

// New builds the pusher selected by cfg.Provider.
func New(cfg config.PushConfig) (interfaces.Pusher, error) {
	switch cfg.Provider {
	case "", config.PushProviderLog:
		return NewLogPusher(), nil

	case config.PushProviderOneSignal:
		p, err := NewOneSignal(OneSignalOptions{
			BaseURL:        cfg.OneSignalBaseURL,
			AppID:          cfg.OneSignalAppID,
			APIKey:         cfg.OneSignalAPIKey,
			SubscriptionID: cfg.OneSignalSubscriptionID,
			Timeout:        cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return p, nil

	case config.PushProviderTelegram:
		p, err := NewTelegram(TelegramOptions{
			Token:  cfg.TelegramBotToken,
			ChatID: cfg.TelegramChatID,
			Client: &http.Client{Timeout: cfg.Timeout},
		})
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown push provider %q", cfg.Provider)
	}
}
