package push

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
)

// TelegramOptions configures the Telegram provider. Endpoint defaults to
// the public Bot API.
type TelegramOptions struct {
	Token    string
	ChatID   int64
	Endpoint string
	Client   *http.Client
}

// Telegram sends each notification as a bot message to one chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

var _ interfaces.Pusher = (*Telegram)(nil)

// NewTelegram authorizes the bot token against the Bot API.
func NewTelegram(opts TelegramOptions) (*Telegram, error) {
	if opts.Token == "" || opts.ChatID == 0 {
		return nil, fmt.Errorf("telegram: %w", ErrNotConfigured)
	}
	if opts.Endpoint == "" {
		opts.Endpoint = tgbotapi.APIEndpoint
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: defaultTimeout}
	}

	bot, err := tgbotapi.NewBotAPIWithClient(opts.Token, opts.Endpoint, opts.Client)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to create bot: %w", err)
	}

	logging.Info("Authorized on Telegram", "account", bot.Self.UserName)
	return &Telegram{bot: bot, chatID: opts.ChatID}, nil
}

func (t *Telegram) Name() string { return "telegram" }

// Push sends title and message as one text message.
func (t *Telegram) Push(ctx context.Context, req interfaces.PushRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text := req.Title + "\n\n" + req.Message
	if req.URL != "" {
		text += "\n" + req.URL
	}
	msg := tgbotapi.NewMessage(t.chatID, text)

	// The Bot API client takes no context; give up waiting when ctx ends
	done := make(chan error, 1)
	go func() {
		_, err := t.bot.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram: send message: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
