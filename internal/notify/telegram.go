// Package notify delivers run notifications to a Telegram channel.
package notify

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbarreto/hymnbook/internal/utils"
)

// Telegram sends messages to a fixed channel. It satisfies logger.Notifier.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram builds a notifier from TELEGRAM_BOT_TOKEN and
// TELEGRAM_CHANNEL_ID.
func NewTelegram() (*Telegram, error) {
	env, err := utils.LoadEnv([]string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHANNEL_ID"})
	if err != nil {
		return nil, fmt.Errorf("failed to load telegram env: %w", err)
	}

	chatID, err := strconv.ParseInt(env["TELEGRAM_CHANNEL_ID"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TELEGRAM_CHANNEL_ID: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(env["TELEGRAM_BOT_TOKEN"])
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

// Available reports whether the notifier can send messages.
func (t *Telegram) Available() bool {
	return t != nil && t.bot != nil
}

// SendMessage posts text to the configured channel.
func (t *Telegram) SendMessage(text string) error {
	if !t.Available() {
		return fmt.Errorf("telegram notifier not configured")
	}
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	return err
}
