// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danielhkuo/askflow/models"
)

// Client implements the engine's Sender boundary on the Telegram Bot API.
type Client struct {
	bot *tgbotapi.BotAPI
}

func New(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth failed: %w", err)
	}
	return &Client{bot: bot}, nil
}

// Username returns the bot's own username, for startup logging.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

// SendText delivers a text message with the given suggested-replies markup.
func (c *Client) SendText(_ context.Context, chatID int64, text string, kb models.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup := replyMarkup(kb); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("send text to %d: %w", chatID, err)
	}
	return nil
}

// SendPhoto delivers an image from a local file path.
func (c *Client) SendPhoto(_ context.Context, chatID int64, path string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
	if _, err := c.bot.Send(photo); err != nil {
		return fmt.Errorf("send photo to %d: %w", chatID, err)
	}
	return nil
}

// replyMarkup converts the transport-agnostic keyboard. One-time resizable
// reply keyboards match the original bot's behavior.
func replyMarkup(kb models.Keyboard) any {
	if kb.Remove {
		return tgbotapi.NewRemoveKeyboard(false)
	}
	if len(kb.Rows) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true
	return markup
}

// RegisterWebhook points Telegram at url. The secret, when set, is echoed
// back by Telegram in the X-Telegram-Bot-Api-Secret-Token header on every
// delivery and checked by the webhook middleware.
func (c *Client) RegisterWebhook(url, secret string) error {
	params := tgbotapi.Params{"url": url}
	if secret != "" {
		params["secret_token"] = secret
	}
	if _, err := c.bot.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

// Updates returns a long-polling update channel, for deployments without a
// public webhook URL.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return c.bot.GetUpdatesChan(u)
}

// Stop shuts the long-polling loop down.
func (c *Client) Stop() {
	c.bot.StopReceivingUpdates()
}

// InboundFrom converts a Telegram update into an engine turn. Updates
// without a text message (edits, attachments, joins) are ignored.
func InboundFrom(upd tgbotapi.Update) (models.Inbound, bool) {
	m := upd.Message
	if m == nil || m.From == nil || m.Chat == nil || m.Text == "" {
		return models.Inbound{}, false
	}
	return models.Inbound{
		UserID:    m.From.ID,
		ChatID:    m.Chat.ID,
		Text:      m.Text,
		Username:  m.From.UserName,
		FirstName: m.From.FirstName,
		LastName:  m.From.LastName,
	}, true
}
