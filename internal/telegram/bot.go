// Package telegram runs the interview in a single Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Channel sends questions to one chat and reads that chat's replies.
// Messages from other chats and bot commands are ignored.
type Channel struct {
	s       sender
	updates tgbotapi.UpdatesChannel
	chatID  int64
	stop    func()
}

func New(botToken string, chatID int64) (*Channel, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	log.Printf("Authorized on telegram account @%s, interviewing chat %d", api.Self.UserName, chatID)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	return &Channel{
		s:       botAPISender{api: api},
		updates: api.GetUpdatesChan(u),
		chatID:  chatID,
		stop:    api.StopReceivingUpdates,
	}, nil
}

func (c *Channel) Say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if _, err := c.s.Send(tgbotapi.NewMessage(c.chatID, text)); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// Listen waits for the next text message from the interview chat.
// Non-text messages yield "" so the caller reprompts.
func (c *Channel) Listen(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case update, ok := <-c.updates:
			if !ok {
				return "", io.EOF
			}
			msg := update.Message
			if msg == nil || msg.Chat == nil || msg.Chat.ID != c.chatID {
				continue
			}
			if msg.IsCommand() {
				log.Printf("ignoring command %q from chat %d", msg.Command(), c.chatID)
				continue
			}
			return msg.Text, nil
		}
	}
}

func (c *Channel) Close() {
	if c.stop != nil {
		c.stop()
	}
}
