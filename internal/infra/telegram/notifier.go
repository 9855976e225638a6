package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
	"gopkg.in/telebot.v4"
)

// Sender - подмножество *telebot.Bot, нужное для отправки
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

type Config struct {
	Token  string
	ChatID int64
}

type Notifier struct {
	sender Sender
	chat   telebot.ChatID
	logger *slog.Logger
}

// New - бот без поллинга: сообщения только уходят, команды не принимаются
func New(cfg Config, logger *slog.Logger) (*Notifier, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:   cfg.Token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return NewWithSender(b, cfg.ChatID, logger), nil
}

func NewWithSender(s Sender, chatID int64, logger *slog.Logger) *Notifier {
	return &Notifier{sender: s, chat: telebot.ChatID(chatID), logger: logger}
}

func (n *Notifier) Name() string { return "telegram" }

// Send - фото с подписью, если задана картинка, иначе обычный текст.
// telebot не принимает контекст, поэтому проверяем отмену до отправки.
func (n *Notifier) Send(ctx context.Context, msg domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text := Render(msg)
	var what interface{} = text
	if msg.ThumbnailURL != "" {
		what = &telebot.Photo{File: telebot.FromURL(msg.ThumbnailURL), Caption: text}
	}

	if _, err := n.sender.Send(n.chat, what, telebot.ModeMarkdown); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	n.logger.Debug("telegram message sent", slog.Int64("chat_id", int64(n.chat)))
	return nil
}

// Render - заголовок жирным и тело сообщения, служебные символы Markdown экранированы.
// Обратные кавычки в теле не трогаются: ими размечен адрес контракта.
func Render(msg domain.Notification) string {
	return fmt.Sprintf("*%s*\n\n%s", titleEscaper.Replace(msg.Title), bodyEscaper.Replace(msg.Description))
}

var (
	titleEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)
	bodyEscaper  = strings.NewReplacer("_", `\_`, "*", `\*`, "[", `\[`)
)
