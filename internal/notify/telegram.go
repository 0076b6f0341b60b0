package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/schedule_lock/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// MessageSender is the part of *bot.Bot the notifier uses.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier posts lock changes to an admin chat.
type TelegramNotifier struct {
	sender MessageSender
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier creates a bot client without calling getMe, so start-up
// does not depend on Telegram being reachable.
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return NewTelegramNotifierWithSender(b, chatID, logger), nil
}

func NewTelegramNotifierWithSender(sender MessageSender, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		sender: sender,
		chatID: chatID,
		logger: logger,
	}
}

func (n *TelegramNotifier) NotifyLockChanged(ctx context.Context, result *service.LockResult) error {
	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      FormatLockMessage(result),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send lock notification: %w", err)
	}

	n.logger.Debug("Lock notification sent", zap.Int64("chat_id", n.chatID))
	return nil
}

// FormatLockMessage renders the HTML text sent to the admin chat.
func FormatLockMessage(result *service.LockResult) string {
	var sb strings.Builder

	if result.IsLocked {
		sb.WriteString("🔒 <b>Raspored zaključan</b>\n\n")
	} else {
		sb.WriteString("🔓 <b>Raspored otključan</b>\n\n")
	}

	sb.WriteString(html.EscapeString(result.Message))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Ukupno termina: %d\n", result.TotalRowsAffected))

	debug := result.OccupancyDebug
	if debug.ActiveYearID != nil {
		sb.WriteString(fmt.Sprintf("Zauzetost sala: %d (akademska godina %d)", debug.RowsInserted, *debug.ActiveYearID))
	} else {
		sb.WriteString("Zauzetost sala: nije ažurirana")
	}

	return sb.String()
}

// Noop is used when notifications are not configured.
type Noop struct{}

func (Noop) NotifyLockChanged(context.Context, *service.LockResult) error {
	return nil
}
