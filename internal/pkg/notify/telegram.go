package notify

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vodeneev/dkprops/internal/pkg/config"
)

// Min interval between any two Telegram messages to the same chat to avoid
// 429 Too Many Requests (~30/min limit).
const defaultMinSendInterval = 2 * time.Second

// RunSummary carries what a finished gather run reports.
type RunSummary struct {
	RunID    string
	Source   string
	Rows     int
	Duration time.Duration
	CSVPath  string
}

// TelegramNotifier posts run outcomes to a chat. A nil notifier is valid and
// drops every call, so callers never guard the disabled case.
type TelegramNotifier struct {
	bot             *tgbotapi.BotAPI
	chatID          int64
	minSendInterval time.Duration

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a notifier from config. It returns nil when
// notifications are disabled or the bot cannot be reached; both cases leave
// the collector running without notifications.
func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	if !cfg.Enabled {
		return nil
	}

	// Allow env override to avoid committing secrets into configs.
	token := cfg.BotToken
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}

	interval := cfg.MinSendInterval
	if interval <= 0 {
		interval = defaultMinSendInterval
	}

	slog.Info("Telegram notifier initialized", "chat_id", cfg.ChatID)
	return &TelegramNotifier{bot: bot, chatID: cfg.ChatID, minSendInterval: interval}
}

// NotifyRunSuccess posts a finished run's summary.
func (n *TelegramNotifier) NotifyRunSuccess(s RunSummary) {
	if n == nil || n.bot == nil {
		return
	}
	var b strings.Builder
	b.WriteString("✅ *Odds gather finished*\n\n")
	b.WriteString(fmt.Sprintf("Source: %s\n", escapeMarkdown(s.Source)))
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("Duration: %s\n", s.Duration.Round(time.Second)))
	if s.CSVPath != "" {
		b.WriteString(fmt.Sprintf("CSV: %s\n", escapeMarkdown(s.CSVPath)))
	}
	n.send(b.String(), s.RunID)
}

// NotifyRunFailure posts an aborted run's error.
func (n *TelegramNotifier) NotifyRunFailure(runID, source string, runErr error, duration time.Duration) {
	if n == nil || n.bot == nil {
		return
	}
	var b strings.Builder
	b.WriteString("🚨 *Odds gather failed*\n\n")
	b.WriteString(fmt.Sprintf("Source: %s\n", escapeMarkdown(source)))
	b.WriteString(fmt.Sprintf("Duration: %s\n", duration.Round(time.Second)))
	b.WriteString(fmt.Sprintf("Error: %s\n", escapeMarkdown(runErr.Error())))
	n.send(b.String(), runID)
}

// send delivers one message, spacing sends by the minimum interval.
func (n *TelegramNotifier) send(text, runID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if elapsed := time.Since(n.lastSend); elapsed < n.minSendInterval {
		time.Sleep(n.minSendInterval - elapsed)
	}
	n.lastSend = time.Now()

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Telegram send: failed", "run_id", runID, "error", err)
		return
	}
	slog.Info("Telegram send: success", "run_id", runID)
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
