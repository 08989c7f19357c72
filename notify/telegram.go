package notify

import (
	"context"
	"html"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/a05031113/rent-scrapper/config"
	"github.com/a05031113/rent-scrapper/models"
	"github.com/a05031113/rent-scrapper/utils"
)

// Notifier delivers listing notifications through a Telegram bot.
// When credentials are missing or the bot cannot be initialized it
// degrades to a log-only no-op instead of failing the run.
type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	logger  *utils.Logger
	limiter *rate.Limiter
	batch   int
}

// New creates a Notifier from the configured credentials. The limiter
// enforces the minimum interval between messages Telegram tolerates;
// a non-positive interval disables pacing (used by tests).
func New(cfg *config.Config, logger *utils.Logger) *Notifier {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.MessageIntervalMs > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(cfg.MessageIntervalMs)*time.Millisecond), 1)
	}

	n := &Notifier{
		chatID:  cfg.TelegramChatID,
		logger:  logger,
		limiter: limiter,
		batch:   cfg.BatchSize,
	}

	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		logger.Warn("[telegram] credentials missing — notifications will only be logged")
		return n
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Error("[telegram] bot init failed: %v — notifications will only be logged", err)
		return n
	}
	n.bot = bot
	logger.Info("[telegram] authorized as @%s", bot.Self.UserName)
	return n
}

// Enabled reports whether messages actually reach Telegram.
func (n *Notifier) Enabled() bool {
	return n.bot != nil
}

// Deliver sends at most one batch of the ranked listings and returns
// the remainder for the pending queue. A failed send is logged and the
// batch continues; the listing is not retried on a later run because it
// was already marked seen upstream.
func (n *Notifier) Deliver(ctx context.Context, ranked []models.Listing) []models.Listing {
	if len(ranked) == 0 {
		return nil
	}

	batch := ranked
	var remainder []models.Listing
	if len(ranked) > n.batch {
		batch, remainder = ranked[:n.batch], ranked[n.batch:]
	}

	for i := range batch {
		if err := n.send(ctx, FormatListing(&batch[i])); err != nil {
			n.logger.Error("[telegram] send failed for listing %s: %v", batch[i].ID, err)
		}
	}

	n.logger.Info("[telegram] delivered %d listings, %d held for next run", len(batch), len(remainder))
	return remainder
}

// Alert sends a single out-of-band message, used for fatal-error
// notifications.
func (n *Notifier) Alert(ctx context.Context, text string) {
	if err := n.send(ctx, text); err != nil {
		n.logger.Error("[telegram] alert failed: %v", err)
	}
}

func (n *Notifier) send(ctx context.Context, text string) error {
	if n.bot == nil {
		n.logger.Info("[telegram] (not configured) message:\n%s", text)
		return nil
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := n.bot.Send(msg)
	return err
}

// FormatListing renders one listing as a Telegram HTML message. Fields
// the source did not provide are omitted rather than shown blank.
func FormatListing(l *models.Listing) string {
	parts := []string{
		"🏠 <b>" + html.EscapeString(l.Title) + "</b>",
	}

	if price := priceLabel(l); price != "" {
		parts = append(parts, "💰 "+price+" 元/月")
	}
	if l.Address != "" {
		parts = append(parts, "📍 "+html.EscapeString(l.Address))
	}
	if l.AreaText != "" {
		parts = append(parts, "📐 "+html.EscapeString(l.AreaText))
	}
	if l.FloorText != "" {
		elevator := "無電梯"
		if l.HasElevator {
			elevator = "有電梯"
		}
		parts = append(parts, "🏢 "+html.EscapeString(l.FloorText)+"（"+elevator+"）")
	}
	if l.RoomLabel != "" {
		parts = append(parts, "🛏 "+html.EscapeString(l.RoomLabel))
	}

	parts = append(parts, `🔗 <a href="`+l.URL+`">查看詳情</a>`)
	return strings.Join(parts, "\n")
}

// priceLabel renders the rent: grouped digits for numeric prices, the
// raw source text for masked ones, empty when the source gave nothing.
func priceLabel(l *models.Listing) string {
	if !l.PriceNumeric {
		return html.EscapeString(l.PriceText)
	}
	return formatThousands(l.Price)
}

func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
