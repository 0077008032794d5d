package reporter

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-turnip-automation/internal/config"
	"go-turnip-automation/internal/models"
)

// sender is the slice of tgbotapi.BotAPI we use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramReporter struct {
	bot     sender
	chatID  int64
	baseURL string
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:     bot,
		chatID:  cfg.TelegramChatID,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// ReportListings only sends the best island; the full table stays on the console.
func (t *TelegramReporter) ReportListings(total int, ranked []models.Listing) error {
	if len(ranked) == 0 {
		return t.SendMessage(fmt.Sprintf("ℹ️ No island matches the filters (%d scraped).", total))
	}
	return t.SendMessage(fmt.Sprintf("🏝️ %d/%d islands match. Best:\n%s", len(ranked), total, t.describe(ranked[0])))
}

func (t *TelegramReporter) ReportJoin(listing models.Listing, joinErr error) error {
	if joinErr != nil {
		return t.SendMessage(fmt.Sprintf("⚠️ <b>Join failed</b> for %s:\n%s",
			html.EscapeString(listing.Code), html.EscapeString(joinErr.Error())))
	}
	return t.SendMessage("✅ <b>Joined queue</b>\n" + t.describe(listing))
}

func (t *TelegramReporter) describe(l models.Listing) string {
	return fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"💰 %d bells (%s)\n"+
			"🍑 %s · %s hemisphere\n"+
			"⏳ Waiting %d/%d\n"+
			"📝 %s\n"+
			"🔗 <a href=\"%s/island/%s\">Open island</a>",
		html.EscapeString(l.Name),
		l.Price, l.Mode,
		l.Fruit, l.Hemisphere,
		l.QueueLength, l.QueueCapacity,
		html.EscapeString(l.Description),
		t.baseURL, html.EscapeString(l.Code),
	)
}
