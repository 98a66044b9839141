package telegram

import (
	"fmt"
	"strings"

	"fx-rates/models/entities"
	"fx-rates/services/ratestore"

	"github.com/dustin/go-humanize"
)

func formatRates(header string, rates []entities.CurrencyRate) string {
	if len(rates) == 0 {
		return getMessageFromMessageType(MessageTypeNoData)
	}

	var msg strings.Builder
	msg.WriteString(header)
	msg.WriteString("\n\n")

	shown := rates
	if len(shown) > maxRatesPerMessage {
		shown = shown[:maxRatesPerMessage]
	}
	for _, rate := range shown {
		msg.WriteString(formatRate(rate))
		msg.WriteString("\n")
	}
	if hidden := len(rates) - len(shown); hidden > 0 {
		msg.WriteString(fmt.Sprintf("\n…and %d more. Narrow it down with `/rates <name or code>`.\n", hidden))
	}
	return msg.String()
}

func formatRate(rate entities.CurrencyRate) string {
	line := fmt.Sprintf("💱 1 %s = `%s` %s (%s)", rate.BaseCode, humanize.CommafWithDigits(rate.Rate, rateDigits), rate.TargetCode, rate.TargetCurrencyName)
	if rate.Suspect() {
		line += " ⚠️"
	}
	return line
}

func formatStatus(status ratestore.Status) string {
	msg := "📡 *Feed status*\n\n"
	if status.Channel.Title != "" {
		msg += fmt.Sprintf("📰 %s\n", status.Channel.Title)
	}
	msg += fmt.Sprintf("💱 Rates: `%d`\n", status.RateCount)
	msg += fmt.Sprintf("🕒 Updated: `%s`\n", status.UpdatedAgo)
	if status.LastUpdate != "" {
		msg += fmt.Sprintf("📅 Last update: `%s`\n", status.LastUpdate)
	}
	if status.Loading {
		msg += "⏳ Refreshing right now...\n"
	}
	if status.AutoRefresh {
		msg += "🔁 Auto-refresh: *on*\n"
	} else {
		msg += "⏸ Auto-refresh: *paused*\n"
	}
	if status.LastError != "" {
		msg += fmt.Sprintf("\n⚠️ Last attempt failed: `%s`\n", status.LastError)
	}
	return msg
}

// broadcastKey identifies a main currency snapshot so the same figures are not pushed twice.
func broadcastKey(rates []entities.CurrencyRate) string {
	parts := make([]string, 0, len(rates))
	for _, rate := range rates {
		parts = append(parts, fmt.Sprintf("%s%s=%g", rate.BaseCode, rate.TargetCode, rate.Rate))
	}
	return strings.Join(parts, ";")
}

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeHelp:
		msg := "🤖 *FX Mate* – Help Guide 📢\n\n"
		msg += "📝 *Commands available:*\n"
		msg += "💱 `/rates [query]` – Latest rates, filtered by currency name or code.\n"
		msg += "⭐ `/main` – Rates of the main currencies.\n"
		msg += "📡 `/status` – Feed status and last update.\n"
		msg += "✅ `/subscribe` – Get the main rates whenever they change.\n"
		msg += "❌ `/unsubscribe` – Stop the updates.\n"
		msg += "💡 `/help` – Show this help message.\n"

		return msg

	case MessageTypeSubscribe:
		msg := "🎉 *Subscription Confirmed!* ✅\n\n"
		msg += "I'll send you the main rates every time they change. Type `/unsubscribe` to stop.\n"

		return msg

	case MessageTypeUnsubscribe:
		msg := "👋 *You've Unsubscribed* ❌\n\n"
		msg += "You will no longer receive rate updates. Type `/subscribe` anytime to come back! 🚀\n"

		return msg

	case MessageTypeNoData:
		msg := "🤷 *No rates to show*\n\n"
		msg += "Either nothing matches or the feed has not been read yet. Check `/status`.\n"

		return msg

	case MessageTypeUnknown:
		msg := "😔 *Oops! Something Went Wrong*\n\n"
		msg += "I don't know this command. Type `/help` for the list of commands.\n"

		return msg

	default:
		msg := "👋 Hi! I'm *FX Mate* 🤖\n\n"
		msg += "I read the latest exchange rates and keep them at hand 💱.\n\n"
		msg += "✅ *Want updates?* Type `/subscribe` to receive the main rates when they change.\n"
		msg += "💬 *Need help?* Type `/help` for a list of commands."

		return msg
	}
}
