package telegram

import (
	"errors"
	"time"

	"fx-rates/models/entities"
	telegramRepo "fx-rates/repositories/telegram"
	"fx-rates/services/ratestore"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/patrickmn/go-cache"
)

type MessageType int

const (
	MessageTypeUnknown     MessageType = -1
	MessageTypeStandard    MessageType = 0
	MessageTypeWelcome     MessageType = 1
	MessageTypeHelp        MessageType = 2
	MessageTypeSubscribe   MessageType = 4
	MessageTypeUnsubscribe MessageType = 5
	MessageTypeNoData      MessageType = 6
)

const (
	// Telegram rejects messages over 4096 characters; one line per rate stays well below that.
	maxRatesPerMessage = 40
	rateDigits         = 4
	broadcastTTL       = 24 * time.Hour
	parseMode          = "Markdown"
)

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot  is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

// RateReader is the read side of the rate store used by the bot.
type RateReader interface {
	Filter(query string) []entities.CurrencyRate
	MainCurrencies() []entities.CurrencyRate
	Status() ratestore.Status
}

type Service interface {
	ListenAndDispatch() error
	Stop()
}

type Impl struct {
	bot          *gotgbot.Bot
	updater      *ext.Updater
	telegramRepo telegramRepo.Repository
	store        RateReader
	admin        int64
	cache        *cache.Cache
}
