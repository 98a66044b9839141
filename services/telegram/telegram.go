package telegram

import (
	"fmt"
	"strings"
	"time"

	"fx-rates/models/constants"
	"fx-rates/models/entities"
	"fx-rates/pkg/observer"
	telegramRepo "fx-rates/repositories/telegram"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

func New(token string, admin int64, telegramRepo telegramRepo.Repository, store RateReader) (*Impl, error) {
	if token == "" {
		return nil, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBotNotInitialized, err)
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Err(err).Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := Impl{
		bot:          b,
		telegramRepo: telegramRepo,
		store:        store,
		admin:        admin,
		cache:        cache.New(broadcastTTL, 2*broadcastTTL),
	}
	dispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	dispatcher.AddHandler(handlers.NewCommand("rates", service.ratesCmd))
	dispatcher.AddHandler(handlers.NewCommand("main", service.mainCmd))
	dispatcher.AddHandler(handlers.NewCommand("status", service.statusCmd))
	dispatcher.AddHandler(handlers.NewCommand("subscribe", service.subscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("unsubscribe", service.unsubscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("", service.unknownCmd))

	service.updater = ext.NewUpdater(dispatcher, nil)

	return &service, nil
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToStartListening, err)
	}

	log.Info().Str("username", service.bot.Username).Msg("Telegram bot is listening")
	return nil
}

func (service *Impl) Stop() {
	if err := service.updater.Stop(); err != nil {
		log.Warn().Err(err).Msg("Cannot stop telegram updater")
	}
}

// OnNotify pushes the main rates to subscribers when a new snapshot carries figures they have not seen.
func (service *Impl) OnNotify(e observer.Event) {
	if e.E != observer.RatesEvent {
		return
	}

	rates := service.store.MainCurrencies()
	if len(rates) == 0 {
		return
	}
	if err := service.cache.Add(broadcastKey(rates), true, cache.DefaultExpiration); err != nil {
		log.Debug().Msg("Main rates unchanged, no broadcast")
		return
	}

	// Sending is network bound and must not hold the consumer context.
	go service.broadcast(formatRates("⭐ *Main rates updated*", rates))
}

func (service *Impl) broadcast(msg string) {
	users, err := service.telegramRepo.FetchAll()
	if err != nil {
		log.Error().Err(err).Msg("Cannot read subscribers, broadcast skipped")
		return
	}

	for _, user := range users {
		log.Info().Int64(constants.LogChatID, user.ChatID).Msg("send rates update")
		service.send(user.ChatID, msg)
	}
}

func (service *Impl) startCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("start", ctx)
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeWelcome))
	return nil
}

func (service *Impl) helpCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("help", ctx)
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeHelp))
	return nil
}

func (service *Impl) unknownCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("unknown", ctx)
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeUnknown))
	return nil
}

func (service *Impl) ratesCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("rates", ctx)

	query := ""
	if args := ctx.Args(); len(args) > 1 {
		query = strings.Join(args[1:], " ")
	}
	log.Debug().Str(constants.LogQuery, query).Msg("rates query")

	header := "💱 *Latest rates*"
	if query != "" {
		header = fmt.Sprintf("🔍 *Rates matching* `%s`", query)
	}
	service.send(ctx.EffectiveChat.Id, formatRates(header, service.store.Filter(query)))
	return nil
}

func (service *Impl) mainCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("main", ctx)
	service.send(ctx.EffectiveChat.Id, formatRates("⭐ *Main rates*", service.store.MainCurrencies()))
	return nil
}

func (service *Impl) statusCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("status", ctx)
	service.send(ctx.EffectiveChat.Id, formatStatus(service.store.Status()))
	return nil
}

func (service *Impl) subscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("subscribe", ctx)
	created, err := service.telegramRepo.Subscribe(entities.TelegramUser{
		ChatID:       ctx.EffectiveChat.Id,
		Name:         ctx.EffectiveChat.Username,
		SubscribedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("error on saved")
		service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeUnknown))
		return nil
	}
	if created {
		service.notifyAdminOnNewUser(ctx.EffectiveChat.Id)
	}
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeSubscribe))
	return nil
}

func (service *Impl) unsubscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("unsubscribe", ctx)
	if _, err := service.telegramRepo.Unsubscribe(ctx.EffectiveChat.Id); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("error on deleted")
	}
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeUnsubscribe))
	return nil
}

func (service *Impl) notifyAdminOnNewUser(chatID int64) {
	if service.admin == 0 || chatID == service.admin {
		return
	}

	msg := "🆕 *New subscriber!* 🎉\n\n"
	msg += fmt.Sprintf("👤 *User ID:* `%d`\n", chatID)
	msg += fmt.Sprintf("📅 *Date:* `%s`\n", time.Now().Format("2006-01-02 15:04:05"))
	service.send(service.admin, msg)
}

func (service *Impl) send(chatID int64, msg string) {
	if _, err := service.bot.SendMessage(chatID, msg, &gotgbot.SendMessageOpts{ParseMode: parseMode}); err != nil {
		log.Warn().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot send telegram message")
	}
}

func logCommand(cmd string, ctx *ext.Context) {
	log.Info().
		Str("cmd", cmd).
		Str("username", ctx.EffectiveChat.Username).
		Int64(constants.LogChatID, ctx.EffectiveChat.Id).
		Msg("command received")
}
