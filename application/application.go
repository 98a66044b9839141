package application

import (
	"context"
	"errors"
	"time"

	"fx-rates/models/constants"
	"fx-rates/models/entities"
	"fx-rates/pkg/mailbox"
	feedSourceRepo "fx-rates/repositories/feedsources"
	telegramRepo "fx-rates/repositories/telegram"
	"fx-rates/services/extractor"
	"fx-rates/services/fetcher"
	"fx-rates/services/health"
	"fx-rates/services/poller"
	"fx-rates/services/rates"
	"fx-rates/services/ratestore"
	"fx-rates/services/telegram"
	databases "fx-rates/utils/databases"
	"fx-rates/utils/insights"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func New() (*Impl, error) {
	db := databases.New(viper.GetString(constants.SqliteURL))
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}

	if errMigration := db.Migrate(&entities.FeedSource{}, &entities.TelegramUser{}); errMigration != nil {
		return nil, errMigration
	}

	scheduler, errScheduler := gocron.NewScheduler()
	if errScheduler != nil {
		return nil, errScheduler
	}

	// Repositories
	feedsRepo := feedSourceRepo.New(db)
	subscribersRepo := telegramRepo.New(db)

	// Every delivery and state mutation of the store happens on this single goroutine.
	consumer := mailbox.New("rates-consumer")
	statusWriter := mailbox.New("feed-status")

	fetcherService := fetcher.New(viper.GetString(constants.UserAgent), viper.GetDuration(constants.FeedTimeout))
	ratesService := rates.New(fetcherService, extractor.New(), consumer)
	pollerService := poller.New(scheduler, ratesService, viper.GetString(constants.FeedURL))
	storeService := ratestore.New(ratesService, pollerService, feedsRepo, statusWriter)
	ratesService.RegisterObserver(storeService)

	if _, errHealth := health.New(scheduler, storeService); errHealth != nil {
		return nil, errHealth
	}

	app := &Impl{
		scheduler:     scheduler,
		consumer:      consumer,
		statusWriter:  statusWriter,
		ratesService:  ratesService,
		pollerService: pollerService,
		storeService:  storeService,
		db:            db,
		probes:        insights.NewProbes(db.IsConnected, storeService),
	}

	telegramService, errTg := telegram.New(viper.GetString(constants.TelegramBotToken),
		viper.GetInt64(constants.TelegramAdmin), subscribersRepo, storeService)
	switch {
	case errors.Is(errTg, telegram.ErrTokenIsMissing):
		log.Info().Msg("No telegram token, bot disabled")
	case errTg != nil:
		return nil, errTg
	default:
		storeService.RegisterObserver(telegramService)
		app.telegramService = telegramService
	}

	return app, nil
}

func (app *Impl) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	app.stopConsumer = cancel
	go app.consumer.Run(ctx)
	go app.statusWriter.Run(ctx)

	app.scheduler.Start()

	if app.telegramService != nil {
		if err := app.telegramService.ListenAndDispatch(); err != nil {
			log.Error().Err(err).Msg("Telegram bot not listening, continuing without it...")
		}
	}

	if err := app.storeService.Activate(); err != nil {
		return err
	}

	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	go app.probes.ListenAndServe()
	return nil
}

func (app *Impl) Shutdown() {
	app.storeService.Deactivate()
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.probes.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown probes, continuing...")
	}
	if app.telegramService != nil {
		app.telegramService.Stop()
	}

	// The cycle in flight, if any, still hands its outcome to the consumer before it closes.
	app.ratesService.Wait()
	for _, box := range []*mailbox.Mailbox{app.consumer, app.statusWriter} {
		box.Close()
		select {
		case <-box.Done():
		case <-ctx.Done():
			log.Warn().Msg("Mailbox did not drain in time, continuing...")
		}
	}
	if app.stopConsumer != nil {
		app.stopConsumer()
	}

	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
