package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"fx-rates/application"
	"fx-rates/models/constants"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var errInvalidConfig = errors.New("invalid configuration")

func main() {
	loadConfig()
	setupLogger()

	if err := checkConfig(); err != nil {
		log.Fatal().Err(err).Msg("Refusing to start")
	}
	log.Info().
		Str(constants.LogFeedURL, viper.GetString(constants.FeedURL)).
		Str(constants.LogFeedType, viper.GetString(constants.FeedType)).
		Dur(constants.LogInterval, viper.GetDuration(constants.RefreshInterval)).
		Str("mainCurrencies", viper.GetString(constants.MainCurrencies)).
		Msgf("Starting %s v%s", constants.ExternalName, constants.Version)

	app, err := application.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot build the application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if errRun := app.Run(); errRun != nil {
		app.Shutdown()
		log.Fatal().Err(errRun).Msg("Cannot start the application")
	}
	log.Info().Msg("Rates are refreshing. Press CTRL-C to exit.")

	<-ctx.Done()
	log.Info().Msg("Signal received, shutting down...")
	app.Shutdown()
}

// loadConfig layers defaults, then the optional .env file, then the environment.
func loadConfig() {
	for key, value := range constants.GetDefaultConfigValues() {
		viper.SetDefault(key, value)
	}

	viper.SetConfigFile(constants.ConfigFileName)
	if err := viper.ReadInConfig(); err != nil {
		log.Debug().Str(constants.LogFileName, constants.ConfigFileName).Msg("No config file, using defaults and environment")
	}
	viper.AutomaticEnv()
}

func setupLogger() {
	if viper.GetString(constants.LogFormat) == constants.LogFormatConsole {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(viper.GetString(constants.LogLevel))
	if err != nil {
		zerolog.SetGlobalLevel(constants.LogLevelFallback)
		log.Warn().Err(err).Msgf("Unknown log level, falling back to %s", constants.LogLevelFallback)
		return
	}
	zerolog.SetGlobalLevel(level)
}

func checkConfig() error {
	feedURL, err := url.Parse(viper.GetString(constants.FeedURL))
	if err != nil || feedURL.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute url", errInvalidConfig, constants.FeedURL)
	}
	if viper.GetDuration(constants.RefreshInterval) <= 0 {
		return fmt.Errorf("%w: %s must be positive", errInvalidConfig, constants.RefreshInterval)
	}
	if viper.GetDuration(constants.FeedTimeout) <= 0 {
		return fmt.Errorf("%w: %s must be positive", errInvalidConfig, constants.FeedTimeout)
	}
	return nil
}
