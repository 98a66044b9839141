package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	// RSS feed publishing the exchange rates.
	FeedURL = "FEED_URL"

	// Identifier of the feed source, used as primary key in the feed source table.
	FeedType = "FEED_TYPE"

	// Connect and read timeout applied to the feed request. Duration type.
	FeedTimeout = "FEED_TIMEOUT"

	// User-Agent header sent with every feed request.
	UserAgent = "USER_AGENT"

	// Interval between two automatic refreshes. Duration type.
	RefreshInterval = "REFRESH_INTERVAL"

	// Comma separated list of target codes considered as main currencies.
	MainCurrencies = "MAIN_CURRENCIES"

	// TELEGRAM BOT, optional.
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// Chat receiving subscription notifications.
	TelegramAdmin = "TELEGRAM_ADMIN"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// "json" or "console".
	LogFormat        = "LOG_FORMAT"
	LogFormatConsole = "console"

	// Probe port.
	ProbePort = "PROBE_PORT"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	defaultFeedURL          = "https://www.fx-exchange.com/gbp/rss.xml"
	defaultFeedType         = "fx-exchange:gbp"
	defaultFeedTimeout      = 10 * time.Second
	defaultUserAgent        = "FXMate/1.0"
	defaultRefreshInterval  = time.Minute
	defaultMainCurrencies   = "USD,EUR,JPY"
	defaultTelegramBotToken = ""
	defaultTelegramAdmin    = 0
	defaultProbePort        = 9090
	defaultSqliteURL        = "fx-rates.db"
	defaultHealthCrontab    = "*/5 * * * *"
	defaultLogLevel         = zerolog.InfoLevel
	defaultLogFormat        = "json"
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		FeedURL:          defaultFeedURL,
		FeedType:         defaultFeedType,
		FeedTimeout:      defaultFeedTimeout,
		UserAgent:        defaultUserAgent,
		RefreshInterval:  defaultRefreshInterval,
		MainCurrencies:   defaultMainCurrencies,
		TelegramBotToken: defaultTelegramBotToken,
		TelegramAdmin:    defaultTelegramAdmin,
		ProbePort:        defaultProbePort,
		SqliteURL:        defaultSqliteURL,
		LogLevel:         defaultLogLevel.String(),
		LogFormat:        defaultLogFormat,
		HealthCronTab:    defaultHealthCrontab,
	}
}
