package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogFeedURL       = "feedURL"
	LogFeedType      = "feedType"
	LogStatusCode    = "statusCode"
	LogBytes         = "bytes"
	LogRateTitle     = "rateTitle"
	LogRateCount     = "rateCount"
	LogDroppedCount  = "droppedCount"
	LogItemCount     = "itemCount"
	LogFailureKind   = "failureKind"
	LogInterval      = "interval"
	LogQuery         = "query"
	LogChatID        = "chatID"
	LogLevelFallback = zerolog.InfoLevel
)
