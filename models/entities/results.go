package entities

import (
	"fmt"
	"time"
)

type FailureKind int

const (
	// FailureNetwork covers non-200 statuses, timeouts, connection failures and empty bodies.
	FailureNetwork FailureKind = iota + 1
	// FailureEmptyResult is a feed that was read but yielded no valid record,
	// structural parse failures included.
	FailureEmptyResult
)

func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureEmptyResult:
		return "empty_result"
	default:
		return "unknown"
	}
}

type FetchError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchResult is the outcome of one fetch cycle: either Rates (Err == nil) or Err.
type FetchResult struct {
	Rates     []CurrencyRate
	Channel   FeedChannel
	Err       *FetchError
	URL       string
	Dropped   int
	Duration  time.Duration
	FetchedAt time.Time
}

func NewSuccess(rates []CurrencyRate, channel FeedChannel) FetchResult {
	return FetchResult{Rates: rates, Channel: channel, FetchedAt: time.Now().UTC()}
}

func NewFailure(kind FailureKind, message string, err error) FetchResult {
	return FetchResult{
		Err:       &FetchError{Kind: kind, Message: message, Err: err},
		FetchedAt: time.Now().UTC(),
	}
}

func (r FetchResult) OK() bool {
	return r.Err == nil
}
