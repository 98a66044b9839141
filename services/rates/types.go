package rates

import (
	"errors"
	"sync"

	"fx-rates/pkg/observer"
	"fx-rates/services/extractor"
	"fx-rates/services/fetcher"
)

const (
	messageEmptyResponse  = "empty response"
	messageNoCurrencyData = "no currency data found"

	outcomeSuccess = "success"
)

var (
	ErrEmptyResponse  = errors.New(messageEmptyResponse)
	ErrNoCurrencyData = errors.New(messageNoCurrencyData)
	ErrCyclePanicked  = errors.New("fetch cycle panicked")
)

type Service interface {
	// TriggerFetch starts one fetch cycle unless one is already in flight, in which case the
	// trigger is dropped and false is returned.
	TriggerFetch(url string) bool
	IsBusy() bool
	RegisterObserver(o observer.Observer)
	Wait()
}

type Impl struct {
	fetcher    fetcher.Service
	extractor  extractor.Service
	dispatcher observer.Dispatcher

	mu        sync.Mutex
	busy      bool
	inFlight  sync.WaitGroup
	observers map[observer.Observer]struct{}
}
