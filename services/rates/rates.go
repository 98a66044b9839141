package rates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fx-rates/models/constants"
	"fx-rates/models/entities"
	"fx-rates/pkg/observer"
	"fx-rates/services/extractor"
	"fx-rates/services/fetcher"
	"fx-rates/utils/metrics"

	"github.com/rs/zerolog/log"
)

func New(fetcherService fetcher.Service, extractorService extractor.Service, dispatcher observer.Dispatcher) *Impl {
	return &Impl{
		fetcher:    fetcherService,
		extractor:  extractorService,
		dispatcher: dispatcher,
		observers:  map[observer.Observer]struct{}{},
	}
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.observers[o] = struct{}{}
}

func (service *Impl) IsBusy() bool {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.busy
}

func (service *Impl) TriggerFetch(url string) bool {
	service.mu.Lock()
	if service.busy {
		service.mu.Unlock()
		metrics.RecordSkippedTrigger()
		log.Warn().Str(constants.LogFeedURL, url).Msg("Fetch already in progress, trigger dropped")
		return false
	}
	service.busy = true
	service.inFlight.Add(1)
	service.mu.Unlock()

	// Queued before the worker starts so the consumer always sees it ahead of the outcome.
	// TryPost keeps a trigger issued from the consumer context itself from waiting on a full
	// queue; the worker then posts the event before the outcome.
	started := service.dispatch(observer.NewStartedEvent(), true)
	go service.run(url, started)

	return true
}

// Wait blocks until the cycle in flight, if any, has handed its outcome over.
func (service *Impl) Wait() {
	service.inFlight.Wait()
}

func (service *Impl) run(url string, started bool) {
	defer service.inFlight.Done()

	if !started {
		service.deliver(observer.NewStartedEvent())
	}

	start := time.Now()
	result := service.cycle(url)
	result.URL = url
	result.Duration = time.Since(start)

	outcome := outcomeSuccess
	if !result.OK() {
		outcome = result.Err.Kind.String()
	}
	metrics.RecordFetch(outcome, result.Duration.Seconds())

	service.release()
	service.deliver(observer.NewResultEvent(result))
}

func (service *Impl) cycle(url string) (result entities.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str(constants.LogFeedURL, url).Interface("panic", r).Msg("Fetch cycle panicked")
			result = entities.NewFailure(entities.FailureNetwork, fmt.Sprintf("unexpected failure: %v", r), ErrCyclePanicked)
		}
	}()

	log.Info().Str(constants.LogFeedURL, url).Msg("Fetching currency rates...")

	raw, err := service.fetcher.Fetch(context.Background(), url)
	if err != nil {
		log.Error().Err(err).Str(constants.LogFeedURL, url).Msg("Cannot fetch feed")
		return entities.NewFailure(entities.FailureNetwork, err.Error(), err)
	}
	if strings.TrimSpace(raw) == "" {
		log.Error().Str(constants.LogFeedURL, url).Msg("Feed returned an empty body")
		return entities.NewFailure(entities.FailureNetwork, messageEmptyResponse, ErrEmptyResponse)
	}

	report := service.extractor.Report(raw)
	metrics.RecordExtraction(len(report.Rates), report.Dropped)

	if len(report.Rates) == 0 {
		cause := ErrNoCurrencyData
		if report.Err != nil {
			cause = fmt.Errorf("%w: %w", ErrNoCurrencyData, report.Err)
		}
		log.Error().Err(cause).
			Str(constants.LogFeedURL, url).
			Int(constants.LogItemCount, report.Items).
			Int(constants.LogDroppedCount, report.Dropped).
			Msg("No currency rate could be extracted")
		return entities.NewFailure(entities.FailureEmptyResult, messageNoCurrencyData, cause)
	}
	if report.Err != nil {
		log.Warn().Err(report.Err).
			Str(constants.LogFeedURL, url).
			Int(constants.LogRateCount, len(report.Rates)).
			Msg("Feed is truncated or malformed, delivering the rates read before the failure")
	}

	for _, rate := range report.Rates {
		if rate.Suspect() {
			log.Warn().Str(constants.LogRateTitle, rate.Title).Float64("rate", rate.Rate).Msg("Suspect currency rate")
		}
	}

	channel, errChannel := service.extractor.Channel(raw)
	if errChannel != nil {
		log.Debug().Err(errChannel).Str(constants.LogFeedURL, url).Msg("Channel metadata not available")
	}

	result = entities.NewSuccess(report.Rates, channel)
	result.Dropped = report.Dropped

	log.Info().
		Str(constants.LogFeedURL, url).
		Int(constants.LogRateCount, len(report.Rates)).
		Int(constants.LogDroppedCount, report.Dropped).
		Msg("Currency rates fetched")

	return result
}

func (service *Impl) release() {
	service.mu.Lock()
	service.busy = false
	service.mu.Unlock()
}

// deliver hands e over to the consumer context; observers never run on the worker goroutine.
func (service *Impl) deliver(e observer.Event) {
	if !service.dispatch(e, false) {
		log.Warn().Int("event", int(e.E)).Msg("Consumer context is gone, event dropped")
	}
}

func (service *Impl) dispatch(e observer.Event, nonBlocking bool) bool {
	service.mu.Lock()
	observers := make([]observer.Observer, 0, len(service.observers))
	for o := range service.observers {
		observers = append(observers, o)
	}
	service.mu.Unlock()

	task := func() {
		for _, o := range observers {
			o.OnNotify(e)
		}
	}
	if nonBlocking {
		return service.dispatcher.TryPost(task)
	}
	return service.dispatcher.Post(task)
}
