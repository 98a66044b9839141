package ratestore

import (
	"errors"
	"strings"
	"time"

	"fx-rates/models/constants"
	"fx-rates/models/entities"
	"fx-rates/pkg/observer"
	"fx-rates/repositories/feedsources"
	"fx-rates/utils/dates"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// New wires the store. statusWriter runs the feed source writes so they stay off the consumer context.
func New(fetcher Fetcher, autoRefresh AutoRefresh, feedSourceRepo feedsources.Repository, statusWriter observer.Dispatcher) *Impl {
	service := &Impl{
		fetcher:        fetcher,
		autoRefresh:    autoRefresh,
		feedSourceRepo: feedSourceRepo,
		statusWriter:   statusWriter,
		feedURL:        viper.GetString(constants.FeedURL),
		feedType:       viper.GetString(constants.FeedType),
		interval:       viper.GetDuration(constants.RefreshInterval),
		mainCodes:      parseCodes(viper.GetString(constants.MainCurrencies)),
		cache:          cache.New(cache.NoExpiration, 0),
		observers:      map[observer.Observer]struct{}{},
	}

	service.seedFeedSource()
	return service
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.observers[o] = struct{}{}
}

// OnNotify must only be called from the consumer context.
func (service *Impl) OnNotify(e observer.Event) {
	switch e.E {
	case observer.FetchStartedEvent:
		service.mu.Lock()
		service.loading = true
		service.lastError = ""
		service.mu.Unlock()

	case observer.RatesEvent:
		service.mu.Lock()
		service.cache.SetDefault(ratesCacheKey, e.Result.Rates)
		service.loading = false
		service.lastError = ""
		service.lastUpdate = e.Result.FetchedAt
		service.channel = e.Result.Channel
		service.mu.Unlock()

		fetchedAt, rateCount := e.Result.FetchedAt, len(e.Result.Rates)
		service.recordStatus(func() error {
			return service.feedSourceRepo.RecordSuccess(service.feedType, fetchedAt, rateCount)
		})
		log.Info().
			Int(constants.LogRateCount, len(e.Result.Rates)).
			Str("lastUpdate", dates.FormatLastUpdate(e.Result.FetchedAt)).
			Msg("Currency rates updated")

	case observer.FailureEvent:
		message := e.Result.Err.Message
		service.mu.Lock()
		service.loading = false
		service.lastError = message
		service.mu.Unlock()

		attemptedAt := e.Result.FetchedAt
		service.recordStatus(func() error {
			return service.feedSourceRepo.RecordFailure(service.feedType, attemptedAt, message)
		})
		log.Warn().
			Str(constants.LogFailureKind, e.Result.Err.Kind.String()).
			Str("reason", message).
			Msg("Currency rates not updated, keeping previous ones")

	default:
		log.Warn().Int("event", int(e.E)).Msg("Unknown event ignored")
		return
	}

	service.notify(e)
}

func (service *Impl) IsLoading() bool {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.loading
}

// Rates returns a copy of the current record set, empty until the first success.
func (service *Impl) Rates() []entities.CurrencyRate {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.rates()
}

// LastError is empty when the last cycle succeeded or none has completed yet.
func (service *Impl) LastError() string {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.lastError
}

func (service *Impl) LastUpdate() time.Time {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.lastUpdate
}

func (service *Impl) Status() Status {
	service.mu.RLock()
	rates := service.rates()
	status := Status{
		FeedURL:    service.feedURL,
		Loading:    service.loading,
		RateCount:  len(rates),
		LastError:  service.lastError,
		LastUpdate: dates.FormatLastUpdate(service.lastUpdate),
		UpdatedAgo: dates.Ago(service.lastUpdate),
		Channel:    service.channel,
	}
	service.mu.RUnlock()

	status.Busy = service.fetcher.IsBusy()
	status.AutoRefresh = service.autoRefresh.IsRunning()
	if publishedAt, ok := latestPubDate(rates); ok {
		status.PublishedAt = &publishedAt
	}
	return status
}

// Filter matches query case-insensitively as a substring of the target currency name,
// the target code or the title. A blank query returns everything.
func (service *Impl) Filter(query string) []entities.CurrencyRate {
	rates := service.Rates()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rates
	}

	return lo.Filter(rates, func(rate entities.CurrencyRate, _ int) bool {
		return strings.Contains(strings.ToLower(rate.TargetCurrencyName), query) ||
			strings.Contains(strings.ToLower(rate.TargetCode), query) ||
			strings.Contains(strings.ToLower(rate.Title), query)
	})
}

func (service *Impl) MainCurrencies() []entities.CurrencyRate {
	return lo.Filter(service.Rates(), func(rate entities.CurrencyRate, _ int) bool {
		return lo.Contains(service.mainCodes, rate.TargetCode)
	})
}

// Activate refreshes right away, then keeps refreshing on the configured interval.
func (service *Impl) Activate() error {
	service.Refresh()
	return service.autoRefresh.Start(service.interval)
}

func (service *Impl) Deactivate() {
	service.autoRefresh.Stop()
}

// Refresh reports false when a fetch was already in flight.
func (service *Impl) Refresh() bool {
	return service.fetcher.TriggerFetch(service.feedURL)
}

func (service *Impl) IsAutoRefreshing() bool {
	return service.autoRefresh.IsRunning()
}

func (service *Impl) rates() []entities.CurrencyRate {
	x, found := service.cache.Get(ratesCacheKey)
	if !found {
		return make([]entities.CurrencyRate, 0)
	}
	stored := x.([]entities.CurrencyRate)
	rates := make([]entities.CurrencyRate, len(stored))
	copy(rates, stored)
	return rates
}

func (service *Impl) notify(e observer.Event) {
	service.mu.RLock()
	observers := lo.Keys(service.observers)
	service.mu.RUnlock()

	for _, o := range observers {
		o.OnNotify(e)
	}
}

func (service *Impl) recordStatus(write func() error) {
	posted := service.statusWriter.Post(func() {
		if err := write(); err != nil {
			log.Error().Err(err).Str(constants.LogFeedType, service.feedType).Msg("Cannot update feed source status")
		}
	})
	if !posted {
		log.Warn().Str(constants.LogFeedType, service.feedType).Msg("Status writer is gone, feed source status not recorded")
	}
}

func (service *Impl) seedFeedSource() {
	_, err := service.feedSourceRepo.Get(service.feedType)
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str(constants.LogFeedType, service.feedType).Msg("Cannot read feed source")
		return
	}

	errCreate := service.feedSourceRepo.Create(entities.FeedSource{
		FeedTypeID: service.feedType,
		URL:        service.feedURL,
	})
	if errCreate != nil {
		log.Error().Err(errCreate).Str(constants.LogFeedType, service.feedType).Msg("Error on save feed source")
	}
}

func parseCodes(raw string) []string {
	codes := lo.Map(strings.Split(raw, ","), func(code string, _ int) string {
		return strings.ToUpper(strings.TrimSpace(code))
	})
	return lo.Uniq(lo.Compact(codes))
}

func latestPubDate(rates []entities.CurrencyRate) (time.Time, bool) {
	published := lo.FilterMap(rates, func(rate entities.CurrencyRate, _ int) (time.Time, bool) {
		parsed, err := dates.ParsePubDate(rate.PubDate)
		return parsed, err == nil
	})
	if len(published) == 0 {
		return time.Time{}, false
	}
	return lo.MaxBy(published, func(a, b time.Time) bool { return a.After(b) }), true
}
