package ratestore

import (
	"sync"
	"time"

	"fx-rates/models/entities"
	"fx-rates/pkg/observer"
	"fx-rates/repositories/feedsources"

	"github.com/patrickmn/go-cache"
)

const ratesCacheKey = "currencyRates"

// Fetcher is the part of the orchestrator the store drives.
type Fetcher interface {
	TriggerFetch(url string) bool
	IsBusy() bool
}

// AutoRefresh is the part of the poller the store drives.
type AutoRefresh interface {
	Start(interval time.Duration) error
	Stop()
	IsRunning() bool
}

// Status is a point in time view of the store, safe to serialize.
type Status struct {
	FeedURL     string               `json:"feedUrl"`
	Loading     bool                 `json:"loading"`
	Busy        bool                 `json:"busy"`
	AutoRefresh bool                 `json:"autoRefresh"`
	RateCount   int                  `json:"rateCount"`
	LastError   string               `json:"lastError,omitempty"`
	LastUpdate  string               `json:"lastUpdate,omitempty"`
	UpdatedAgo  string               `json:"updatedAgo"`
	PublishedAt *time.Time           `json:"publishedAt,omitempty"`
	Channel     entities.FeedChannel `json:"channel"`
}

type Service interface {
	observer.Observer
	RegisterObserver(o observer.Observer)

	IsLoading() bool
	Rates() []entities.CurrencyRate
	LastError() string
	LastUpdate() time.Time
	Status() Status
	Filter(query string) []entities.CurrencyRate
	MainCurrencies() []entities.CurrencyRate

	Activate() error
	Deactivate()
	Refresh() bool
	IsAutoRefreshing() bool
}

type Impl struct {
	fetcher        Fetcher
	autoRefresh    AutoRefresh
	feedSourceRepo feedsources.Repository
	statusWriter   observer.Dispatcher
	feedURL        string
	feedType       string
	interval       time.Duration
	mainCodes      []string
	cache          *cache.Cache

	mu         sync.RWMutex
	loading    bool
	lastError  string
	lastUpdate time.Time
	channel    entities.FeedChannel
	observers  map[observer.Observer]struct{}
}
