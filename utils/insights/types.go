package insights

import (
	"context"
	"net/http"

	"fx-rates/models/entities"
	"fx-rates/services/ratestore"

	"github.com/labstack/echo/v4"
)

// RateAPI is the part of the rate store exposed over HTTP.
type RateAPI interface {
	Filter(query string) []entities.CurrencyRate
	MainCurrencies() []entities.CurrencyRate
	Status() ratestore.Status
	Refresh() bool
	Activate() error
	Deactivate()
	IsAutoRefreshing() bool
}

type Probes interface {
	ListenAndServe()
	Shutdown(ctx context.Context) error
	Handler() http.Handler
}

type Impl struct {
	echo    *echo.Echo
	address string
	isReady func() bool
	api     RateAPI
}

type ratesResponse struct {
	Count int                     `json:"count"`
	Query string                  `json:"query,omitempty"`
	Rates []entities.CurrencyRate `json:"rates"`
}

type refreshResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

type autoRefreshResponse struct {
	AutoRefresh bool `json:"autoRefresh"`
}

type probeResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}
