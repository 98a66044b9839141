package insights

import (
	"net/http"

	"fx-rates/models/constants"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func (service *Impl) live(c echo.Context) error {
	return c.JSON(http.StatusOK, probeResponse{Status: "alive"})
}

func (service *Impl) ready(c echo.Context) error {
	if !service.isReady() {
		return c.JSON(http.StatusServiceUnavailable, probeResponse{Status: "not ready"})
	}
	return c.JSON(http.StatusOK, probeResponse{Status: "ready"})
}

func (service *Impl) rates(c echo.Context) error {
	query := c.QueryParam("q")
	rates := service.api.Filter(query)
	log.Debug().Str(constants.LogQuery, query).Int(constants.LogRateCount, len(rates)).Msg("rates requested")
	return c.JSON(http.StatusOK, ratesResponse{Count: len(rates), Query: query, Rates: rates})
}

func (service *Impl) mainRates(c echo.Context) error {
	rates := service.api.MainCurrencies()
	return c.JSON(http.StatusOK, ratesResponse{Count: len(rates), Rates: rates})
}

func (service *Impl) status(c echo.Context) error {
	return c.JSON(http.StatusOK, service.api.Status())
}

func (service *Impl) refresh(c echo.Context) error {
	if !service.api.Refresh() {
		return c.JSON(http.StatusConflict, refreshResponse{Accepted: false, Message: "fetch already in progress"})
	}
	return c.JSON(http.StatusAccepted, refreshResponse{Accepted: true})
}

func (service *Impl) pause(c echo.Context) error {
	service.api.Deactivate()
	return c.JSON(http.StatusOK, autoRefreshResponse{AutoRefresh: service.api.IsAutoRefreshing()})
}

func (service *Impl) resume(c echo.Context) error {
	if err := service.api.Activate(); err != nil {
		log.Error().Err(err).Msg("Cannot resume auto-refresh")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, autoRefreshResponse{AutoRefresh: service.api.IsAutoRefreshing()})
}
