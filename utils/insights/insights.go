package insights

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fx-rates/models/constants"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func NewProbes(isReady func() bool, api RateAPI) *Impl {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Debug()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int(constants.LogStatusCode, v.Status).
				Dur("latency", v.Latency).
				Msg("request completed")
			return nil
		},
	}))
	e.Use(middleware.Recover())

	service := &Impl{
		echo:    e,
		address: fmt.Sprintf(":%d", viper.GetInt(constants.ProbePort)),
		isReady: isReady,
		api:     api,
	}

	e.GET("/health/live", service.live)
	e.GET("/health/ready", service.ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	group := e.Group("/api")
	group.GET("/rates", service.rates)
	group.GET("/rates/main", service.mainRates)
	group.GET("/status", service.status)
	group.POST("/refresh", service.refresh)
	group.POST("/auto-refresh/pause", service.pause)
	group.POST("/auto-refresh/resume", service.resume)

	return service
}

// ListenAndServe blocks until the server is shut down.
func (service *Impl) ListenAndServe() {
	log.Info().Str("address", service.address).Msg("Probes and API listening")
	if err := service.echo.Start(service.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Str("address", service.address).Msg("Probes server stopped")
	}
}

func (service *Impl) Shutdown(ctx context.Context) error {
	return service.echo.Shutdown(ctx)
}

func (service *Impl) Handler() http.Handler {
	return service.echo
}
