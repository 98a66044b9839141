package health

import (
	"fx-rates/models/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, store StatusProvider) (*Impl, error) {
	service := Impl{store: store}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.HealthCronTab), true),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName(jobName),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) echo() {
	status := service.store.Status()
	event := log.Info()
	if status.LastError != "" {
		event = log.Warn().Str("lastError", status.LastError)
	}
	event.
		Int(constants.LogRateCount, status.RateCount).
		Bool("autoRefresh", status.AutoRefresh).
		Str("updated", status.UpdatedAgo).
		Msgf("Application is running")
}
