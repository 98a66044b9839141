package poller

import (
	"time"

	"fx-rates/models/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// New does not register anything on the scheduler until Start is called.
func New(scheduler gocron.Scheduler, trigger Trigger, url string) *Impl {
	return &Impl{
		scheduler: scheduler,
		trigger:   trigger,
		url:       url,
	}
}

func (service *Impl) Start(interval time.Duration) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.job != nil {
		return nil
	}
	if interval <= 0 {
		return ErrInvalidInterval
	}

	// Ticks landing while a fetch is in flight are dropped by the trigger itself.
	job, errJob := service.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { service.tick() }),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if errJob != nil {
		return errJob
	}

	service.job = job
	service.interval = interval
	log.Info().Dur(constants.LogInterval, interval).Msg("Auto-refresh started")
	return nil
}

// Stop cancels upcoming ticks. A fetch already started keeps running.
func (service *Impl) Stop() {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.job == nil {
		return
	}
	if err := service.scheduler.RemoveJob(service.job.ID()); err != nil {
		log.Warn().Err(err).Msg("Cannot remove auto-refresh job, continuing...")
	}
	service.job = nil
	log.Info().Dur(constants.LogInterval, service.interval).Msg("Auto-refresh stopped")
}

func (service *Impl) IsRunning() bool {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.job != nil
}

func (service *Impl) tick() {
	if !service.trigger.TriggerFetch(service.url) {
		log.Debug().Str(constants.LogFeedURL, service.url).Msg("Scheduled refresh skipped")
	}
}
