package poller

import (
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const jobName = "Refresh currency rates"

var ErrInvalidInterval = errors.New("refresh interval must be positive")

// Trigger is what the poller fires on every tick.
type Trigger interface {
	TriggerFetch(url string) bool
}

type Service interface {
	Start(interval time.Duration) error
	Stop()
	IsRunning() bool
}

type Impl struct {
	scheduler gocron.Scheduler
	trigger   Trigger
	url       string

	mu       sync.Mutex
	job      gocron.Job
	interval time.Duration
}
