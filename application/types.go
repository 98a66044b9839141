package application

import (
	"context"

	"fx-rates/pkg/mailbox"
	"fx-rates/services/poller"
	"fx-rates/services/rates"
	"fx-rates/services/ratestore"
	"fx-rates/services/telegram"
	databases "fx-rates/utils/databases"
	"fx-rates/utils/insights"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run() error
	Shutdown()
}

type Impl struct {
	scheduler       gocron.Scheduler
	consumer        *mailbox.Mailbox
	statusWriter    *mailbox.Mailbox
	stopConsumer    context.CancelFunc
	ratesService    rates.Service
	pollerService   poller.Service
	storeService    ratestore.Service
	telegramService telegram.Service
	db              databases.SqlConnection
	probes          insights.Probes
}
