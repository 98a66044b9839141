package feedsources

import (
	"time"

	"fx-rates/models/entities"
	"fx-rates/utils/databases"
)

type Repository interface {
	Get(feedTypeID string) (entities.FeedSource, error)
	Create(feedSource entities.FeedSource) error
	RecordSuccess(feedTypeID string, at time.Time, rateCount int) error
	RecordFailure(feedTypeID string, at time.Time, message string) error
}

type Impl struct {
	db databases.SqlConnection
}
