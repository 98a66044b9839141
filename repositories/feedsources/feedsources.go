package feedsources

import (
	"time"

	"fx-rates/models/entities"
	"fx-rates/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) Get(feedTypeID string) (entities.FeedSource, error) {
	var feedSource entities.FeedSource
	response := repo.db.GetDB().Where("feed_type_id = ?", feedTypeID).First(&feedSource)
	return feedSource, response.Error
}

func (repo *Impl) Create(feedSource entities.FeedSource) error {
	return repo.db.GetDB().Create(&feedSource).Error
}

// RecordSuccess stamps both the attempt and the update, and clears the last error.
func (repo *Impl) RecordSuccess(feedTypeID string, at time.Time, rateCount int) error {
	return repo.db.GetDB().
		Model(&entities.FeedSource{}).
		Where("feed_type_id = ?", feedTypeID).
		Updates(map[string]any{
			"last_attempt": at,
			"last_update":  at,
			"last_error":   "",
			"rate_count":   rateCount,
		}).
		Error
}

// RecordFailure leaves the last update and rate count of the previous success untouched.
func (repo *Impl) RecordFailure(feedTypeID string, at time.Time, message string) error {
	return repo.db.GetDB().
		Model(&entities.FeedSource{}).
		Where("feed_type_id = ?", feedTypeID).
		Updates(map[string]any{
			"last_attempt": at,
			"last_error":   message,
		}).
		Error
}
