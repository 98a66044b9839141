package entities

import "time"

type FeedSource struct {
	FeedTypeID  string `gorm:"primaryKey"`
	URL         string
	LastAttempt time.Time
	LastUpdate  time.Time `gorm:"not null; default:current_timestamp"`
	LastError   string
	RateCount   int
}

// FeedChannel holds the channel level metadata of the RSS document, for display only.
type FeedChannel struct {
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	Language      string     `json:"language,omitempty"`
	LastBuildDate *time.Time `json:"lastBuildDate,omitempty"`
}
