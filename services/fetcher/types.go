package fetcher

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Upper bound on the body read from the feed; the fx-exchange feed is well under 1 MB.
var maxBodySize int64 = 10 << 20

var (
	ErrInvalidURL       = errors.New("invalid feed url")
	ErrUnexpectedStatus = errors.New("unexpected http status")
	ErrRequestFailed    = errors.New("feed request failed")
	ErrReadBody         = errors.New("cannot read feed body")
	ErrBodyTooLarge     = errors.New("feed body exceeds size limit")
)

type Service interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Impl struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}
