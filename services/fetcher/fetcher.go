package fetcher

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"fx-rates/models/constants"

	"github.com/dustin/go-humanize"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
)

func New(userAgent string, timeout time.Duration) *Impl {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Impl{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Fetch issues a blocking GET and returns the whole body. Only 200 counts as success.
func (service *Impl) Fetch(ctx context.Context, feedURL string) (string, error) {
	parsed, err := url.Parse(feedURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, feedURL)
	}

	ctx, cancel := context.WithTimeout(ctx, service.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("User-Agent", service.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")

	log.Debug().Str(constants.LogFeedURL, feedURL).Msg("Starting feed download")
	start := time.Now()

	resp, err := service.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		log.Error().
			Str(constants.LogFeedURL, feedURL).
			Int(constants.LogStatusCode, resp.StatusCode).
			Msgf("Feed server answered %s", resp.Status)
		return "", fmt.Errorf("%w: %w", ErrUnexpectedStatus, gofeed.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBody, err)
	}
	if int64(len(body)) > maxBodySize {
		return "", fmt.Errorf("%w: %w", ErrReadBody, ErrBodyTooLarge)
	}

	log.Debug().
		Str(constants.LogFeedURL, feedURL).
		Str(constants.LogBytes, humanize.Bytes(uint64(len(body)))).
		Dur("elapsed", time.Since(start)).
		Msg("Feed downloaded")

	return string(body), nil
}
