package extractor

import (
	"errors"
	"regexp"

	"fx-rates/models/entities"

	"github.com/mmcdole/gofeed"
)

const (
	tagItem        = "item"
	tagTitle       = "title"
	tagDescription = "description"
	tagPubDate     = "pubDate"
	tagLink        = "link"

	codeLength = 3
)

var (
	// "British Pound Sterling(GBP)/United Arab Emirates Dirham(AED)"
	titlePattern = regexp.MustCompile(`([^(]+)\(([A-Z]{3})\)/([^(]+)\(([A-Z]{3})\)`)

	// "1 British Pound Sterling = 4.9354 United Arab Emirates Dirham"
	ratePattern = regexp.MustCompile(`1\s+[^=]+=\s+([0-9.]+)`)
)

var (
	ErrMalformedXML        = errors.New("malformed feed xml")
	ErrChannelNotAvailable = errors.New("feed channel metadata not available")
)

// Report is the detailed outcome of one extraction pass.
type Report struct {
	Rates   []entities.CurrencyRate
	Items   int   // <item> elements opened
	Dropped int   // items closed but rejected by validation
	Err     error // structural failure that stopped the pass early, if any
}

type Service interface {
	Extract(raw string) []entities.CurrencyRate
	Report(raw string) Report
	Channel(raw string) (entities.FeedChannel, error)
}

type Impl struct {
	feedParser *gofeed.Parser
}
