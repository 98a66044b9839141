package extractor

import (
	"fmt"
	"strings"

	"fx-rates/models/constants"
	"fx-rates/models/entities"
	"fx-rates/utils/sanitizer"

	"github.com/mmcdole/gofeed"
	xpp "github.com/mmcdole/goxpp"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

func New() *Impl {
	return &Impl{feedParser: gofeed.NewParser()}
}

// Extract never fails: a broken document yields the records closed before the break.
func (service *Impl) Extract(raw string) []entities.CurrencyRate {
	return service.Report(raw).Rates
}

// Report runs one forward pass over the sanitized document and keeps every valid <item>,
// in document order. End tags are matched against the open elements ignoring case, and
// stray ones are skipped, so only a truncated or unreadable document stops the pass.
func (service *Impl) Report(raw string) Report {
	report := Report{Rates: make([]entities.CurrencyRate, 0)}

	parser := xpp.NewXMLPullParser(strings.NewReader(prepare(raw)), false, charset.NewReaderLabel)

	var current *itemBuilder
	var text strings.Builder
	for {
		event, err := parser.Next()
		if err != nil {
			report.Err = fmt.Errorf("%w: %w", ErrMalformedXML, err)
			log.Error().Err(err).
				Int(constants.LogItemCount, report.Items).
				Int(constants.LogRateCount, len(report.Rates)).
				Msg("Feed parsing stopped, keeping rates read so far")
			break
		}
		if event == xpp.EndDocument {
			break
		}

		switch event {
		case xpp.StartTag:
			if strings.EqualFold(parser.Name, tagItem) {
				current = &itemBuilder{}
				report.Items++
				text.Reset()
			} else if isField(parser.Name) {
				text.Reset()
			}

		case xpp.Text:
			if current != nil {
				text.WriteString(parser.Text)
			}

		case xpp.EndTag:
			if current == nil {
				continue
			}
			name := parser.Name
			if strings.EqualFold(name, tagItem) {
				if rate, ok := current.build(); ok {
					report.Rates = append(report.Rates, rate)
				} else {
					report.Dropped++
					log.Warn().Str(constants.LogRateTitle, current.raw.TitleText).Msg("Skipping invalid currency rate entry")
				}
				current = nil
				continue
			}
			if isField(name) {
				current.set(name, strings.TrimSpace(text.String()))
				text.Reset()
			}
		}
	}

	log.Debug().
		Int(constants.LogItemCount, report.Items).
		Int(constants.LogRateCount, len(report.Rates)).
		Int(constants.LogDroppedCount, report.Dropped).
		Msg("Feed parsing completed")

	return report
}

// Channel reads the channel metadata with gofeed. It is informational only.
func (service *Impl) Channel(raw string) (entities.FeedChannel, error) {
	feed, err := service.feedParser.ParseString(prepare(raw))
	if err != nil {
		return entities.FeedChannel{}, fmt.Errorf("%w: %w", ErrChannelNotAvailable, err)
	}

	return entities.FeedChannel{
		Title:         strings.TrimSpace(feed.Title),
		Description:   strings.TrimSpace(feed.Description),
		Language:      feed.Language,
		LastBuildDate: feed.UpdatedParsed,
	}, nil
}

func prepare(raw string) string {
	return sanitizer.BalanceTags(sanitizer.Sanitize(raw))
}

func isField(name string) bool {
	return strings.EqualFold(name, tagTitle) ||
		strings.EqualFold(name, tagDescription) ||
		strings.EqualFold(name, tagPubDate) ||
		strings.EqualFold(name, tagLink)
}

// itemBuilder holds one open <item>: the raw captured text and the record derived from it.
type itemBuilder struct {
	raw  entities.RawFeedItem
	rate entities.CurrencyRate
}

func (b *itemBuilder) set(name, value string) {
	switch {
	case strings.EqualFold(name, tagTitle):
		b.raw.TitleText = value
		b.rate.Title = value
		baseName, baseCode, targetName, targetCode, ok := ParseTitle(value)
		if !ok {
			log.Debug().Str(constants.LogRateTitle, value).Msg("Could not parse currencies from title")
			return
		}
		b.rate.BaseCurrencyName = baseName
		b.rate.BaseCode = baseCode
		b.rate.TargetCurrencyName = targetName
		b.rate.TargetCode = targetCode

	case strings.EqualFold(name, tagDescription):
		b.raw.DescriptionText = value
		b.rate.Description = value
		rate, ok := ParseRate(value)
		if !ok {
			log.Debug().Str("description", value).Msg("Could not parse rate from description")
		}
		b.rate.Rate = rate

	case strings.EqualFold(name, tagPubDate):
		b.raw.PubDateText = value
		b.rate.PubDate = value

	case strings.EqualFold(name, tagLink):
		b.raw.LinkText = value
		b.rate.Link = value
	}
}

func (b *itemBuilder) build() (entities.CurrencyRate, bool) {
	if !IsValid(b.rate) {
		return entities.CurrencyRate{}, false
	}
	return b.rate, true
}
