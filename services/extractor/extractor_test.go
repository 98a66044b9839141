package extractor

import (
	"os"
	"testing"

	"fx-rates/models/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gbpAedItem = `<item><title>British Pound Sterling(GBP)/United Arab Emirates Dirham(AED)</title><description>1 British Pound Sterling = 4.9354 United Arab Emirates Dirham</description><pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate><link>http://x</link></item>`

func TestImpl_Extract_RoundTrip(t *testing.T) {
	got := New().Extract(gbpAedItem)

	require.Len(t, got, 1)
	assert.Equal(t, entities.CurrencyRate{
		Title:              "British Pound Sterling(GBP)/United Arab Emirates Dirham(AED)",
		BaseCurrencyName:   "British Pound Sterling",
		BaseCode:           "GBP",
		TargetCurrencyName: "United Arab Emirates Dirham",
		TargetCode:         "AED",
		Rate:               4.9354,
		Link:               "http://x",
		PubDate:            "Mon, 01 Jan 2024 00:00:00 GMT",
		Description:        "1 British Pound Sterling = 4.9354 United Arab Emirates Dirham",
	}, got[0])
}

func TestImpl_Extract(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantCodes   []string
		wantRates   []float64
		wantDropped int
		wantErr     bool
	}{
		{
			name:      "items keep feed order",
			raw:       `<rss><channel><item><title>Pound(GBP)/Dollar(USD)</title><description>1 Pound = 1.27 Dollar</description></item><item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound = 1.15 Euro</description></item></channel></rss>`,
			wantCodes: []string{"GBP/USD", "GBP/EUR"},
			wantRates: []float64{1.27, 1.15},
		},
		{
			name:        "invalid title is dropped, siblings kept",
			raw:         `<rss><channel><item><title>Pound(GBP)/Dollar(USD)</title><description>1 Pound = 1.27 Dollar</description></item><item><title>Daily market summary</title><description>1 Pound = 9 Things</description></item><item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound = 1.15 Euro</description></item></channel></rss>`,
			wantCodes:   []string{"GBP/USD", "GBP/EUR"},
			wantRates:   []float64{1.27, 1.15},
			wantDropped: 1,
		},
		{
			name:        "bare ampersand does not abort parsing",
			raw:         `<rss><channel><item><title>Tom & Jerry</title><description>1 Tom = 2 Jerry</description></item><item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound = 1.15 Euro</description></item></channel></rss>`,
			wantCodes:   []string{"GBP/EUR"},
			wantRates:   []float64{1.15},
			wantDropped: 1,
		},
		{
			name:      "unrecoverable rate is kept as zero",
			raw:       `<item><title>Pound(GBP)/Euro(EUR)</title><description>rate unavailable</description></item>`,
			wantCodes: []string{"GBP/EUR"},
			wantRates: []float64{0},
		},
		{
			name:      "tag names are case insensitive",
			raw:       `<RSS><CHANNEL><ITEM><Title>Pound(GBP)/Euro(EUR)</Title><DESCRIPTION>1 Pound = 1.15 Euro</DESCRIPTION><PUBDATE>today</PUBDATE></ITEM></CHANNEL></RSS>`,
			wantCodes: []string{"GBP/EUR"},
			wantRates: []float64{1.15},
		},
		{
			name:      "markup inside description keeps surrounding text",
			raw:       `<item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound = <b>1.15</b> Euro</description></item>`,
			wantCodes: []string{"GBP/EUR"},
			wantRates: []float64{1.15},
		},
		{
			name:      "channel title outside items is ignored",
			raw:       `<rss><channel><title>Pound(GBP)/Yen(JPY)</title><item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound = 1.15 Euro</description></item></channel></rss>`,
			wantCodes: []string{"GBP/EUR"},
			wantRates: []float64{1.15},
		},
		{
			name:      "no items",
			raw:       `<rss><channel><title>nothing today</title></channel></rss>`,
			wantCodes: []string{},
			wantRates: []float64{},
		},
		{
			name:      "not xml at all",
			raw:       `service unavailable`,
			wantCodes: []string{},
			wantRates: []float64{},
		},
		{
			name:      "truncated document keeps closed items",
			raw:       `<rss><channel><item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound = 1.15 Euro</description></item><item><title>Pound(GBP)/Dollar(USD)</title>`,
			wantCodes: []string{"GBP/EUR"},
			wantRates: []float64{1.15},
			wantErr:   true,
		},
		{
			name:      "stray end tag between items is skipped",
			raw:       `<item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound = 1.15 Euro</description></item></channel><item><title>Pound(GBP)/Dollar(USD)</title><description>1 Pound = 1.27 Dollar</description></item>`,
			wantCodes: []string{"GBP/EUR", "GBP/USD"},
			wantRates: []float64{1.15, 1.27},
		},
		{
			name:      "stray end tag inside an item keeps the item open",
			raw:       `<rss><channel><item><title>Pound(GBP)/Euro(EUR)</title></p><description>1 Pound = 1.5 Euro</description></item><item><title>Pound(GBP)/Dollar(USD)</title><description>1 Pound = 1.27 Dollar</description></item></channel></rss>`,
			wantCodes: []string{"GBP/EUR", "GBP/USD"},
			wantRates: []float64{1.5, 1.27},
		},
		{
			name:      "end tag in a different case closes its element",
			raw:       `<rss><channel><item><title>Pound(GBP)/Euro(EUR)</TITLE><description>1 Pound = 1.5 Euro</Description></ITEM><item><title>Pound(GBP)/Dollar(USD)</title><description>1 Pound = 1.27 Dollar</description></item></channel></rss>`,
			wantCodes: []string{"GBP/EUR", "GBP/USD"},
			wantRates: []float64{1.5, 1.27},
		},
		{
			name:      "unclosed markup inside description",
			raw:       `<item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound = <br>1.15 Euro</description></item><item><title>Pound(GBP)/Dollar(USD)</title><description>1 Pound = 1.27 Dollar</description></item>`,
			wantCodes: []string{"GBP/EUR", "GBP/USD"},
			wantRates: []float64{1.15, 1.27},
		},
		{
			name:      "latin-1 document",
			raw:       "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><rss><channel><item><title>Pound(GBP)/Euro(EUR)</title><description>1 Pound \xa3 = 1.15 Euro</description></item></channel></rss>",
			wantCodes: []string{"GBP/EUR"},
			wantRates: []float64{1.15},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := New().Report(tt.raw)

			require.NotNil(t, report.Rates)
			codes := make([]string, 0, len(report.Rates))
			rates := make([]float64, 0, len(report.Rates))
			for _, r := range report.Rates {
				codes = append(codes, r.BaseCode+"/"+r.TargetCode)
				rates = append(rates, r.Rate)
			}
			assert.Equal(t, tt.wantCodes, codes)
			assert.Equal(t, tt.wantRates, rates)
			assert.Equal(t, tt.wantDropped, report.Dropped)
			if tt.wantErr {
				assert.ErrorIs(t, report.Err, ErrMalformedXML)
			} else {
				assert.NoError(t, report.Err)
			}
		})
	}
}

func TestImpl_Extract_DecodesSanitizedEntity(t *testing.T) {
	raw := `<item><title>Tom & Jerry Pound(GBP)/Euro(EUR)</title><description>1 Pound = 1.15 Euro</description><link>http://x/?a=1&b=2</link></item>`

	got := New().Extract(raw)

	require.Len(t, got, 1)
	assert.Equal(t, "Tom & Jerry Pound", got[0].BaseCurrencyName)
	assert.Equal(t, "http://x/?a=1&b=2", got[0].Link)
}

func TestImpl_Extract_Fixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/gbp_rss.xml")
	require.NoError(t, err)

	report := New().Report(string(raw))

	require.NoError(t, report.Err)
	assert.Equal(t, 4, report.Items)
	assert.Zero(t, report.Dropped)
	require.Len(t, report.Rates, 4)

	want := []struct {
		target string
		name   string
		rate   float64
	}{
		{"AED", "United Arab Emirates Dirham", 4.9354},
		{"USD", "United States Dollar", 1.2733},
		{"EUR", "Euro", 1.1527},
		{"JPY", "Japanese Yen", 179.6173},
	}
	for i, w := range want {
		assert.Equal(t, "GBP", report.Rates[i].BaseCode)
		assert.Equal(t, "British Pound Sterling", report.Rates[i].BaseCurrencyName)
		assert.Equal(t, w.target, report.Rates[i].TargetCode)
		assert.Equal(t, w.name, report.Rates[i].TargetCurrencyName)
		assert.Equal(t, w.rate, report.Rates[i].Rate)
		assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 GMT", report.Rates[i].PubDate)
	}
}

func TestImpl_Channel(t *testing.T) {
	raw, err := os.ReadFile("testdata/gbp_rss.xml")
	require.NoError(t, err)

	channel, err := New().Channel(string(raw))

	require.NoError(t, err)
	assert.Equal(t, "British Pound Sterling(GBP) Exchange Rates", channel.Title)
	assert.Equal(t, "en", channel.Language)
	require.NotNil(t, channel.LastBuildDate)
	assert.Equal(t, 2024, channel.LastBuildDate.Year())
}

func TestImpl_ChannelNotAFeed(t *testing.T) {
	_, err := New().Channel("service unavailable")

	assert.ErrorIs(t, err, ErrChannelNotAvailable)
}
