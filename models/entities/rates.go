package entities

import "fmt"

// RawFeedItem is the text captured between the tags of one <item> element, before extraction.
type RawFeedItem struct {
	TitleText       string
	DescriptionText string
	PubDateText     string
	LinkText        string
}

// CurrencyRate reads as "1 unit of BaseCode = Rate units of TargetCode".
type CurrencyRate struct {
	Title              string  `json:"title"`
	BaseCurrencyName   string  `json:"baseCurrency"`
	BaseCode           string  `json:"baseCode"`
	TargetCurrencyName string  `json:"targetCurrency"`
	TargetCode         string  `json:"targetCode"`
	Rate               float64 `json:"rate"`
	Link               string  `json:"link,omitempty"`
	PubDate            string  `json:"pubDate,omitempty"`
	Description        string  `json:"description,omitempty"`
}

// Suspect reports a rate that could not be recovered from the description or is not positive.
// Such records are still delivered.
func (r CurrencyRate) Suspect() bool {
	return !(r.Rate > 0)
}

func (r CurrencyRate) String() string {
	return fmt.Sprintf("%s/%s %g", r.BaseCode, r.TargetCode, r.Rate)
}
