// Package rates fetches daily exchange rates from the CBU.uz JSON API.
//
// Absence of data is a normal outcome here: the provider publishes
// nothing for future dates and may lag on the current day, so every
// failure path degrades to an empty result with a log line instead of
// an error the caller would have to handle.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
)

// cbuRate mirrors one record of the CBU archive response.
type cbuRate struct {
	Ccy     string `json:"Ccy"`
	CcyNmEN string `json:"CcyNm_EN"`
	Rate    string `json:"Rate"`
	Diff    string `json:"Diff"`
	Date    string `json:"Date"`
}

// Client is a stateless lookup client for the CBU archive endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a client for the given archive base URL
// (e.g. "https://cbu.uz/uz/arkhiv-kursov-valyut/json/all/").
func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// FetchAll returns every published rate for the given date. On any
// transport or decode failure it logs and returns an empty slice.
func (c *Client) FetchAll(ctx context.Context, date time.Time) []domain.Rate {
	url := fmt.Sprintf("%s%s/", c.baseURL, date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Warn("rates request build failed", zap.Error(err))
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("rates fetch failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("rates fetch non-200", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil
	}

	var raw []cbuRate
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.log.Warn("rates decode failed", zap.String("url", url), zap.Error(err))
		return nil
	}

	out := make([]domain.Rate, 0, len(raw))
	for _, r := range raw {
		if r.Ccy == "" {
			continue
		}
		value, err := decimal.NewFromString(r.Rate)
		if err != nil {
			c.log.Warn("rate value unparseable, record dropped",
				zap.String("code", r.Ccy), zap.String("rate", r.Rate))
			continue
		}
		// A missing or malformed Diff means "flat", not a bad record.
		diff, err := decimal.NewFromString(r.Diff)
		if err != nil {
			diff = decimal.Zero
		}
		out = append(out, domain.Rate{
			Code:  r.Ccy,
			Name:  r.CcyNmEN,
			Value: value,
			Diff:  diff,
			Date:  r.Date,
		})
	}
	return out
}

// FetchByCode returns the rate for one currency code, or ok=false when
// the provider has no record for it. Not-found is not an error.
func (c *Client) FetchByCode(ctx context.Context, code string, date time.Time) (domain.Rate, bool) {
	for _, r := range c.FetchAll(ctx, date) {
		if r.Code == code {
			return r, true
		}
	}
	return domain.Rate{}, false
}
