package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuehongzhang001/ark/internal/domain/trade"
	"github.com/yuehongzhang001/ark/internal/pkg/dateutil"
)

// DefaultBaseURL is the Yahoo Finance chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches daily observations from the Yahoo Finance chart API.
// It implements trade.QuoteProvider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Yahoo client. An empty baseURL selects the
// production host.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// chartResponse mirrors the v8 chart payload.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// DailyClose returns the closing price for symbol on day, requesting
// exactly the half-open interval [day, day+1). ok is false when the market
// was closed or the symbol did not trade that day.
func (c *Client) DailyClose(ctx context.Context, symbol, day string) (decimal.Decimal, bool, error) {
	quote, err := c.DailyQuote(ctx, symbol, day)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	if quote == nil {
		return decimal.Decimal{}, false, nil
	}
	return decimal.NewFromFloat(quote.Close), true, nil
}

// DailyQuote returns the full observation for symbol on day, or nil when
// there was no trading.
func (c *Client) DailyQuote(ctx context.Context, symbol, day string) (*trade.Quote, error) {
	start, err := dateutil.ToTime(day)
	if err != nil {
		return nil, err
	}
	next, err := dateutil.AddDays(day, 1)
	if err != nil {
		return nil, err
	}
	end, err := dateutil.ToTime(next)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", trade.ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// 404 with an error payload means an unknown symbol, not an outage;
	// treat it like any other provider error.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status=%d body=%s", trade.ErrProviderRequest, resp.StatusCode, truncate(respBody, 200))
	}

	var chart chartResponse
	if err := json.Unmarshal(respBody, &chart); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", trade.ErrProviderRequest, chart.Chart.Error.Code, chart.Chart.Error.Description)
	}

	if len(chart.Chart.Result) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	q := result.Indicators.Quote[0]
	if len(q.Close) == 0 || q.Close[0] == nil {
		return nil, nil
	}

	quote := &trade.Quote{
		Date:  dateutil.FromTime(time.Unix(result.Timestamp[0], 0)),
		Close: *q.Close[0],
	}
	if len(q.Open) > 0 && q.Open[0] != nil {
		quote.Open = *q.Open[0]
	}
	if len(q.High) > 0 && q.High[0] != nil {
		quote.High = *q.High[0]
	}
	if len(q.Low) > 0 && q.Low[0] != nil {
		quote.Low = *q.Low[0]
	}
	if len(q.Volume) > 0 && q.Volume[0] != nil {
		quote.Volume = *q.Volume[0]
	}
	if len(result.Indicators.AdjClose) > 0 {
		if ac := result.Indicators.AdjClose[0].AdjClose; len(ac) > 0 && ac[0] != nil {
			quote.AdjClose = *ac[0]
		}
	}

	return quote, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
