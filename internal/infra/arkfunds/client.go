package arkfunds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yuehongzhang001/ark/internal/domain/trade"
)

// DefaultBaseURL is the arkfunds.io API root.
const DefaultBaseURL = "https://arkfunds.io/api/v2"

// Client fetches ARK fund trade records and fund-ownership data.
// It implements trade.TradeSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new arkfunds client. An empty baseURL selects the
// production host.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListTrades returns raw trade records for a symbol, optionally bounded by
// date_from/date_to day keys.
func (c *Client) ListTrades(ctx context.Context, symbol, dateFrom, dateTo string) (*trade.TradeList, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	if dateFrom != "" {
		params.Set("date_from", dateFrom)
	}
	if dateTo != "" {
		params.Set("date_to", dateTo)
	}

	body, err := c.get(ctx, "/stock/trades", params)
	if err != nil {
		return nil, err
	}

	var list trade.TradeList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("unmarshal trades: %w", err)
	}
	if list.Trades == nil {
		list.Trades = []trade.Trade{}
	}

	return &list, nil
}

// FundOwnership returns the fund-ownership payload for a symbol as-is.
func (c *Client) FundOwnership(ctx context.Context, symbol string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	body, err := c.get(ctx, "/stock/fund-ownership", params)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", trade.ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status=%d", trade.ErrProviderRequest, path, resp.StatusCode)
	}

	return body, nil
}
