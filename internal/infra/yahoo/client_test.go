package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yuehongzhang001/ark/internal/pkg/dateutil"
)

const chartBody = `{
	"chart": {
		"result": [{
			"timestamp": [1672790400],
			"indicators": {
				"quote": [{
					"open": [128.5],
					"high": [131.0],
					"low": [127.2],
					"close": [130.0],
					"volume": [46414000]
				}],
				"adjclose": [{"adjclose": [129.8]}]
			}
		}],
		"error": null
	}
}`

const emptyChartBody = `{
	"chart": {
		"result": [{
			"timestamp": [],
			"indicators": {"quote": [{}]}
		}],
		"error": null
	}
}`

func TestDailyClose(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartBody))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	price, ok, err := client.DailyClose(context.Background(), "TSLA", "2023-01-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a close price, got absent")
	}
	if price.String() != "130" {
		t.Errorf("expected close 130, got %s", price)
	}

	if gotPath != "/v8/finance/chart/TSLA" {
		t.Errorf("unexpected path: %s", gotPath)
	}

	// One-day half-open interval: period1 = Jan 4 midnight UTC,
	// period2 = Jan 5 midnight UTC.
	start, _ := dateutil.ToTime("2023-01-04")
	end, _ := dateutil.ToTime("2023-01-05")
	want := fmt.Sprintf("period1=%d&period2=%d&interval=1d", start.Unix(), end.Unix())
	if gotQuery != want {
		t.Errorf("expected query %q, got %q", want, gotQuery)
	}
}

func TestDailyCloseAbsentWhenNoQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(emptyChartBody))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, ok, err := client.DailyClose(context.Background(), "TSLA", "2023-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected absent for a non-trading day")
	}
}

func TestDailyCloseProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, _, err := client.DailyClose(context.Background(), "TSLA", "2023-01-04")
	if err == nil {
		t.Fatal("expected an error on HTTP 502")
	}
}

func TestDailyQuoteFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartBody))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	quote, err := client.DailyQuote(context.Background(), "TSLA", "2023-01-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote == nil {
		t.Fatal("expected a quote")
	}
	if quote.Open != 128.5 || quote.High != 131.0 || quote.Low != 127.2 {
		t.Errorf("unexpected OHLC: %+v", quote)
	}
	if quote.Volume != 46414000 {
		t.Errorf("expected volume 46414000, got %d", quote.Volume)
	}
	if quote.AdjClose != 129.8 {
		t.Errorf("expected adjclose 129.8, got %f", quote.AdjClose)
	}
	if quote.Date != "2023-01-04" {
		t.Errorf("expected date 2023-01-04, got %s", quote.Date)
	}
}
