package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yuehongzhang001/ark/internal/domain/trade"
)

type fakeSource struct {
	list *trade.TradeList
	err  error
}

func (f *fakeSource) ListTrades(_ context.Context, symbol, dateFrom, dateTo string) (*trade.TradeList, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeSource) FundOwnership(_ context.Context, symbol string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"symbol":"` + symbol + `"}`), nil
}

type fakeResolver struct {
	close decimal.Decimal
}

func (f *fakeResolver) ResolveClosePrices(_ context.Context, symbol string, trades []trade.Trade) ([]trade.Trade, error) {
	out := make([]trade.Trade, len(trades))
	copy(out, trades)
	for i := range out {
		c := f.close
		out[i].Close = &c
	}
	return out, nil
}

func setupTradesRouter(source trade.TradeSource, resolver ClosePriceResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTradesHandler(source, resolver)
	r.GET("/api/trades", h.GetTrades)
	r.GET("/api/weight", h.GetFundOwnership)
	return r
}

func TestGetTradesEnriched(t *testing.T) {
	source := &fakeSource{list: &trade.TradeList{
		Symbol: "TSLA",
		Trades: []trade.Trade{
			{Date: "2023-01-03", Fund: "ARKK", Shares: decimal.NewFromInt(1000)},
		},
	}}
	resolver := &fakeResolver{close: decimal.NewFromInt(130)}

	r := setupTradesRouter(source, resolver)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/trades?symbol=TSLA", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data trade.TradeList `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "TSLA", body.Data.Symbol)
	assert.Len(t, body.Data.Trades, 1)
	if assert.NotNil(t, body.Data.Trades[0].Close) {
		assert.True(t, body.Data.Trades[0].Close.Equal(decimal.NewFromInt(130)))
	}
}

func TestGetTradesBadDateFrom(t *testing.T) {
	r := setupTradesRouter(&fakeSource{list: &trade.TradeList{}}, &fakeResolver{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/trades?symbol=TSLA&date_from=garbage", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTradesUpstreamFailure(t *testing.T) {
	r := setupTradesRouter(&fakeSource{err: errors.New("arkfunds down")}, &fakeResolver{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/trades", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetTradesRejectsMalformedSymbol(t *testing.T) {
	r := setupTradesRouter(&fakeSource{list: &trade.TradeList{}}, &fakeResolver{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/trades?symbol=TS%3BLA", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFundOwnershipRequiresSymbol(t *testing.T) {
	r := setupTradesRouter(&fakeSource{}, &fakeResolver{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/weight", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
