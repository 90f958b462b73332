package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"BasketTrader/internal/model"
)

// BybitFetcher implements Fetcher using the Bybit v5 public market API.
type BybitFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBybitFetcher creates a fetcher with optional proxy support.
func NewBybitFetcher(baseURL, proxyURL string) *BybitFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BybitFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BybitFetcher) Name() string { return "bybit" }

// klineResponse is the Bybit v5 kline envelope. Each list entry is
// [startTime, open, high, low, close, volume, turnover], all strings,
// ordered newest first.
type klineResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Symbol string     `json:"symbol"`
		List   [][]string `json:"list"`
	} `json:"result"`
}

func (f *BybitFetcher) FetchSeries(ctx context.Context, symbol string, intervalMinutes, limit int) (model.Series, error) {
	endpoint := fmt.Sprintf("%s/v5/market/kline?category=linear&symbol=%s&interval=%d&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), intervalMinutes, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Series{Symbol: symbol}, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return model.Series{Symbol: symbol}, fmt.Errorf("fetch kline: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return model.Series{Symbol: symbol}, fmt.Errorf("fetch kline: status %d, body: %s", resp.StatusCode, string(body))
	}

	var kr klineResponse
	if err := json.NewDecoder(resp.Body).Decode(&kr); err != nil {
		return model.Series{Symbol: symbol}, fmt.Errorf("decode kline: %w", err)
	}
	if kr.RetCode != 0 {
		return model.Series{Symbol: symbol}, fmt.Errorf("bybit api error %d: %s", kr.RetCode, kr.RetMsg)
	}

	candles := make([]model.Candle, 0, len(kr.Result.List))
	for _, row := range kr.Result.List {
		c, err := parseKlineRow(row)
		if err != nil {
			return model.Series{Symbol: symbol}, fmt.Errorf("parse kline row: %w", err)
		}
		candles = append(candles, c)
	}
	// Bybit returns newest first; the engine expects chronological order.
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return model.Series{Symbol: symbol, Candles: candles}, nil
}

func parseKlineRow(row []string) (model.Candle, error) {
	if len(row) < 6 {
		return model.Candle{}, fmt.Errorf("expected at least 6 fields, got %d", len(row))
	}
	ms, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return model.Candle{}, fmt.Errorf("timestamp %q: %w", row[0], err)
	}
	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return model.Candle{}, fmt.Errorf("field %q: %w", row[i+1], err)
		}
		vals[i] = v
	}
	return model.Candle{
		Time:   time.UnixMilli(ms),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
