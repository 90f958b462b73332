package venue

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const recvWindow = "5000"

// BybitClient implements Venue against the Bybit v5 private REST API.
type BybitClient struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Client    *http.Client

	// now is overridable for request-signing tests.
	now func() time.Time
}

// NewBybitClient creates a client with optional proxy support.
func NewBybitClient(baseURL, apiKey, apiSecret, proxyURL string) *BybitClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BybitClient{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		now: time.Now,
	}
}

// sign produces the v5 request signature over
// timestamp + api_key + recv_window + payload.
func (c *BybitClient) sign(timestamp, payload string) string {
	mac := hmac.New(sha256.New, []byte(c.APISecret))
	mac.Write([]byte(timestamp + c.APIKey + recvWindow + payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *BybitClient) setAuthHeaders(req *http.Request, payload string) {
	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	req.Header.Set("X-BAPI-API-KEY", c.APIKey)
	req.Header.Set("X-BAPI-TIMESTAMP", ts)
	req.Header.Set("X-BAPI-RECV-WINDOW", recvWindow)
	req.Header.Set("X-BAPI-SIGN", c.sign(ts, payload))
}

// apiResponse is the common Bybit v5 envelope.
type apiResponse struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
}

func (c *BybitClient) PlaceMarketOrder(ctx context.Context, req OrderRequest) (OrderConfirmation, error) {
	body := map[string]string{
		"category":    "linear",
		"symbol":      req.Symbol,
		"side":        string(req.Side),
		"orderType":   "Market",
		"qty":         decimal.NewFromFloat(req.Qty).String(),
		"timeInForce": "GTC",
		"stopLoss":    decimal.NewFromFloat(req.StopLoss).String(),
		"takeProfit":  decimal.NewFromFloat(req.TakeProfit).String(),
	}
	if req.OrderLinkID != "" {
		body["orderLinkId"] = req.OrderLinkID
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return OrderConfirmation{}, fmt.Errorf("marshal order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v5/order/create", bytes.NewReader(payload))
	if err != nil {
		return OrderConfirmation{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(httpReq, string(payload))

	env, err := c.do(httpReq)
	if err != nil {
		return OrderConfirmation{}, fmt.Errorf("place order %s: %w", req.Symbol, err)
	}
	var result struct {
		OrderID     string `json:"orderId"`
		OrderLinkID string `json:"orderLinkId"`
	}
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return OrderConfirmation{}, fmt.Errorf("decode order result: %w", err)
	}
	return OrderConfirmation{OrderID: result.OrderID, OrderLinkID: result.OrderLinkID}, nil
}

func (c *BybitClient) AvailableBalance(ctx context.Context, coin string) (float64, error) {
	query := "accountType=UNIFIED&coin=" + url.QueryEscape(coin)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v5/account/wallet-balance?"+query, nil)
	if err != nil {
		return 0, err
	}
	c.setAuthHeaders(httpReq, query)

	env, err := c.do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("wallet balance: %w", err)
	}
	var result struct {
		List []struct {
			Coin []struct {
				Coin           string `json:"coin"`
				WalletBalance  string `json:"walletBalance"`
				AvailableToUse string `json:"availableToWithdraw"`
			} `json:"coin"`
		} `json:"list"`
	}
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return 0, fmt.Errorf("decode wallet balance: %w", err)
	}
	for _, acct := range result.List {
		for _, entry := range acct.Coin {
			if entry.Coin != coin {
				continue
			}
			raw := entry.AvailableToUse
			if raw == "" {
				raw = entry.WalletBalance
			}
			bal, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return 0, fmt.Errorf("parse balance %q: %w", raw, err)
			}
			return bal, nil
		}
	}
	return 0, fmt.Errorf("no balance entry for %s", coin)
}

func (c *BybitClient) do(req *http.Request) (*apiResponse, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	var env apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.RetCode != 0 {
		return nil, fmt.Errorf("bybit api error %d: %s", env.RetCode, env.RetMsg)
	}
	return &env, nil
}

var _ Venue = (*BybitClient)(nil)
