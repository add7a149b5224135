package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreditBalances are the two account balances shown on the profile screen.
// Nil means the server omitted the field.
type CreditBalances struct {
	Credit *float64 `json:"credit_balance"`
	Wallet *float64 `json:"wallet_balance"`
}

// CreditBalance fetches GET /credits/balance, flat or nested under data.
func (c *Client) CreditBalance(ctx context.Context, token string) (*CreditBalances, error) {
	raw, err := c.do(ctx, http.MethodGet, "/credits/balance", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CreditBalances
		Data *CreditBalances `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("balance decode: %w", err)
	}
	if envelope.Data != nil && (envelope.Data.Credit != nil || envelope.Data.Wallet != nil) {
		return envelope.Data, nil
	}
	return &envelope.CreditBalances, nil
}

// ConvertCredit posts a conversion (POST /credits/convert). The summary is
// returned raw; the profile screen renders it verbatim.
func (c *Client) ConvertCredit(ctx context.Context, token string, amount float64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/credits/convert", token, nil, map[string]float64{"amount": amount})
}

// CreditTransaction is one row of conversion history.
type CreditTransaction struct {
	Type          string          `json:"type"`
	Amount        float64         `json:"amount"`
	BalanceBefore float64         `json:"balance_before"`
	BalanceAfter  float64         `json:"balance_after"`
	Reference     string          `json:"reference"`
	CreatedAt     string          `json:"created_at"`
	Property      json.RawMessage `json:"property"` // optional linked listing
}

// CreditHistoryPage is one page of history, refetched wholesale on page change.
type CreditHistoryPage struct {
	Page         int
	Transactions []CreditTransaction
	FirstPage    int
	LastPage     int
	Total        int
}

// CreditHistory fetches GET /credits/history for one page.
func (c *Client) CreditHistory(ctx context.Context, token string, page int) (*CreditHistoryPage, error) {
	if page < 1 {
		page = 1
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	raw, err := c.do(ctx, http.MethodGet, "/credits/history", token, v, nil)
	if err != nil {
		return nil, err
	}

	result := &CreditHistoryPage{Page: page, FirstPage: 1, LastPage: page}
	level := raw
	for depth := 0; depth < 3; depth++ {
		var list []CreditTransaction
		if err := json.Unmarshal(level, &list); err == nil {
			result.Transactions = list
			return result, nil
		}
		var container struct {
			pageBounds
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(level, &container); err != nil {
			return nil, fmt.Errorf("history decode: %w", err)
		}
		if f, ok := container.first(); ok && f > 0 {
			result.FirstPage = f
		}
		if l, ok := container.last(); ok && l > 0 {
			result.LastPage = l
		}
		if container.Total != nil {
			result.Total = *container.Total
		}
		if len(container.Data) == 0 {
			result.Transactions = []CreditTransaction{}
			return result, nil
		}
		level = container.Data
	}
	return nil, fmt.Errorf("history decode: nesting too deep")
}
