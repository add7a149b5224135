package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
)

// SignInResult is what the login screen needs from POST /signin: the bearer
// token plus the raw user payload, stored verbatim in the session because its
// shape varies between API versions.
type SignInResult struct {
	Token string
	User  json.RawMessage
}

var (
	localPhoneRe = regexp.MustCompile(`^0\d{10}$`)
	barePhoneRe  = regexp.MustCompile(`^\d{10}$`)
)

// NormalizePhone converts local Nigerian numbers to the 234-prefixed form the
// API expects. Anything else passes through unchanged.
func NormalizePhone(phone string) string {
	if localPhoneRe.MatchString(phone) {
		return "234" + phone[1:]
	}
	if barePhoneRe.MatchString(phone) {
		return "234" + phone
	}
	return phone
}

// SignIn authenticates against POST /signin.
func (c *Client) SignIn(ctx context.Context, countryCode, phone, password string) (*SignInResult, error) {
	body := map[string]string{
		"countryCode":  countryCode,
		"phone_number": NormalizePhone(phone),
		"password":     password,
	}
	raw, err := c.do(ctx, http.MethodPost, "/signin", "", nil, body)
	if err != nil {
		return nil, err
	}

	// Token arrives either at the top level or inside data.
	var envelope struct {
		Token string          `json:"token"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("signin response decode: %w", err)
	}
	token := envelope.Token
	user := envelope.Data
	if token == "" && len(envelope.Data) > 0 {
		var inner struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(envelope.Data, &inner)
		token = inner.Token
	}
	if token == "" {
		return nil, fmt.Errorf("signin response has no token")
	}
	if len(user) == 0 {
		user = raw
	}
	return &SignInResult{Token: token, User: user}, nil
}

// Me fetches the current user profile (GET /auth/me).
func (c *Client) Me(ctx context.Context, token string) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data, nil
	}
	return raw, nil
}
