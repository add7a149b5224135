package credits

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"kaa-web/internal/api"
	"kaa-web/internal/browse"
)

// Gateway is the slice of the API client the credits screen needs.
type Gateway interface {
	CreditBalance(ctx context.Context, token string) (*api.CreditBalances, error)
	ConvertCredit(ctx context.Context, token string, amount float64) (json.RawMessage, error)
	CreditHistory(ctx context.Context, token string, page int) (*api.CreditHistoryPage, error)
}

// Controller composes the two independent reads of the profile screen (balance
// and history) with the convert action. Each concern keeps its own loading
// flag and inline error.
type Controller struct {
	mu    sync.Mutex
	api   Gateway
	token string

	balances   *api.CreditBalances
	balanceErr string

	history    *api.CreditHistoryPage
	historyErr string

	converting  bool
	convertErr  string
	lastSummary json.RawMessage
}

// NewController binds the screen to a session token.
func NewController(gw Gateway, token string) *Controller {
	return &Controller{api: gw, token: token}
}

// State is a render-ready snapshot.
type State struct {
	Balances    *api.CreditBalances
	BalanceErr  string
	History     *api.CreditHistoryPage
	HistoryErr  string
	Converting  bool
	ConvertErr  string
	LastSummary json.RawMessage
}

// Snapshot copies the current state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Balances:    c.balances,
		BalanceErr:  c.balanceErr,
		History:     c.history,
		HistoryErr:  c.historyErr,
		Converting:  c.converting,
		ConvertErr:  c.convertErr,
		LastSummary: c.lastSummary,
	}
}

// LoadBalance refetches the two balances. The error is both returned and kept
// as the screen's inline message.
func (c *Controller) LoadBalance(ctx context.Context) error {
	balances, err := c.api.CreditBalance(ctx, c.token)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.balanceErr = err.Error()
		return err
	}
	c.balances = balances
	c.balanceErr = ""
	return nil
}

// LoadHistory refetches one history page wholesale, clamped to the bounds the
// server last reported.
func (c *Controller) LoadHistory(ctx context.Context, page int) error {
	c.mu.Lock()
	first, last := 1, page
	if c.history != nil {
		first, last = c.history.FirstPage, c.history.LastPage
	}
	page = browse.ClampPage(page, first, last)
	c.mu.Unlock()

	history, err := c.api.CreditHistory(ctx, c.token, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.historyErr = err.Error()
		return err
	}
	c.history = history
	c.historyErr = ""
	return nil
}

// ErrBadAmount is the local validation failure for the convert form.
var ErrBadAmount = errors.New("Enter a valid amount greater than 0")

// Convert parses and submits a conversion, then unconditionally refetches the
// balance and resets history to page 1 — whichever page the user was on, the
// screen snaps back to the most recent transactions.
func (c *Controller) Convert(ctx context.Context, amount string) error {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || value <= 0 {
		c.mu.Lock()
		c.convertErr = ErrBadAmount.Error()
		c.mu.Unlock()
		return ErrBadAmount
	}

	c.mu.Lock()
	c.converting = true
	c.convertErr = ""
	c.mu.Unlock()

	summary, convErr := c.api.ConvertCredit(ctx, c.token, value)

	c.mu.Lock()
	c.converting = false
	if convErr != nil {
		c.convertErr = convErr.Error()
		c.mu.Unlock()
		return convErr
	}
	c.lastSummary = summary
	c.mu.Unlock()

	_ = c.LoadBalance(ctx)
	_ = c.LoadHistory(ctx, 1)
	return nil
}
