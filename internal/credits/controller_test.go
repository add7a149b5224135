package credits

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaa-web/internal/api"
)

func f64(v float64) *float64 { return &v }

// fakeGateway serves canned balances and history and records every call.
type fakeGateway struct {
	mu           sync.Mutex
	balances     *api.CreditBalances
	balanceErr   error
	historyPages map[int]*api.CreditHistoryPage
	historyErr   error
	convertErr   error

	balanceCalls int
	historyCalls []int
	converted    []float64
}

func (g *fakeGateway) CreditBalance(ctx context.Context, token string) (*api.CreditBalances, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.balanceCalls++
	if g.balanceErr != nil {
		return nil, g.balanceErr
	}
	return g.balances, nil
}

func (g *fakeGateway) ConvertCredit(ctx context.Context, token string, amount float64) (json.RawMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.converted = append(g.converted, amount)
	if g.convertErr != nil {
		return nil, g.convertErr
	}
	return json.RawMessage(`{"message":"converted"}`), nil
}

func (g *fakeGateway) CreditHistory(ctx context.Context, token string, page int) (*api.CreditHistoryPage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.historyCalls = append(g.historyCalls, page)
	if g.historyErr != nil {
		return nil, g.historyErr
	}
	if p, ok := g.historyPages[page]; ok {
		return p, nil
	}
	return &api.CreditHistoryPage{Page: page, FirstPage: 1, LastPage: page}, nil
}

func TestLoadBalance(t *testing.T) {
	gw := &fakeGateway{balances: &api.CreditBalances{Credit: f64(120), Wallet: f64(30)}}
	ctrl := NewController(gw, "tok")

	require.NoError(t, ctrl.LoadBalance(context.Background()))
	state := ctrl.Snapshot()
	require.NotNil(t, state.Balances)
	assert.Equal(t, 120.0, *state.Balances.Credit)
	assert.Empty(t, state.BalanceErr)
}

func TestLoadBalanceErrorIsReturnedAndRecorded(t *testing.T) {
	gw := &fakeGateway{balanceErr: errors.New("balance unavailable")}
	ctrl := NewController(gw, "tok")

	err := ctrl.LoadBalance(context.Background())
	require.Error(t, err)
	assert.Equal(t, "balance unavailable", ctrl.Snapshot().BalanceErr)
}

func TestLoadHistoryClampsToKnownBounds(t *testing.T) {
	gw := &fakeGateway{historyPages: map[int]*api.CreditHistoryPage{
		1: {Page: 1, FirstPage: 1, LastPage: 3},
		3: {Page: 3, FirstPage: 1, LastPage: 3},
	}}
	ctrl := NewController(gw, "tok")

	require.NoError(t, ctrl.LoadHistory(context.Background(), 1))
	// Known bounds are 1..3 now; a request for page 9 lands on 3.
	require.NoError(t, ctrl.LoadHistory(context.Background(), 9))

	assert.Equal(t, []int{1, 3}, gw.historyCalls)
	assert.Equal(t, 3, ctrl.Snapshot().History.Page)
}

func TestConvertBadAmount(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := NewController(gw, "tok")

	for _, amount := range []string{"", "abc", "0", "-5"} {
		err := ctrl.Convert(context.Background(), amount)
		require.ErrorIs(t, err, ErrBadAmount, "amount %q", amount)
	}
	assert.Empty(t, gw.converted)
	assert.Equal(t, ErrBadAmount.Error(), ctrl.Snapshot().ConvertErr)
}

func TestConvertSuccessRefreshesBalanceAndResetsHistory(t *testing.T) {
	gw := &fakeGateway{
		balances: &api.CreditBalances{Credit: f64(70)},
		historyPages: map[int]*api.CreditHistoryPage{
			1: {Page: 1, FirstPage: 1, LastPage: 2},
			2: {Page: 2, FirstPage: 1, LastPage: 2},
		},
	}
	ctrl := NewController(gw, "tok")
	require.NoError(t, ctrl.LoadHistory(context.Background(), 1))
	require.NoError(t, ctrl.LoadHistory(context.Background(), 2))

	require.NoError(t, ctrl.Convert(context.Background(), "50"))

	assert.Equal(t, []float64{50}, gw.converted)
	assert.Equal(t, 1, gw.balanceCalls)
	// History snapped back to page 1 after the conversion.
	assert.Equal(t, []int{1, 2, 1}, gw.historyCalls)

	state := ctrl.Snapshot()
	assert.Equal(t, 1, state.History.Page)
	assert.False(t, state.Converting)
	assert.Empty(t, state.ConvertErr)
	assert.JSONEq(t, `{"message":"converted"}`, string(state.LastSummary))
}

func TestConvertServerErrorSkipsRefresh(t *testing.T) {
	gw := &fakeGateway{convertErr: errors.New("insufficient credit")}
	ctrl := NewController(gw, "tok")

	err := ctrl.Convert(context.Background(), "50")
	require.Error(t, err)
	assert.Equal(t, "insufficient credit", ctrl.Snapshot().ConvertErr)
	assert.Zero(t, gw.balanceCalls)
	assert.Empty(t, gw.historyCalls)
}
