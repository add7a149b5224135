package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditBalanceFlat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/credits/balance", r.URL.Path)
		w.Write([]byte(`{"credit_balance":150.5,"wallet_balance":20}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	b, err := c.CreditBalance(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, b.Credit)
	require.NotNil(t, b.Wallet)
	assert.Equal(t, 150.5, *b.Credit)
	assert.Equal(t, 20.0, *b.Wallet)
}

func TestCreditBalanceNested(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"credit_balance":10}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	b, err := c.CreditBalance(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, b.Credit)
	assert.Equal(t, 10.0, *b.Credit)
	assert.Nil(t, b.Wallet)
}

func TestCreditBalanceOmittedFieldsStayNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	b, err := c.CreditBalance(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, b.Credit)
	assert.Nil(t, b.Wallet)
}

func TestConvertCreditPostsAmount(t *testing.T) {
	var body map[string]float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/credits/convert", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &body)
		w.Write([]byte(`{"message":"converted"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	raw, err := c.ConvertCredit(context.Background(), "tok", 50)
	require.NoError(t, err)
	assert.Equal(t, 50.0, body["amount"])
	assert.JSONEq(t, `{"message":"converted"}`, string(raw))
}

func TestCreditHistoryShapes(t *testing.T) {
	rows := `[{"type":"conversion","amount":25,"balance_before":100,"balance_after":75,"reference":"ref-1"}]`
	tests := []struct {
		name     string
		body     string
		page     int
		wantRows int
		wantLast int
	}{
		{"bare array", rows, 1, 1, 1},
		{"data wrapper", `{"data":` + rows + `,"last_page":4,"total":31}`, 2, 1, 4},
		{"double nesting", `{"data":{"data":` + rows + `,"lastPage":7}}`, 1, 1, 7},
		{"empty data", `{"last_page":1}`, 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/credits/history", r.URL.Path)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			page, err := c.CreditHistory(context.Background(), "tok", tt.page)
			require.NoError(t, err)
			assert.Len(t, page.Transactions, tt.wantRows)
			assert.Equal(t, tt.wantLast, page.LastPage)
			assert.Equal(t, tt.page, page.Page)
			if tt.wantRows > 0 {
				assert.Equal(t, 25.0, page.Transactions[0].Amount)
				assert.Equal(t, "ref-1", page.Transactions[0].Reference)
			}
		})
	}
}

func TestCreditHistoryClampsPageFloor(t *testing.T) {
	var gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	page, err := c.CreditHistory(context.Background(), "tok", -3)
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
	assert.Equal(t, 1, page.Page)
}
