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

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"08012345678", "2348012345678"},  // leading zero, 11 digits
		{"8012345678", "2348012345678"},   // bare 10 digits
		{"2348012345678", "2348012345678"}, // already international
		{"+2348012345678", "+2348012345678"},
		{"0801234567", "0801234567"}, // too short for the local form
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestSignInSendsNormalizedPhone(t *testing.T) {
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/signin", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &body)
		w.Write([]byte(`{"token":"t1","data":{"user":{"first_name":"Ada"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.SignIn(context.Background(), "NG", "08012345678", "secret")
	require.NoError(t, err)
	assert.Equal(t, "2348012345678", body["phone_number"])
	assert.Equal(t, "NG", body["countryCode"])
	assert.Equal(t, "t1", res.Token)
	assert.JSONEq(t, `{"user":{"first_name":"Ada"}}`, string(res.User))
}

func TestSignInTokenInsideData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"token":"nested-token","user":{"id":7}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.SignIn(context.Background(), "NG", "8012345678", "pw")
	require.NoError(t, err)
	assert.Equal(t, "nested-token", res.Token)
}

func TestSignInWithoutTokenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"id":7}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SignIn(context.Background(), "NG", "8012345678", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}

func TestSignInBadCredentialsSurfaceMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid phone number or password"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SignIn(context.Background(), "NG", "8012345678", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid phone number or password", err.Error())
}

func TestMeUnwrapsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"first_name":"Ada"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	raw, err := c.Me(context.Background(), "t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name":"Ada"}`, string(raw))
}

func TestMeFlatBodyPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"first_name":"Ada"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	raw, err := c.Me(context.Background(), "t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name":"Ada"}`, string(raw))
}
