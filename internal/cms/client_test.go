package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.Get(context.Background(), PathUsersMe, "jwt-token")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Bearer jwt-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClientEmptyTokenShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.Get(context.Background(), PathCustomers, "")
	require.NoError(t, err)

	assert.False(t, called, "no network call without a credential")
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "No hay sesión activa", res.Message)
}

func TestClientPostPublicNeedsNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"jwt":"abc"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.PostPublic(context.Background(), PathAuthLocal, map[string]string{"identifier": "a@b.com"})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestClientNormalizesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"status":400,"name":"ValidationError","message":"Email already taken"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.Post(context.Background(), PathAuthLocalRegister, "key", nil)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Email already taken", res.Message)
}

func TestClientNormalizesBareError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.Get(context.Background(), PathAccounts, "jwt")
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, http.StatusBadGateway, res.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), res.Message)
}

func TestClientUnwrapsDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"documentId":"abc123","amount":5}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.Get(context.Background(), PathAccounts+"/abc123", "jwt")
	require.NoError(t, err)

	var account struct {
		DocumentID string  `json:"documentId"`
		Amount     float64 `json:"amount"`
	}
	require.NoError(t, res.Decode(&account))
	assert.Equal(t, "abc123", account.DocumentID)
	assert.Equal(t, 5.0, account.Amount)
}

func TestClientPassesBareArraysThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"username":"jdoe"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.Get(context.Background(), PathUsers, "key")
	require.NoError(t, err)

	var users []struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, res.Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, "jdoe", users[0].Username)
}

func TestClientTransportFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(srv.URL, "")
	res, err := c.Get(context.Background(), PathCustomers, "jwt")
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestResultDecodeEmptyPayload(t *testing.T) {
	res := &Result{Success: true}
	var v map[string]interface{}
	assert.Error(t, res.Decode(&v))
}
