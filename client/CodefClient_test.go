// Copyright 2024-2025 UpwardRight
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	goctx "context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/config"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/crypto"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

func newTestKeyStore(t *testing.T) crypto.KeyStore {
	t.Helper()
	ks, err := crypto.NewKeyStore(t.TempDir())
	require.NoError(t, err)
	return ks
}

func TestVerifyAccountSuccess(t *testing.T) {
	ks := newTestKeyStore(t)

	var received view.BalanceInquiryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(view.BalanceInquiryResponse{
			Result: view.AggregatorResult{Code: view.AggregatorCodeSuccess},
			Data:   view.BalanceInquiryDetails{ConnectedId: "conn-123", AccountBalance: 1500.5},
		})
	}))
	defer server.Close()

	c := NewCodefClient(config.AggregatorConfig{Url: server.URL, Token: "test-token", TimeoutSec: 5}, ks)

	info, err := c.VerifyAccount(goctx.Background(), "0247", "12345678", "pw-secret", "")
	require.NoError(t, err)
	assert.Equal(t, "conn-123", info.ConnectedId)
	assert.Equal(t, 1500.5, info.Balance)

	// the wire carries RSA ciphertext, never the raw password
	assert.NotEqual(t, "pw-secret", received.AccountPassword)
	decrypted, err := ks.Decrypt(received.AccountPassword)
	require.NoError(t, err)
	assert.Equal(t, "pw-secret", decrypted)
}

func TestVerifyAccountKeepsRequestedConnectedId(t *testing.T) {
	ks := newTestKeyStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(view.BalanceInquiryResponse{
			Result: view.AggregatorResult{Code: view.AggregatorCodeSuccess},
			Data:   view.BalanceInquiryDetails{AccountBalance: 10},
		})
	}))
	defer server.Close()

	c := NewCodefClient(config.AggregatorConfig{Url: server.URL, Token: "t", TimeoutSec: 5}, ks)

	info, err := c.VerifyAccount(goctx.Background(), "0247", "12345678", "pw", "existing-conn")
	require.NoError(t, err)
	assert.Equal(t, "existing-conn", info.ConnectedId)
}

func TestVerifyAccountRejectedByAggregator(t *testing.T) {
	ks := newTestKeyStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(view.BalanceInquiryResponse{
			Result: view.AggregatorResult{Code: "CF-12345", Message: "invalid account password"},
		})
	}))
	defer server.Close()

	c := NewCodefClient(config.AggregatorConfig{Url: server.URL, Token: "t", TimeoutSec: 5}, ks)

	_, err := c.VerifyAccount(goctx.Background(), "0247", "12345678", "pw", "")
	require.Error(t, err)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, customError.Status)
	assert.Equal(t, exception.AccountVerificationFailed, customError.Code)
	assert.Contains(t, customError.Error(), "invalid account password")
}

func TestVerifyAccountAggregatorUnreachable(t *testing.T) {
	ks := newTestKeyStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := NewCodefClient(config.AggregatorConfig{Url: server.URL, Token: "t", TimeoutSec: 1}, ks)

	_, err := c.VerifyAccount(goctx.Background(), "0247", "12345678", "pw", "")
	require.Error(t, err)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, customError.Status)
	assert.Equal(t, exception.AggregatorUnavailable, customError.Code)
}

func TestVerifyAccountUnparsableResponse(t *testing.T) {
	ks := newTestKeyStore(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	c := NewCodefClient(config.AggregatorConfig{Url: server.URL, Token: "t", TimeoutSec: 5}, ks)

	_, err := c.VerifyAccount(goctx.Background(), "0247", "12345678", "pw", "")
	require.Error(t, err)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, exception.AggregatorUnavailable, customError.Code)
}
