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
	"bytes"
	goctx "context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/config"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/crypto"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/metrics"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

const balanceInquiryPath = "/v1/kr/stock/a/account/balance-inquiry"

// AggregatorClient verifies brokerage account ownership against the external
// account aggregator. A successful call proves the user controls the account
// and yields the aggregator-side connected identity plus the current balance.
type AggregatorClient interface {
	VerifyAccount(ctx goctx.Context, organization string, account string, accountPassword string, connectedId string) (*view.AccountInfo, error)
}

func NewCodefClient(cfg config.AggregatorConfig, keyStore crypto.KeyStore) AggregatorClient {
	return &codefClientImpl{
		cfg:      cfg,
		keyStore: keyStore,
		client:   &http.Client{Timeout: time.Second * time.Duration(cfg.TimeoutSec)},
	}
}

type codefClientImpl struct {
	cfg      config.AggregatorConfig
	keyStore crypto.KeyStore
	client   *http.Client
}

// VerifyAccount performs a single balance inquiry. The account password only
// ever travels encrypted with the public key from the key store; the plaintext
// is never logged and never leaves this process unencrypted. The call is not
// retried, a flaky aggregator surfaces as AggregatorUnavailable and the user
// decides whether to try again.
func (c codefClientImpl) VerifyAccount(ctx goctx.Context, organization string, account string, accountPassword string, connectedId string) (*view.AccountInfo, error) {
	encryptedPassword, err := c.keyStore.Encrypt(accountPassword)
	if err != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusInternalServerError,
			Code:    exception.CredentialEncryptionFailed,
			Message: exception.CredentialEncryptionFailedMsg,
			Debug:   err.Error(),
		}
	}

	request := view.BalanceInquiryRequest{
		Organization:    organization,
		ConnectedId:     connectedId,
		Account:         account,
		AccountPassword: encryptedPassword,
		Id:              "rebalancing-service",
		TransactionId:   uuid.NewString(),
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal balance inquiry request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Url+balanceInquiryPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build balance inquiry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.AggregatorCallDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	if err != nil {
		log.Errorf("Balance inquiry call failed: %v", err)
		return nil, &exception.CustomError{
			Status:  http.StatusServiceUnavailable,
			Code:    exception.AggregatorUnavailable,
			Message: exception.AggregatorUnavailableMsg,
			Debug:   err.Error(),
		}
	}
	defer resp.Body.Close()

	inquiry, err := decodeBalanceInquiryResponse(resp.Body)
	if err != nil {
		log.Errorf("Failed to decode balance inquiry response: %v", err)
		return nil, &exception.CustomError{
			Status:  http.StatusServiceUnavailable,
			Code:    exception.AggregatorUnavailable,
			Message: exception.AggregatorUnavailableMsg,
			Debug:   err.Error(),
		}
	}

	if inquiry.Result.Code != view.AggregatorCodeSuccess {
		log.Debugf("Account verification rejected for organization %s: %s - %s", organization, inquiry.Result.Code, inquiry.Result.Message)
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.AccountVerificationFailed,
			Message: exception.AccountVerificationFailedMsg,
			Params:  map[string]interface{}{"reason": inquiry.Result.Message},
		}
	}

	resolvedConnectedId := inquiry.Data.ConnectedId
	if resolvedConnectedId == "" {
		resolvedConnectedId = connectedId
	}
	return &view.AccountInfo{
		ConnectedId: resolvedConnectedId,
		Balance:     inquiry.Data.AccountBalance,
	}, nil
}

// The aggregator url-encodes its JSON payload, so the body is unescaped
// before parsing.
func decodeBalanceInquiryResponse(body io.Reader) (*view.BalanceInquiryResponse, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	decoded, err := url.QueryUnescape(string(raw))
	if err != nil {
		return nil, err
	}
	var inquiry view.BalanceInquiryResponse
	if err := json.Unmarshal([]byte(decoded), &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}
