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

package service

import (
	goctx "context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/entity"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/repository"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

type fakeAccountRepository struct {
	mu           sync.Mutex
	accounts     map[string]entity.AccountEntity
	connectedIds map[string]entity.ConnectedIdEntity
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		accounts:     map[string]entity.AccountEntity{},
		connectedIds: map[string]entity.ConnectedIdEntity{},
	}
}

func (f *fakeAccountRepository) CreateAccountWithConnectedId(account *entity.AccountEntity, connectedId *entity.ConnectedIdEntity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	accountKey := account.UserId + "/" + account.Account
	if _, ok := f.accounts[accountKey]; ok {
		return repository.ErrAccountAlreadyLinked
	}
	connectedIdKey := connectedId.UserId + "/" + connectedId.ConnectedId
	if _, ok := f.connectedIds[connectedIdKey]; !ok {
		f.connectedIds[connectedIdKey] = *connectedId
	}
	f.accounts[accountKey] = *account
	return nil
}

func (f *fakeAccountRepository) GetAccountsByUserId(userId string) ([]entity.AccountEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []entity.AccountEntity
	for _, ent := range f.accounts {
		if ent.UserId == userId {
			result = append(result, ent)
		}
	}
	return result, nil
}

func (f *fakeAccountRepository) GetConnectedIdsByUserId(userId string) ([]entity.ConnectedIdEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []entity.ConnectedIdEntity
	for _, ent := range f.connectedIds {
		if ent.UserId == userId {
			result = append(result, ent)
		}
	}
	return result, nil
}

func (f *fakeAccountRepository) AccountExists(userId string, account string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[userId+"/"+account]
	return ok, nil
}

type fakeAggregatorClient struct {
	connectedId string
	balance     float64
	err         error
	calls       int
}

func (f *fakeAggregatorClient) VerifyAccount(ctx goctx.Context, organization string, account string, accountPassword string, connectedId string) (*view.AccountInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	resolved := f.connectedId
	if resolved == "" {
		resolved = connectedId
	}
	return &view.AccountInfo{ConnectedId: resolved, Balance: f.balance}, nil
}

func TestAddAccountLinksVerifiedAccount(t *testing.T) {
	repo := newFakeAccountRepository()
	aggregator := &fakeAggregatorClient{connectedId: "conn-1", balance: 2500}
	accountService := NewAccountService(repo, aggregator)

	response, err := accountService.AddAccount(goctx.Background(), "u1", &view.AddAccountRequest{
		Account: "A100", Company: "0247", AccountPassword: "pw",
	})
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "conn-1", response.ConnectedId)

	accounts, err := accountService.GetAccounts("u1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, 2500.0, accounts[0].Principal)
	assert.Equal(t, 2500.0, accounts[0].PrePrincipal)
}

func TestAddAccountReusesConnectedIdForSecondAccount(t *testing.T) {
	repo := newFakeAccountRepository()
	aggregator := &fakeAggregatorClient{connectedId: "conn-1", balance: 100}
	accountService := NewAccountService(repo, aggregator)

	_, err := accountService.AddAccount(goctx.Background(), "u1", &view.AddAccountRequest{
		Account: "A100", Company: "0247", AccountPassword: "pw",
	})
	require.NoError(t, err)

	_, err = accountService.AddAccount(goctx.Background(), "u1", &view.AddAccountRequest{
		Account: "A200", Company: "0247", AccountPassword: "pw",
	})
	require.NoError(t, err)

	// both accounts share one connected id row
	connectedIds, err := repo.GetConnectedIdsByUserId("u1")
	require.NoError(t, err)
	assert.Len(t, connectedIds, 1)

	accounts, err := accountService.GetAccounts("u1")
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestAddAccountDuplicateIsRejectedWithoutAggregatorCall(t *testing.T) {
	repo := newFakeAccountRepository()
	aggregator := &fakeAggregatorClient{connectedId: "conn-1", balance: 100}
	accountService := NewAccountService(repo, aggregator)

	_, err := accountService.AddAccount(goctx.Background(), "u1", &view.AddAccountRequest{
		Account: "A100", Company: "0247", AccountPassword: "pw",
	})
	require.NoError(t, err)
	require.Equal(t, 1, aggregator.calls)

	_, err = accountService.AddAccount(goctx.Background(), "u1", &view.AddAccountRequest{
		Account: "A100", Company: "0247", AccountPassword: "pw",
	})
	require.Error(t, err)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, customError.Status)
	assert.Equal(t, exception.AccountAlreadyLinked, customError.Code)
	assert.Equal(t, 1, aggregator.calls)
}

func TestAddAccountConcurrentDuplicateAdmitsExactlyOne(t *testing.T) {
	repo := newFakeAccountRepository()
	aggregator := &fakeAggregatorClient{connectedId: "conn-1", balance: 100}
	accountService := NewAccountService(repo, aggregator)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = accountService.AddAccount(goctx.Background(), "u1", &view.AddAccountRequest{
				Account: "A100", Company: "0247", AccountPassword: "pw",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		customError, ok := err.(*exception.CustomError)
		require.True(t, ok)
		assert.Equal(t, exception.AccountAlreadyLinked, customError.Code)
	}
	assert.Equal(t, 1, succeeded)

	accounts, err := accountService.GetAccounts("u1")
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestAddAccountVerificationFailurePropagates(t *testing.T) {
	verificationError := &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.AccountVerificationFailed,
		Message: exception.AccountVerificationFailedMsg,
		Params:  map[string]interface{}{"reason": "wrong password"},
	}
	repo := newFakeAccountRepository()
	accountService := NewAccountService(repo, &fakeAggregatorClient{err: verificationError})

	_, err := accountService.AddAccount(goctx.Background(), "u1", &view.AddAccountRequest{
		Account: "A100", Company: "0247", AccountPassword: "pw",
	})
	assert.Equal(t, verificationError, err)

	// nothing is persisted when verification fails
	accounts, repoErr := accountService.GetAccounts("u1")
	require.NoError(t, repoErr)
	assert.Empty(t, accounts)
}

func TestAddAccountClampsNegativeBalance(t *testing.T) {
	repo := newFakeAccountRepository()
	accountService := NewAccountService(repo, &fakeAggregatorClient{connectedId: "conn-1", balance: -250})

	_, err := accountService.AddAccount(goctx.Background(), "u1", &view.AddAccountRequest{
		Account: "A100", Company: "0247", AccountPassword: "pw",
	})
	require.NoError(t, err)

	accounts, err := accountService.GetAccounts("u1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, 0.0, accounts[0].Principal)
}
