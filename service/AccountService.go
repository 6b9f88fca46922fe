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

	log "github.com/sirupsen/logrus"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/client"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/entity"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/metrics"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/repository"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

type AccountService interface {
	AddAccount(ctx goctx.Context, userId string, req *view.AddAccountRequest) (*view.AddAccountResponse, error)
	GetAccounts(userId string) ([]view.Account, error)
	GetConnectedIds(userId string) ([]string, error)
}

func NewAccountService(accountRepository repository.AccountRepository, aggregatorClient client.AggregatorClient) AccountService {
	return &accountServiceImpl{
		accountRepository: accountRepository,
		aggregatorClient:  aggregatorClient,
	}
}

type accountServiceImpl struct {
	accountRepository repository.AccountRepository
	aggregatorClient  client.AggregatorClient
}

// AddAccount verifies account ownership with the aggregator and links the
// account to the user. If the user already has a connected id, it is passed
// along so the aggregator reuses the existing brokerage connection; the
// connected id returned by the aggregator is authoritative either way. The
// external call happens before the insert, so a duplicate submitted
// concurrently can reach the aggregator twice, the transactional insert still
// admits only one row.
func (a accountServiceImpl) AddAccount(ctx goctx.Context, userId string, req *view.AddAccountRequest) (*view.AddAccountResponse, error) {
	exists, err := a.accountRepository.AccountExists(userId, req.Account)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.AccountLinkTotal.WithLabelValues(metrics.LinkResultDuplicate).Inc()
		return nil, &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.AccountAlreadyLinked,
			Message: exception.AccountAlreadyLinkedMsg,
			Params:  map[string]interface{}{"account": req.Account},
		}
	}

	existingConnectedId := ""
	connectedIds, err := a.accountRepository.GetConnectedIdsByUserId(userId)
	if err != nil {
		return nil, err
	}
	if len(connectedIds) > 0 {
		existingConnectedId = connectedIds[0].ConnectedId
	}

	accountInfo, err := a.aggregatorClient.VerifyAccount(ctx, req.Company, req.Account, req.AccountPassword, existingConnectedId)
	if err != nil {
		metrics.AccountLinkTotal.WithLabelValues(metrics.LinkResultVerificationFailed).Inc()
		return nil, err
	}

	principal := accountInfo.Balance
	if principal < 0 {
		principal = 0
	}
	accountEntity := &entity.AccountEntity{
		UserId:       userId,
		Account:      req.Account,
		Company:      req.Company,
		ConnectedId:  accountInfo.ConnectedId,
		Principal:    principal,
		PrePrincipal: principal,
	}
	connectedIdEntity := &entity.ConnectedIdEntity{
		UserId:      userId,
		ConnectedId: accountInfo.ConnectedId,
	}

	err = a.accountRepository.CreateAccountWithConnectedId(accountEntity, connectedIdEntity)
	if err != nil {
		if err == repository.ErrAccountAlreadyLinked {
			metrics.AccountLinkTotal.WithLabelValues(metrics.LinkResultDuplicate).Inc()
			return nil, &exception.CustomError{
				Status:  http.StatusConflict,
				Code:    exception.AccountAlreadyLinked,
				Message: exception.AccountAlreadyLinkedMsg,
				Params:  map[string]interface{}{"account": req.Account},
			}
		}
		metrics.AccountLinkTotal.WithLabelValues(metrics.LinkResultError).Inc()
		return nil, err
	}

	metrics.AccountLinkTotal.WithLabelValues(metrics.LinkResultSuccess).Inc()
	log.Infof("Linked account for user %s at %s", userId, req.Company)
	return &view.AddAccountResponse{
		Message:     "account linked",
		Account:     accountEntity.Account,
		Company:     accountEntity.Company,
		ConnectedId: accountEntity.ConnectedId,
		Success:     true,
	}, nil
}

func (a accountServiceImpl) GetAccounts(userId string) ([]view.Account, error) {
	entities, err := a.accountRepository.GetAccountsByUserId(userId)
	if err != nil {
		return nil, err
	}
	accounts := make([]view.Account, 0, len(entities))
	for i := range entities {
		accounts = append(accounts, *entity.MakeAccountView(&entities[i]))
	}
	return accounts, nil
}

func (a accountServiceImpl) GetConnectedIds(userId string) ([]string, error) {
	entities, err := a.accountRepository.GetConnectedIdsByUserId(userId)
	if err != nil {
		return nil, err
	}
	connectedIds := make([]string, 0, len(entities))
	for _, ent := range entities {
		connectedIds = append(connectedIds, ent.ConnectedId)
	}
	return connectedIds, nil
}
