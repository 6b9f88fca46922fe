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

package controller

import (
	"net/http"

	"github.com/upwardright/rebalancing-backend/rebalancing-service/context"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/service"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/utils"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

type AccountController interface {
	AddStockAccount(w http.ResponseWriter, r *http.Request)
	ShowStockAccounts(w http.ResponseWriter, r *http.Request)
	GetAccountStock(w http.ResponseWriter, r *http.Request)
}

func NewAccountController(accountService service.AccountService) AccountController {
	return &accountControllerImpl{accountService: accountService}
}

type accountControllerImpl struct {
	accountService service.AccountService
}

func (a accountControllerImpl) AddStockAccount(w http.ResponseWriter, r *http.Request) {
	securityContext := context.Create(r)

	var req view.AddAccountRequest
	if customError := decodeAndValidate(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}

	response, err := a.accountService.AddAccount(r.Context(), securityContext.GetUserId(), &req)
	if err != nil {
		utils.RespondWithError(w, "Failed to link stock account", err)
		return
	}

	utils.RespondWithJson(w, http.StatusOK, response)
}

func (a accountControllerImpl) ShowStockAccounts(w http.ResponseWriter, r *http.Request) {
	securityContext := context.Create(r)

	accounts, err := a.accountService.GetAccounts(securityContext.GetUserId())
	if err != nil {
		utils.RespondWithError(w, "Failed to list stock accounts", err)
		return
	}

	utils.RespondWithJson(w, http.StatusOK, accounts)
}

// GetAccountStock returns the connected ids behind the user's linked
// accounts. Kept as a POST to preserve the original client contract.
func (a accountControllerImpl) GetAccountStock(w http.ResponseWriter, r *http.Request) {
	securityContext := context.Create(r)

	connectedIds, err := a.accountService.GetConnectedIds(securityContext.GetUserId())
	if err != nil {
		utils.RespondWithError(w, "Failed to get connected ids", err)
		return
	}

	utils.RespondWithJson(w, http.StatusOK, map[string]interface{}{"connectedIds": connectedIds})
}
