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
	"strconv"

	"github.com/upwardright/rebalancing-backend/rebalancing-service/context"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/service"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/utils"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

type RebalancingController interface {
	SaveRebalancing(w http.ResponseWriter, r *http.Request)
	SaveRebalancingStocks(w http.ResponseWriter, r *http.Request)
	GetRebalancings(w http.ResponseWriter, r *http.Request)
	GetRebalancingStocks(w http.ResponseWriter, r *http.Request)
}

func NewRebalancingController(rebalancingService service.RebalancingService) RebalancingController {
	return &rebalancingControllerImpl{rebalancingService: rebalancingService}
}

type rebalancingControllerImpl struct {
	rebalancingService service.RebalancingService
}

func (c rebalancingControllerImpl) SaveRebalancing(w http.ResponseWriter, r *http.Request) {
	securityContext := context.Create(r)

	var req view.SaveRebalancingRequest
	if customError := decodeAndValidate(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}

	record, err := c.rebalancingService.SaveRecord(securityContext.GetUserId(), &req)
	if err != nil {
		utils.RespondWithError(w, "Failed to save rebalancing record", err)
		return
	}

	utils.RespondWithJson(w, http.StatusCreated, record)
}

func (c rebalancingControllerImpl) SaveRebalancingStocks(w http.ResponseWriter, r *http.Request) {
	securityContext := context.Create(r)

	var req view.SaveRebalancingStocksRequest
	if customError := decodeAndValidate(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}

	if err := c.rebalancingService.SaveStocks(securityContext.GetUserId(), &req); err != nil {
		utils.RespondWithError(w, "Failed to save rebalancing stocks", err)
		return
	}

	utils.RespondWithJson(w, http.StatusCreated, map[string]interface{}{"saved": len(req.Stocks)})
}

func (c rebalancingControllerImpl) GetRebalancings(w http.ResponseWriter, r *http.Request) {
	securityContext := context.Create(r)
	account := r.URL.Query().Get("account")

	records, err := c.rebalancingService.GetRecords(securityContext.GetUserId(), account)
	if err != nil {
		utils.RespondWithError(w, "Failed to list rebalancing records", err)
		return
	}

	utils.RespondWithJson(w, http.StatusOK, records)
}

func (c rebalancingControllerImpl) GetRebalancingStocks(w http.ResponseWriter, r *http.Request) {
	securityContext := context.Create(r)

	recordId, err := strconv.ParseInt(getStringParam(r, "recordId"), 10, 64)
	if err != nil {
		utils.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "recordId"},
		})
		return
	}

	stocks, err := c.rebalancingService.GetStocks(securityContext.GetUserId(), recordId)
	if err != nil {
		utils.RespondWithError(w, "Failed to list rebalancing stocks", err)
		return
	}

	utils.RespondWithJson(w, http.StatusOK, stocks)
}
