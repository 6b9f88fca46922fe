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
	"net/http"
	"time"

	"github.com/upwardright/rebalancing-backend/rebalancing-service/entity"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/repository"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

const (
	stockRegionDomestic = 0
	stockRegionOverseas = 1
)

type RebalancingService interface {
	SaveRecord(userId string, req *view.SaveRebalancingRequest) (*view.RebalancingRecord, error)
	SaveStocks(userId string, req *view.SaveRebalancingStocksRequest) error
	GetRecords(userId string, account string) ([]view.RebalancingRecord, error)
	GetStocks(userId string, recordId int64) ([]view.RebalancingStock, error)
}

func NewRebalancingService(rebalancingRepository repository.RebalancingRepository) RebalancingService {
	return &rebalancingServiceImpl{rebalancingRepository: rebalancingRepository}
}

type rebalancingServiceImpl struct {
	rebalancingRepository repository.RebalancingRepository
}

func (r rebalancingServiceImpl) SaveRecord(userId string, req *view.SaveRebalancingRequest) (*view.RebalancingRecord, error) {
	record := &entity.RebalancingRecordEntity{
		UserId:       userId,
		Account:      req.Account,
		RecordDate:   time.Now(),
		TotalBalance: req.TotalBalance,
		RecordName:   req.RecordName,
		Memo:         req.Memo,
		ProfitRate:   req.ProfitRate,
	}
	if err := r.rebalancingRepository.SaveRecord(record); err != nil {
		return nil, err
	}
	return entity.MakeRebalancingRecordView(record), nil
}

func (r rebalancingServiceImpl) SaveStocks(userId string, req *view.SaveRebalancingStocksRequest) error {
	record, err := r.rebalancingRepository.GetRecordById(userId, req.RecordId)
	if err != nil {
		return err
	}
	if record == nil {
		return &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.RecordNotFound,
			Message: exception.RecordNotFoundMsg,
			Params:  map[string]interface{}{"recordId": req.RecordId},
		}
	}

	stocks := make([]entity.RebalancingStockEntity, 0, len(req.Stocks))
	for _, stock := range req.Stocks {
		stocks = append(stocks, entity.RebalancingStockEntity{
			RecordId:          req.RecordId,
			StockName:         stock.StockName,
			ExpertPer:         stock.ExpertPer,
			MarketOrder:       stock.MarketOrder,
			Rate:              stock.Rate,
			Nos:               stock.Nos,
			Won:               stock.Won,
			Dollar:            stock.Dollar,
			RebalancingDollar: stock.RebalancingDollar,
			StockRegion:       determineStockRegion(stock.MarketType),
		})
	}
	return r.rebalancingRepository.SaveStocks(stocks)
}

func (r rebalancingServiceImpl) GetRecords(userId string, account string) ([]view.RebalancingRecord, error) {
	entities, err := r.rebalancingRepository.GetRecordsByUserId(userId, account)
	if err != nil {
		return nil, err
	}
	records := make([]view.RebalancingRecord, 0, len(entities))
	for i := range entities {
		records = append(records, *entity.MakeRebalancingRecordView(&entities[i]))
	}
	return records, nil
}

func (r rebalancingServiceImpl) GetStocks(userId string, recordId int64) ([]view.RebalancingStock, error) {
	record, err := r.rebalancingRepository.GetRecordById(userId, recordId)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.RecordNotFound,
			Message: exception.RecordNotFoundMsg,
			Params:  map[string]interface{}{"recordId": recordId},
		}
	}
	entities, err := r.rebalancingRepository.GetStocksByRecordId(recordId)
	if err != nil {
		return nil, err
	}
	stocks := make([]view.RebalancingStock, 0, len(entities))
	for i := range entities {
		stocks = append(stocks, *entity.MakeRebalancingStockView(&entities[i]))
	}
	return stocks, nil
}

// Korean exchanges mark the stock as domestic, everything else counts as
// overseas.
func determineStockRegion(marketType string) int {
	switch marketType {
	case "KOSPI", "KOSDAQ", "KONEX":
		return stockRegionDomestic
	default:
		return stockRegionOverseas
	}
}
