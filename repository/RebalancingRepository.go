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

package repository

import (
	"github.com/go-pg/pg/v10"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/db"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/entity"
)

type RebalancingRepository interface {
	SaveRecord(record *entity.RebalancingRecordEntity) error
	SaveStocks(stocks []entity.RebalancingStockEntity) error
	GetRecordsByUserId(userId string, account string) ([]entity.RebalancingRecordEntity, error)
	GetRecordById(userId string, recordId int64) (*entity.RebalancingRecordEntity, error)
	GetStocksByRecordId(recordId int64) ([]entity.RebalancingStockEntity, error)
}

func NewRebalancingRepository(cp db.ConnectionProvider) RebalancingRepository {
	return &rebalancingRepositoryImpl{cp: cp}
}

type rebalancingRepositoryImpl struct {
	cp db.ConnectionProvider
}

// SaveRecord inserts the record and fills the generated record id back into
// the entity.
func (r rebalancingRepositoryImpl) SaveRecord(record *entity.RebalancingRecordEntity) error {
	_, err := r.cp.GetConnection().Model(record).Returning("record_id").Insert()
	return err
}

func (r rebalancingRepositoryImpl) SaveStocks(stocks []entity.RebalancingStockEntity) error {
	if len(stocks) == 0 {
		return nil
	}
	_, err := r.cp.GetConnection().Model(&stocks).Insert()
	return err
}

func (r rebalancingRepositoryImpl) GetRecordsByUserId(userId string, account string) ([]entity.RebalancingRecordEntity, error) {
	var records []entity.RebalancingRecordEntity
	query := r.cp.GetConnection().Model(&records).
		Where("user_id = ?", userId).
		Order("record_date DESC")
	if account != "" {
		query.Where("account = ?", account)
	}
	err := query.Select()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

func (r rebalancingRepositoryImpl) GetRecordById(userId string, recordId int64) (*entity.RebalancingRecordEntity, error) {
	record := new(entity.RebalancingRecordEntity)
	err := r.cp.GetConnection().Model(record).
		Where("user_id = ?", userId).
		Where("record_id = ?", recordId).
		First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (r rebalancingRepositoryImpl) GetStocksByRecordId(recordId int64) ([]entity.RebalancingStockEntity, error) {
	var stocks []entity.RebalancingStockEntity
	err := r.cp.GetConnection().Model(&stocks).
		Where("record_id = ?", recordId).
		Order("id ASC").
		Select()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return stocks, nil
}
