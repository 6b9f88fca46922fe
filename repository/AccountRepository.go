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
	"errors"

	"github.com/go-pg/pg/v10"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/db"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/entity"
)

var ErrAccountAlreadyLinked = errors.New("account is already linked for this user")

type AccountRepository interface {
	CreateAccountWithConnectedId(account *entity.AccountEntity, connectedId *entity.ConnectedIdEntity) error
	GetAccountsByUserId(userId string) ([]entity.AccountEntity, error)
	GetConnectedIdsByUserId(userId string) ([]entity.ConnectedIdEntity, error)
	AccountExists(userId string, account string) (bool, error)
}

func NewAccountRepository(cp db.ConnectionProvider) AccountRepository {
	return &accountRepositoryImpl{cp: cp}
}

type accountRepositoryImpl struct {
	cp db.ConnectionProvider
}

// CreateAccountWithConnectedId links the account and reconciles the user's
// connected identity in one transaction. The connected id row is inserted
// only when the (user, connectedId) pair is not stored yet, relinking another
// account under the same brokerage login reuses the existing row. The
// composite primary keys back up the in-transaction duplicate check, a
// concurrent insert of the same account loses on the constraint and is
// reported the same way as a plain duplicate.
func (a accountRepositoryImpl) CreateAccountWithConnectedId(account *entity.AccountEntity, connectedId *entity.ConnectedIdEntity) error {
	ctx := a.cp.GetConnection().Context()
	err := a.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		accountCount, err := tx.Model(&entity.AccountEntity{}).
			Where("user_id = ?", account.UserId).
			Where("account = ?", account.Account).
			Count()
		if err != nil {
			return err
		}
		if accountCount > 0 {
			return ErrAccountAlreadyLinked
		}

		connectedIdCount, err := tx.Model(&entity.ConnectedIdEntity{}).
			Where("user_id = ?", connectedId.UserId).
			Where("connected_id = ?", connectedId.ConnectedId).
			Count()
		if err != nil {
			return err
		}
		if connectedIdCount == 0 {
			if _, err := tx.Model(connectedId).Insert(); err != nil {
				return err
			}
		}

		_, err = tx.Model(account).Insert()
		return err
	})
	if err != nil {
		if pgErr, ok := err.(pg.Error); ok && pgErr.IntegrityViolation() {
			return ErrAccountAlreadyLinked
		}
		return err
	}
	return nil
}

func (a accountRepositoryImpl) GetAccountsByUserId(userId string) ([]entity.AccountEntity, error) {
	var accounts []entity.AccountEntity
	err := a.cp.GetConnection().Model(&accounts).
		Where("user_id = ?", userId).
		Order("account ASC").
		Select()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return accounts, nil
}

func (a accountRepositoryImpl) GetConnectedIdsByUserId(userId string) ([]entity.ConnectedIdEntity, error) {
	var connectedIds []entity.ConnectedIdEntity
	err := a.cp.GetConnection().Model(&connectedIds).
		Where("user_id = ?", userId).
		Select()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return connectedIds, nil
}

func (a accountRepositoryImpl) AccountExists(userId string, account string) (bool, error) {
	count, err := a.cp.GetConnection().Model(&entity.AccountEntity{}).
		Where("user_id = ?", userId).
		Where("account = ?", account).
		Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
