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

var ErrUserAlreadyExists = errors.New("user with such id already exists")

type UserRepository interface {
	SaveUser(user *entity.UserEntity) error
	GetUserById(userId string) (*entity.UserEntity, error)
	UpdateMembership(userId string, membership string) error
}

func NewUserRepository(cp db.ConnectionProvider) UserRepository {
	return &userRepositoryImpl{cp: cp}
}

type userRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (u userRepositoryImpl) SaveUser(user *entity.UserEntity) error {
	_, err := u.cp.GetConnection().Model(user).Insert()
	if err != nil {
		if pgErr, ok := err.(pg.Error); ok && pgErr.IntegrityViolation() {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (u userRepositoryImpl) GetUserById(userId string) (*entity.UserEntity, error) {
	user := new(entity.UserEntity)
	err := u.cp.GetConnection().Model(user).Where("user_id = ?", userId).First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (u userRepositoryImpl) UpdateMembership(userId string, membership string) error {
	_, err := u.cp.GetConnection().Model(&entity.UserEntity{}).
		Set("membership = ?", membership).
		Where("user_id = ?", userId).
		Update()
	return err
}
