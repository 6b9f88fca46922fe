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

package db

import (
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/entity"
)

// EnsureSchema creates the tables if they do not exist yet. The composite
// primary keys on stock_accounts(user_id, account) and
// user_connected_ids(user_id, connected_id) are the storage-level backstop for
// the duplicate-link invariants.
func EnsureSchema(cp ConnectionProvider) error {
	models := []interface{}{
		(*entity.UserEntity)(nil),
		(*entity.ConnectedIdEntity)(nil),
		(*entity.AccountEntity)(nil),
		(*entity.RebalancingRecordEntity)(nil),
		(*entity.RebalancingStockEntity)(nil),
	}

	conn := cp.GetConnection()
	for _, model := range models {
		err := conn.Model(model).CreateTable(&orm.CreateTableOptions{
			IfNotExists:   true,
			FKConstraints: false,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create database schema")
		}
	}
	return nil
}
