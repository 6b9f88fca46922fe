package entity

import (
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

// AccountEntity is one brokerage account linked to a user. The composite
// primary key (user_id, account) guarantees a given account number is
// registered at most once per user.
type AccountEntity struct {
	tableName struct{} `pg:"stock_accounts, alias:stock_accounts"`

	UserId       string  `pg:"user_id, pk, type:varchar"`
	Account      string  `pg:"account, pk, type:varchar"`
	Company      string  `pg:"company, type:varchar, notnull"`
	ConnectedId  string  `pg:"connected_id, type:varchar, notnull"`
	Principal    float64 `pg:"principal, type:double precision, use_zero"`
	PrePrincipal float64 `pg:"pre_principal, type:double precision, use_zero"`
}

// ConnectedIdEntity maps a user to a connected identity issued by the
// aggregator. One connected id backs every account opened under the same
// brokerage login, so the pair is inserted at most once.
type ConnectedIdEntity struct {
	tableName struct{} `pg:"user_connected_ids, alias:user_connected_ids"`

	UserId      string `pg:"user_id, pk, type:varchar"`
	ConnectedId string `pg:"connected_id, pk, type:varchar"`
}

func MakeAccountView(ent *AccountEntity) *view.Account {
	return &view.Account{
		UserId:       ent.UserId,
		Account:      ent.Account,
		Company:      ent.Company,
		ConnectedId:  ent.ConnectedId,
		Principal:    ent.Principal,
		PrePrincipal: ent.PrePrincipal,
	}
}
