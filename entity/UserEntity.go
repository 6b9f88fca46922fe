package entity

import (
	"strings"

	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

const (
	MembershipCommon = "COMMON_USER"
	MembershipPaid   = "MEMBERSHIP_USER"
)

type UserEntity struct {
	tableName struct{} `pg:"users, alias:users"`

	Id          string `pg:"user_id, pk, type:varchar"`
	Password    []byte `pg:"password, type:bytea"`
	Name        string `pg:"name, type:varchar"`
	PhoneNumber string `pg:"phone_number, type:varchar"`
	Membership  string `pg:"membership, type:varchar"`
}

func MakeUserView(userEntity *UserEntity) *view.User {
	return &view.User{
		Id:          userEntity.Id,
		Name:        userEntity.Name,
		PhoneNumber: userEntity.PhoneNumber,
		Membership:  userEntity.Membership,
	}
}

func MakeUserEntity(req *view.SignUpRequest, passwordHash []byte) *UserEntity {
	return &UserEntity{
		Id:          strings.ToLower(req.UserId),
		Password:    passwordHash,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Membership:  MembershipCommon,
	}
}
