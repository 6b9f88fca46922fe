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
	"strings"

	"github.com/upwardright/rebalancing-backend/rebalancing-service/entity"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/repository"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	SignUp(req *view.SignUpRequest) (*view.User, error)
	AuthenticateUser(userId string, password string) (*view.User, error)
	GetUser(userId string) (*view.User, error)
	UpgradeMembership(userId string) (*view.User, error)
}

func NewUserService(userRepository repository.UserRepository) UserService {
	return &userServiceImpl{userRepository: userRepository}
}

type userServiceImpl struct {
	userRepository repository.UserRepository
}

func (u userServiceImpl) SignUp(req *view.SignUpRequest) (*view.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	userEntity := entity.MakeUserEntity(req, passwordHash)
	err = u.userRepository.SaveUser(userEntity)
	if err != nil {
		if err == repository.ErrUserAlreadyExists {
			return nil, &exception.CustomError{
				Status:  http.StatusConflict,
				Code:    exception.UserAlreadyExists,
				Message: exception.UserAlreadyExistsMsg,
				Params:  map[string]interface{}{"userId": userEntity.Id},
			}
		}
		return nil, err
	}
	return entity.MakeUserView(userEntity), nil
}

// AuthenticateUser does not distinguish unknown user from wrong password in
// its error, both collapse to invalid credentials.
func (u userServiceImpl) AuthenticateUser(userId string, password string) (*view.User, error) {
	invalidCredentials := &exception.CustomError{
		Status:  http.StatusUnauthorized,
		Code:    exception.InvalidCredentials,
		Message: exception.InvalidCredentialsMsg,
	}

	userEntity, err := u.userRepository.GetUserById(strings.ToLower(userId))
	if err != nil {
		return nil, err
	}
	if userEntity == nil {
		return nil, invalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(userEntity.Password, []byte(password)); err != nil {
		return nil, invalidCredentials
	}
	return entity.MakeUserView(userEntity), nil
}

func (u userServiceImpl) GetUser(userId string) (*view.User, error) {
	userEntity, err := u.userRepository.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if userEntity == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": userId},
		}
	}
	return entity.MakeUserView(userEntity), nil
}

func (u userServiceImpl) UpgradeMembership(userId string) (*view.User, error) {
	userEntity, err := u.userRepository.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if userEntity == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": userId},
		}
	}
	if err := u.userRepository.UpdateMembership(userId, entity.MembershipPaid); err != nil {
		return nil, err
	}
	userEntity.Membership = entity.MembershipPaid
	return entity.MakeUserView(userEntity), nil
}
