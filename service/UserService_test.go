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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/entity"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/repository"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

type fakeUserRepository struct {
	users map[string]entity.UserEntity
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]entity.UserEntity{}}
}

func (f *fakeUserRepository) SaveUser(user *entity.UserEntity) error {
	if _, ok := f.users[user.Id]; ok {
		return repository.ErrUserAlreadyExists
	}
	f.users[user.Id] = *user
	return nil
}

func (f *fakeUserRepository) GetUserById(userId string) (*entity.UserEntity, error) {
	user, ok := f.users[userId]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUserRepository) UpdateMembership(userId string, membership string) error {
	user := f.users[userId]
	user.Membership = membership
	f.users[userId] = user
	return nil
}

func signUpRequest() *view.SignUpRequest {
	return &view.SignUpRequest{
		UserId:      "User@Example.com",
		Password:    "password-123",
		Name:        "Tester",
		PhoneNumber: "010-1234-5678",
	}
}

func TestSignUpStoresLowercasedIdAndHashedPassword(t *testing.T) {
	repo := newFakeUserRepository()
	userService := NewUserService(repo)

	user, err := userService.SignUp(signUpRequest())
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Id)
	assert.Equal(t, entity.MembershipCommon, user.Membership)

	stored := repo.users["user@example.com"]
	assert.NotEqual(t, []byte("password-123"), stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestSignUpDuplicateUser(t *testing.T) {
	userService := NewUserService(newFakeUserRepository())

	_, err := userService.SignUp(signUpRequest())
	require.NoError(t, err)

	_, err = userService.SignUp(signUpRequest())
	require.Error(t, err)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, customError.Status)
	assert.Equal(t, exception.UserAlreadyExists, customError.Code)
}

func TestAuthenticateUser(t *testing.T) {
	userService := NewUserService(newFakeUserRepository())
	_, err := userService.SignUp(signUpRequest())
	require.NoError(t, err)

	user, err := userService.AuthenticateUser("user@example.com", "password-123")
	require.NoError(t, err)
	assert.Equal(t, "Tester", user.Name)

	// mixed-case login resolves to the same user
	_, err = userService.AuthenticateUser("User@Example.com", "password-123")
	assert.NoError(t, err)
}

func TestAuthenticateUserInvalidCredentials(t *testing.T) {
	userService := NewUserService(newFakeUserRepository())
	_, err := userService.SignUp(signUpRequest())
	require.NoError(t, err)

	_, err = userService.AuthenticateUser("user@example.com", "wrong-password")
	require.Error(t, err)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, customError.Status)
	assert.Equal(t, exception.InvalidCredentials, customError.Code)

	// unknown user yields the same error shape
	_, err = userService.AuthenticateUser("nobody@example.com", "password-123")
	require.Error(t, err)
	unknownUserError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, customError.Code, unknownUserError.Code)
}

func TestUpgradeMembership(t *testing.T) {
	userService := NewUserService(newFakeUserRepository())
	_, err := userService.SignUp(signUpRequest())
	require.NoError(t, err)

	user, err := userService.UpgradeMembership("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipPaid, user.Membership)
}

func TestUpgradeMembershipUnknownUser(t *testing.T) {
	userService := NewUserService(newFakeUserRepository())

	_, err := userService.UpgradeMembership("nobody@example.com")
	require.Error(t, err)
	customError, ok := err.(*exception.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, customError.Status)
	assert.Equal(t, exception.UserNotFound, customError.Code)
}
