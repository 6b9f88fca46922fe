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

	"github.com/upwardright/rebalancing-backend/rebalancing-service/security"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/service"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/utils"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

type LoginController interface {
	Login(w http.ResponseWriter, r *http.Request)
}

func NewLoginController(userService service.UserService) LoginController {
	return &loginControllerImpl{userService: userService}
}

type loginControllerImpl struct {
	userService service.UserService
}

func (l loginControllerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req view.LoginRequest
	if customError := decodeAndValidate(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}

	user, err := l.userService.AuthenticateUser(req.UserId, req.Password)
	if err != nil {
		utils.RespondWithError(w, "Login failed", err)
		return
	}

	token, err := security.CreateTokenForUser(*user)
	if err != nil {
		utils.RespondWithError(w, "Failed to issue access token", err)
		return
	}

	utils.RespondWithJson(w, http.StatusOK, view.LoginResponse{
		Success: true,
		Token:   token,
		UserId:  user.Id,
		Name:    user.Name,
	})
}
