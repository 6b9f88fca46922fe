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

	"github.com/upwardright/rebalancing-backend/rebalancing-service/context"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/service"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/utils"
)

type MembershipController interface {
	UpgradeMembership(w http.ResponseWriter, r *http.Request)
}

func NewMembershipController(userService service.UserService) MembershipController {
	return &membershipControllerImpl{userService: userService}
}

type membershipControllerImpl struct {
	userService service.UserService
}

func (m membershipControllerImpl) UpgradeMembership(w http.ResponseWriter, r *http.Request) {
	securityContext := context.Create(r)

	user, err := m.userService.UpgradeMembership(securityContext.GetUserId())
	if err != nil {
		utils.RespondWithError(w, "Failed to upgrade membership", err)
		return
	}

	utils.RespondWithJson(w, http.StatusOK, user)
}
