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

	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/service"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/utils"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

type SignController interface {
	SignUp(w http.ResponseWriter, r *http.Request)
	SendVerificationCode(w http.ResponseWriter, r *http.Request)
	VerifyCode(w http.ResponseWriter, r *http.Request)
}

func NewSignController(userService service.UserService, verificationService service.VerificationService) SignController {
	return &signControllerImpl{
		userService:         userService,
		verificationService: verificationService,
	}
}

type signControllerImpl struct {
	userService         service.UserService
	verificationService service.VerificationService
}

func (s signControllerImpl) SignUp(w http.ResponseWriter, r *http.Request) {
	var req view.SignUpRequest
	if customError := decodeAndValidate(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}

	user, err := s.userService.SignUp(&req)
	if err != nil {
		utils.RespondWithError(w, "Sign up failed", err)
		return
	}

	utils.RespondWithJson(w, http.StatusCreated, view.SignUpResponse{
		Message: "sign up complete",
		UserId:  user.Id,
		Success: true,
	})
}

func (s signControllerImpl) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req view.SendCodeRequest
	if customError := decodeAndValidate(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}

	if err := s.verificationService.SendCode(req.Email); err != nil {
		utils.RespondWithError(w, "Failed to send verification code", err)
		return
	}

	utils.RespondWithJson(w, http.StatusOK, map[string]interface{}{"sent": true})
}

func (s signControllerImpl) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req view.VerifyCodeRequest
	if customError := decodeAndValidate(r, &req); customError != nil {
		utils.RespondWithCustomError(w, customError)
		return
	}

	verified, err := s.verificationService.VerifyCode(req.Email, req.Code)
	if err != nil {
		utils.RespondWithError(w, "Failed to verify code", err)
		return
	}
	if !verified {
		utils.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusUnauthorized,
			Code:    exception.VerificationCodeNotValid,
			Message: exception.VerificationCodeNotValidMsg,
		})
		return
	}

	utils.RespondWithJson(w, http.StatusOK, view.EmailVerificationResponse{Verified: true})
}
