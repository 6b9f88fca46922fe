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

package security

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shaj13/go-guardian/v2/auth"
	log "github.com/sirupsen/logrus"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/utils"
)

// Secure gates a protected handler: the bearer token is extracted and
// validated before any downstream code runs, and the resolved identity is
// bound into the request. Downstream components never re-validate the token.
func Secure(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverToInternalError(w)

		user, err := jwtAuthStrategy.Authenticate(r.Context(), r)
		if err != nil {
			respondWithAuthFailedError(w, err)
			return
		}

		r = auth.RequestWithUser(user, r)
		next.ServeHTTP(w, r)
	}
}

// NoSecure wraps allow-listed public handlers (login, signup, email
// verification, health). No token extraction happens at all.
func NoSecure(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer recoverToInternalError(w)
		next.ServeHTTP(w, r)
	}
}

func recoverToInternalError(w http.ResponseWriter) {
	if err := recover(); err != nil {
		log.Errorf("Request failed with panic: %v", err)
		log.Tracef("Stacktrace: %v", string(debug.Stack()))
		utils.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
			Debug:   fmt.Sprintf("%v", err),
		})
	}
}

func respondWithAuthFailedError(w http.ResponseWriter, err error) {
	log.Tracef("Authentication failed: %+v", err)
	if errors.Is(err, ErrTokenExpired) {
		utils.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusUnauthorized,
			Code:    exception.TokenExpired,
			Message: exception.TokenExpiredMsg,
		})
		return
	}
	utils.RespondWithCustomError(w, &exception.CustomError{
		Status:  http.StatusUnauthorized,
		Code:    exception.TokenNotValid,
		Message: exception.TokenNotValidMsg,
	})
}
