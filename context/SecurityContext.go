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

package context

import (
	"net/http"

	"github.com/shaj13/go-guardian/v2/auth"
)

const TokenExpiresAtExt = "expiresAt"

type SecurityContext interface {
	GetUserId() string
	GetUserName() string
}

// Create builds the security context from the identity the auth middleware
// bound into the request. Handlers behind Secure may assume it is present.
func Create(r *http.Request) SecurityContext {
	user := auth.User(r)
	return &securityContextImpl{
		userId:   user.GetID(),
		userName: user.GetUserName(),
	}
}

type securityContextImpl struct {
	userId   string
	userName string
}

func (ctx securityContextImpl) GetUserId() string {
	return ctx.userId
}

func (ctx securityContextImpl) GetUserName() string {
	return ctx.userName
}
