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
	"testing"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/config"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

func setupTestAuth(t *testing.T) {
	t.Helper()
	require.NoError(t, SetupGoGuardian(config.JwtConfig{AccessTokenDurationSec: 3600}))
}

func TestIssueAndValidateToken(t *testing.T) {
	setupTestAuth(t)

	token, err := CreateTokenForUser(view.User{Id: "user@example.com", Name: "Tester"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestValidateExpiredToken(t *testing.T) {
	setupTestAuth(t)

	info := auth.NewUserInfo("Tester", "user@example.com", []string{}, auth.Extensions{})
	token, err := jwt.IssueAccessToken(info, keeper, jwt.SetExpDuration(-time.Minute))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateMalformedToken(t *testing.T) {
	setupTestAuth(t)

	_, err := ValidateToken("definitely.not.a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = ValidateToken("")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenFromPreviousProcessKeyIsRejected(t *testing.T) {
	setupTestAuth(t)
	token, err := CreateTokenForUser(view.User{Id: "user@example.com", Name: "Tester"})
	require.NoError(t, err)

	// a restart draws a new signing key, old tokens must stop working
	setupTestAuth(t)
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
