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
	"crypto/rand"
	"fmt"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/jwt"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/config"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/view"
)

const TokenIssuedAtExt = "issuedAt"

var jwtAuthStrategy auth.Strategy
var keeper jwt.SecretsKeeper
var accessTokenDuration time.Duration

// SetupGoGuardian initializes token issuing and validation. The HMAC signing
// key is drawn fresh on every process start and never persisted, so all
// previously issued tokens become invalid on restart. This key is separate
// from the credential-encryption keypair and the two must never be conflated.
func SetupGoGuardian(cfg config.JwtConfig) error {
	signingKey := make([]byte, 32)
	if _, err := rand.Read(signingKey); err != nil {
		return fmt.Errorf("failed to generate token signing key: %w", err)
	}

	accessTokenDuration = time.Second * time.Duration(cfg.AccessTokenDurationSec)

	keeper = jwt.StaticSecret{
		ID:        "rebalancing-token-key",
		Secret:    signingKey,
		Algorithm: jwt.HS256,
	}

	cache := libcache.LRU.New(2000)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})
	jwtValidator := NewJWTValidator(keeper)
	jwtAuthStrategy = NewBearerTokenStrategy(cache, jwtValidator)

	return nil
}

// CreateTokenForUser issues a signed token bound to the user id with the
// configured validity window.
func CreateTokenForUser(user view.User) (string, error) {
	info := auth.NewUserInfo(user.Name, user.Id, []string{}, auth.Extensions{})
	return jwt.IssueAccessToken(info, keeper, jwt.SetExpDuration(accessTokenDuration))
}

// ValidateToken resolves the subject of a bearer token. Exposed for tests and
// non-HTTP callers; HTTP requests go through the Secure middleware instead.
func ValidateToken(token string) (string, error) {
	info, _, err := NewJWTValidator(keeper).ValidateToken(token)
	if err != nil {
		return "", err
	}
	return info.GetID(), nil
}
