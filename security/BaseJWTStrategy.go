package security

import (
	goctx "context"
	"fmt"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/libcache"
)

type tokenExtractorFunc func(r *http.Request) (string, error)

type baseJWTStrategyImpl struct {
	cache        libcache.Cache
	jwtValidator JWTValidator
	extractToken tokenExtractorFunc
}

func NewBaseJWTStrategy(cache libcache.Cache, jwtValidator JWTValidator, extractToken tokenExtractorFunc) auth.Strategy {
	return &baseJWTStrategyImpl{
		cache:        cache,
		jwtValidator: jwtValidator,
		extractToken: extractToken,
	}
}

func (b baseJWTStrategyImpl) Authenticate(ctx goctx.Context, r *http.Request) (auth.Info, error) {
	token, err := b.extractToken(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if v, ok := b.cache.Load(token); ok {
		info, ok := v.(auth.Info)
		if !ok {
			return nil, auth.NewTypeError("authentication failed:", (*auth.Info)(nil), v)
		}
		return info, nil
	}

	info, expirationTime, err := b.jwtValidator.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	b.cache.StoreWithTTL(token, info, time.Until(expirationTime))

	return info, nil
}
