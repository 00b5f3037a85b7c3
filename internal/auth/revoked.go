package auth

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const revokedCacheSize = 10000

// RevokedTokens is the logout denylist. Tokens expire on their own after
// TokenValidity, so a bounded LRU is enough to hold every token revoked
// within its lifetime under normal load.
type RevokedTokens struct {
	cache *lru.Cache[string, time.Time]
}

func NewRevokedTokens() (*RevokedTokens, error) {
	cache, err := lru.New[string, time.Time](revokedCacheSize)
	if err != nil {
		return nil, err
	}
	return &RevokedTokens{cache: cache}, nil
}

func (r *RevokedTokens) Revoke(token string) {
	r.cache.Add(token, time.Now())
}

func (r *RevokedTokens) IsRevoked(token string) bool {
	_, revoked := r.cache.Get(token)
	return revoked
}
