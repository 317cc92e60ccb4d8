package payments

import (
	"context"
	"sync"
	"time"

	"github.com/anjiri1684/tutor_cards/logger"
)

// tokenCache holds an OAuth access token until shortly before it expires.
type tokenCache struct {
	mu     sync.RWMutex
	token  string
	expiry time.Time
	now    func() time.Time
}

// fetchFunc returns a fresh token and its lifetime in seconds.
type fetchFunc func(ctx context.Context) (token string, expiresIn int, err error)

func (c *tokenCache) get(ctx context.Context, fetch fetchFunc) (string, error) {
	c.mu.RLock()
	if c.token != "" && c.now().Before(c.expiry) {
		token := c.token
		c.mu.RUnlock()
		return token, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiry) {
		return c.token, nil
	}

	logger.Log.Debug("Fetching new payment provider access token...")
	token, expiresIn, err := fetch(ctx)
	if err != nil {
		return "", err
	}

	// Refresh five minutes early so a token never expires mid-request.
	lifetime := time.Duration(expiresIn-300) * time.Second
	if lifetime < 0 {
		lifetime = 0
	}
	c.token = token
	c.expiry = c.now().Add(lifetime)
	return token, nil
}
