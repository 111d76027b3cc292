package identity

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StaticProvider maps fixed tokens to sessions. It exists for development
// and tests only; production deployments use OIDCProvider.
type StaticProvider struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStaticProvider creates an empty static provider
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{sessions: make(map[string]Session)}
}

// AddSession registers a token and the session it validates to
func (p *StaticProvider) AddSession(token string, session Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[token] = session
}

// RemoveSession revokes a token
func (p *StaticProvider) RemoveSession(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, token)
}

// Validate looks the token up, honoring ctx and session expiry
func (p *StaticProvider) Validate(ctx context.Context, token string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	session, ok := p.sessions[token]
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown token", ErrInvalidSession)
	}
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return nil, fmt.Errorf("%w: session expired", ErrInvalidSession)
	}

	copied := session
	return &copied, nil
}
