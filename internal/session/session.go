// Package session hands out the bearer token and email used on every backend
// call. Nothing is cached here: each call asks the token source again, so a
// rotated or expired token is picked up before the next request.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/GregMSThompson/family-savings/pkg/logger"
)

type Credentials struct {
	Token string
	Email string
}

type Provider struct {
	src   oauth2.TokenSource
	email string
	now   func() time.Time
}

// NewProvider wraps src. fallbackEmail is used when the token carries no
// email claim.
func NewProvider(src oauth2.TokenSource, fallbackEmail string) *Provider {
	return &Provider{src: src, email: fallbackEmail, now: time.Now}
}

// NewStatic serves a fixed token, e.g. one supplied through configuration.
// An empty token means there is no session.
func NewStatic(token, email string) *Provider {
	if token == "" {
		return &Provider{email: email, now: time.Now}
	}
	return NewProvider(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), email)
}

// Fresh returns the current credentials, or nil when no valid session exists.
// It never fails; callers decide whether a missing session is an error.
func (p *Provider) Fresh(ctx context.Context) *Credentials {
	if p == nil || p.src == nil {
		return nil
	}
	log := logger.FromContext(ctx)

	tok, err := p.src.Token()
	if err != nil {
		log.Debug("token source failed", "error", err)
		return nil
	}
	if !tok.Valid() {
		return nil
	}

	creds := &Credentials{Token: tok.AccessToken, Email: p.email}

	// Opaque tokens are allowed; only a JWT can carry email and exp.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims); err != nil {
		return creds
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && !exp.After(p.now()) {
		log.Debug("session token expired", "exp", exp.Time)
		return nil
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		creds.Email = email
	}
	return creds
}
