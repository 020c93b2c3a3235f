package session

import (
	"context"
	"strings"

	"github.com/sandeepkv93/daygrid/internal/logging"
)

// Provider supplies the current user's opaque id. ok is false when there is
// no session, in which case nothing is loaded.
type Provider interface {
	CurrentUser(ctx context.Context) (userID string, ok bool)
}

// Static is a session fixed at startup from configuration.
type Static struct {
	User string
}

func (s Static) CurrentUser(context.Context) (string, bool) {
	user := strings.TrimSpace(s.User)
	return user, user != ""
}

// FromContext reads the user the HTTP server attached to a request context.
type FromContext struct{}

func (FromContext) CurrentUser(ctx context.Context) (string, bool) {
	user := logging.UserID(ctx)
	return user, user != ""
}

// Tokens maps bearer tokens to user ids.
type Tokens map[string]string

func (t Tokens) Lookup(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	user, ok := t[token]
	if !ok || strings.TrimSpace(user) == "" {
		return "", false
	}
	return user, true
}
