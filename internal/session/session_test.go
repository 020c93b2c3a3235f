package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandeepkv93/daygrid/internal/logging"
)

func TestStaticProvider(t *testing.T) {
	user, ok := Static{User: " alice "}.CurrentUser(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "alice", user)

	_, ok = Static{}.CurrentUser(context.Background())
	assert.False(t, ok)
}

func TestFromContextProvider(t *testing.T) {
	_, ok := FromContext{}.CurrentUser(context.Background())
	assert.False(t, ok)

	user, ok := FromContext{}.CurrentUser(logging.WithUserID(context.Background(), "bob"))
	assert.True(t, ok)
	assert.Equal(t, "bob", user)
}

func TestTokensLookup(t *testing.T) {
	tokens := Tokens{"secret-a": "alice", "secret-empty": " "}

	user, ok := tokens.Lookup("secret-a")
	assert.True(t, ok)
	assert.Equal(t, "alice", user)

	for _, token := range []string{"", "nope", "secret-empty"} {
		_, ok := tokens.Lookup(token)
		assert.False(t, ok, "token %q", token)
	}
}
