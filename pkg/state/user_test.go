package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Identity{}, CurrentUser(ctx))

	ctx = SetCurrentUser(ctx, Identity{ID: 7, Email: "a@x.com"})
	assert.Equal(t, Identity{ID: 7, Email: "a@x.com"}, CurrentUser(ctx))
}

func TestCurrentUser_IgnoresForeignValue(t *testing.T) {
	ctx := context.WithValue(context.Background(), CurrentUserId, uint(7)) //nolint:staticcheck
	assert.Equal(t, Identity{}, CurrentUser(ctx))
}
