package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetClientIDFromCtx(t *testing.T) {
	var c controller

	ctx := context.WithValue(context.Background(), clientIDCtxKey, "client-1")
	assert.Equal(t, "client-1", c.getClientIDFromCtx(ctx))

	assert.Equal(t, "", c.getClientIDFromCtx(context.Background()))
}
