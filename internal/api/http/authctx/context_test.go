package authctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authkeeper/internal/model"
)

func TestPrincipalRoundTrip(t *testing.T) {
	principal := model.Principal{Subject: "user@example.com", Authorities: []string{"user"}}

	ctx := WithPrincipal(context.Background(), principal)

	got, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, principal, got)
}

func TestPrincipalFromContext_Empty(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)
}
