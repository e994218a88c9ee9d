package graphqlrs

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/momeni/repair-gateway/pkg/core/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSubject(t *testing.T) {
	tok, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"},
	).SignedString([]byte("any key"))
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + tok, tok} {
		attrs := log.Attrs(withSubject(context.Background(), header))
		require.Len(t, attrs, 1, header)
		assert.True(t, attrs[0].Equal(log.Subject("42")), header)
	}

	for _, header := range []string{
		"", "Bearer ", "Bearer not-a-jwt", "not-a-jwt", "Basic abc",
	} {
		ctx := withSubject(context.Background(), header)
		assert.Empty(t, log.Attrs(ctx), header)
	}
}
