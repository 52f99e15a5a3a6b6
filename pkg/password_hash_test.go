package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwordHash, err := HashPassword("deadlift-day")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(passwordHash, "$2a$14$"))

	assert.True(t, CheckPasswordHash("deadlift-day", passwordHash))
	assert.False(t, CheckPasswordHash("bench-day", passwordHash))
	assert.False(t, CheckPasswordHash("deadlift-day", "not-a-hash"))
}
