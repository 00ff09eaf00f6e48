package opid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratesUUID(t *testing.T) {
	ctx, id := New(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, Value(ctx))
}

func TestNewIsUniquePerCall(t *testing.T) {
	parent, first := New(context.Background())
	child, second := New(parent)
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, Value(parent))
	assert.Equal(t, second, Value(child))
}

func TestValueMissing(t *testing.T) {
	assert.Empty(t, Value(context.Background()))
}
