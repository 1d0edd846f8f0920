package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewBlobStore()
	uri, err := store.PutObject(context.Background(), "lists/out.txt", "text/plain", strings.NewReader("||a.com^\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory://lists/out.txt", uri)

	data, contentType, ok := store.Object("lists/out.txt")
	require.True(t, ok)
	assert.Equal(t, "||a.com^\n", string(data))
	assert.Equal(t, "text/plain", contentType)

	data[0] = 'X'
	again, _, _ := store.Object("lists/out.txt")
	assert.Equal(t, byte('|'), again[0], "callers get a copy")

	_, _, ok = store.Object("missing")
	assert.False(t, ok)
}
