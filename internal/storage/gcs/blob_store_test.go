package gcs

import (
	"context"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestNewValidatesInput(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Config{Bucket: "b"})
	require.Error(t, err)

	client, err := storage.NewClient(context.Background(), option.WithoutAuthentication())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = New(client, Config{})
	require.Error(t, err)

	store, err := New(client, Config{Bucket: "lists", Prefix: "/harvest/"})
	require.NoError(t, err)
	assert.Equal(t, "harvest/ublock_blocklist.txt", store.ObjectPath("/ublock_blocklist.txt"))

	plain, err := New(client, Config{Bucket: "lists"})
	require.NoError(t, err)
	assert.Equal(t, "out.txt", plain.ObjectPath("out.txt"))
}
