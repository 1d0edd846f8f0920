package output

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/domain-harvester/internal/domain"
	"github.com/JakeFAU/domain-harvester/internal/storage/memory"
)

var header = []string{
	"! uBlock Origin – English News & Social Blocklist",
	"! One-time generated",
	"",
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, []domain.Domain{"bbc.co.uk", "example.com", ""}, header)
	require.NoError(t, err)
	assert.Equal(t,
		"! uBlock Origin – English News & Social Blocklist\n! One-time generated\n\n||bbc.co.uk^\n||example.com^\n",
		buf.String())
}

func TestWriteEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, nil))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePropagatesErrors(t *testing.T) {
	t.Parallel()

	err := Write(failingWriter{}, []domain.Domain{"a.com"}, header)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPublisher(t *testing.T) {
	t.Parallel()

	store := memory.NewBlobStore()
	pub, err := NewPublisher(store, "ublock_blocklist.txt", []string{"! test", ""}, nil)
	require.NoError(t, err)

	uri, err := pub.Publish(context.Background(), []domain.Domain{"a.com", "b.org"})
	require.NoError(t, err)
	assert.Equal(t, "memory://ublock_blocklist.txt", uri)

	data, contentType, ok := store.Object("ublock_blocklist.txt")
	require.True(t, ok)
	assert.Equal(t, ContentType, contentType)
	assert.Equal(t, "! test\n\n||a.com^\n||b.org^\n", string(data))
}

type errStore struct{}

func (errStore) PutObject(context.Context, string, string, io.Reader) (string, error) {
	return "", errors.New("bucket gone")
}

func TestPublisherErrors(t *testing.T) {
	t.Parallel()

	_, err := NewPublisher(nil, "x", nil, nil)
	require.Error(t, err)
	_, err = NewPublisher(memory.NewBlobStore(), " ", nil, nil)
	require.Error(t, err)

	pub, err := NewPublisher(errStore{}, "x", nil, nil)
	require.NoError(t, err)
	_, err = pub.Publish(context.Background(), []domain.Domain{"a.com"})
	require.ErrorContains(t, err, "bucket gone")
}
