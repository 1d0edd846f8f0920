// Package output renders the harvested domain set as a uBlock Origin block
// list and publishes it to a blob store.
package output

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/domain"
	"github.com/JakeFAU/domain-harvester/internal/storage"
)

// ContentType is the media type block lists are stored with.
const ContentType = "text/plain; charset=utf-8"

// Rule returns the network filter that blocks d and all of its subdomains.
func Rule(d domain.Domain) string {
	return "||" + d.String() + "^"
}

// Write emits each header line followed by one rule per domain, in the order
// given. Header lines are written verbatim; an empty string yields a blank
// line.
func Write(w io.Writer, domains []domain.Domain, header []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range header {
		if _, err := bw.WriteString(strings.TrimRight(line, "\r\n") + "\n"); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, d := range domains {
		if d == "" {
			continue
		}
		if _, err := bw.WriteString(Rule(d) + "\n"); err != nil {
			return fmt.Errorf("write rule: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush block list: %w", err)
	}
	return nil
}

// Publisher renders block lists and hands them to a BlobStore.
type Publisher struct {
	store  storage.BlobStore
	path   string
	header []string
	logger *zap.Logger
}

// NewPublisher writes to path inside store.
func NewPublisher(store storage.BlobStore, path string, header []string, logger *zap.Logger) (*Publisher, error) {
	if store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		store:  store,
		path:   path,
		header: append([]string(nil), header...),
		logger: logger,
	}, nil
}

// Publish renders domains and stores the list, returning its URI.
func (p *Publisher) Publish(ctx context.Context, domains []domain.Domain) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, domains, p.header); err != nil {
		return "", err
	}
	size := buf.Len()
	uri, err := p.store.PutObject(ctx, p.path, ContentType, &buf)
	if err != nil {
		return "", fmt.Errorf("publish block list: %w", err)
	}
	p.logger.Info("block list written",
		zap.String("uri", uri),
		zap.Int("domains", len(domains)),
		zap.Int("bytes", size),
	)
	return uri, nil
}
