
// Package acquire turns a URL into plain text by fetching the page and
// extracting its visible content.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"time"

	"content-quality-analyzer/internal/crawler"
	"content-quality-analyzer/internal/parser"
)

const DefaultTimeout = 10 * time.Second

var ErrEmptyContent = errors.New("no text content extracted")

type Acquirer struct {
	client  *crawler.HTTPClient
	parser  *parser.Parser
	timeout time.Duration
}

// New returns an Acquirer; a non-positive timeout means DefaultTimeout.
func New(client *crawler.HTTPClient, p *parser.Parser, timeout time.Duration) *Acquirer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Acquirer{client: client, parser: p, timeout: timeout}
}

func (a *Acquirer) FetchText(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	page, err := a.client.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer page.Body.Close()

	doc, err := a.parser.Extract(page.Body, page.ContentType, page.FinalURL)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", url, err)
	}
	if doc.Text == "" {
		return "", fmt.Errorf("%s: %w", url, ErrEmptyContent)
	}
	return doc.Text, nil
}
