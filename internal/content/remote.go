package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vytor/theoryflash/internal/logger"
)

// maxBankSize caps a downloaded bank document.
const maxBankSize = 8 << 20

// Fetcher downloads content banks published over HTTP.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Bank, error)
}

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 15 * time.Second}}
}

var _ Fetcher = (*Client)(nil)

// Fetch downloads and validates the bank at url.
func (c *Client) Fetch(ctx context.Context, url string) (*Bank, error) {
	log := logger.FromContext(ctx).WithPrefix("content").WithField("url", url)

	log.Debug("fetching content bank")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch content bank: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("content bank response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("content bank request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("content bank status %d: %s", resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBankSize+1))
	if err != nil {
		log.Error("failed to read content bank: %v", err)
		return nil, err
	}
	if len(raw) > maxBankSize {
		return nil, fmt.Errorf("content bank exceeds %d bytes", maxBankSize)
	}

	b, err := Parse(raw)
	if err != nil {
		log.Error("failed to parse content bank: %v", err)
		return nil, err
	}
	log.Info("fetched content bank: %d questions, %d signs", len(b.Questions), len(b.Signs))
	return b, nil
}

// IsRemote reports whether source names an HTTP location rather than a file.
func IsRemote(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Open loads the bank from source: an http(s) URL, a file path, or the
// embedded default when source is empty.
func Open(ctx context.Context, source string, f Fetcher) (*Bank, error) {
	if IsRemote(source) {
		return f.Fetch(ctx, strings.TrimSpace(source))
	}
	return Load(source)
}
