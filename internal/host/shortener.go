package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hellausefulsoftware/hublaunch/internal/logging"
)

// maxShortLinkBytes bounds the response body read from the shortener
const maxShortLinkBytes = 2048

// ErrEmptyShortLink is returned when the shortener answers with an empty body
var ErrEmptyShortLink = errors.New("shortener returned an empty link")

// HTTPShortener calls a plain-text shortening endpoint. Endpoint holds one %s
// verb that receives the query-escaped link.
type HTTPShortener struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPShortener creates a shortener for endpoint
func NewHTTPShortener(endpoint string) *HTTPShortener {
	return &HTTPShortener{Endpoint: endpoint, Client: http.DefaultClient}
}

// Shorten returns the short form of link
func (s *HTTPShortener) Shorten(ctx context.Context, link string) (string, error) {
	endpoint := fmt.Sprintf(s.Endpoint, url.QueryEscape(link))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	logging.Debug("Shortening link", "link", link)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShortLinkBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shortener request failed: %s - %s", resp.Status, strings.TrimSpace(string(body)))
	}

	short := strings.TrimSpace(string(body))
	if short == "" {
		return "", ErrEmptyShortLink
	}
	return short, nil
}
