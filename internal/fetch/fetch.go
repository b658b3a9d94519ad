package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// userAgent identifies page fetches to origin servers.
const userAgent = "Mozilla/5.0 (compatible; MCP-SearXNG/1.0)"

// truncationMarker is appended when a page exceeds the caller's max length.
const truncationMarker = "\n\n... (content truncated)"

// Fetcher retrieves web pages and converts them to Markdown text.
type Fetcher struct {
	client *http.Client
	conv   *md.Converter
}

// New builds a fetcher with the given request timeout. Redirects are
// followed; boilerplate elements are stripped before conversion.
func New(timeout time.Duration) *Fetcher {
	conv := md.NewConverter("", true, nil)
	conv.Remove("script", "style", "nav", "footer", "header", "aside", "iframe", "noscript")

	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		conv:   conv,
	}
}

// Page fetches rawURL and returns it as plain Markdown, truncated to
// maxLength characters. Only text/html and text/plain responses are
// accepted; anything else is a typed error naming the content type.
func (f *Fetcher) Page(ctx context.Context, rawURL string, maxLength int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", errors.New("timeout fetching the URL")
		}
		return "", fmt.Errorf("fetching URL: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching URL: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "text/plain") {
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading URL body: %v", err)
	}

	text := string(body)
	if strings.Contains(contentType, "text/html") {
		text, err = f.conv.ConvertString(text)
		if err != nil {
			return "", fmt.Errorf("processing HTML: %v", err)
		}
	}

	if runes := []rune(text); maxLength > 0 && len(runes) > maxLength {
		text = string(runes[:maxLength]) + truncationMarker
	}
	return strings.TrimSpace(text), nil
}

func isTimeout(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
