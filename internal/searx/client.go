package searx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client queries a SearXNG instance.
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Entry
}

// NewClient builds a client for the given SearXNG base URL.
func NewClient(baseURL string, timeout time.Duration, log *logrus.Entry) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL reports the configured SearXNG base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is the parsed view of a SearXNG JSON document. All fields are
// optional on the wire; missing ones stay zero-valued.
type Response struct {
	Results         []Result `json:"results"`
	Answers         []string `json:"answers"`
	Suggestions     []string `json:"suggestions"`
	NumberOfResults float64  `json:"number_of_results"`
}

// Result is a single search hit.
type Result struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Content       string   `json:"content"`
	Engines       []string `json:"engines"`
	PublishedDate string   `json:"publishedDate"`
	ImgSrc        string   `json:"img_src"`
	ThumbnailSrc  string   `json:"thumbnail_src"`
	Source        string   `json:"source"`
}

// Search runs a query against /search with format=json. Every failure mode
// (timeout, connection error, non-200 status, malformed body) comes back as
// an error naming the failure; callers convert it to a tool error envelope.
func (c *Client) Search(ctx context.Context, params url.Values) (*Response, error) {
	params.Set("format", "json")
	endpoint := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building SearXNG request: %v", err)
	}

	c.log.WithField("query", params.Get("q")).Debug("querying SearXNG")

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, errors.New("timeout connecting to SearXNG")
		}
		return nil, fmt.Errorf("connecting to SearXNG: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("SearXNG returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data Response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding SearXNG response: %v", err)
	}
	return &data, nil
}

// Ping probes the SearXNG root for reachability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

func isTimeout(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
