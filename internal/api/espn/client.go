package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/scorebot/internal/config"
	"github.com/omarshaarawi/scorebot/internal/metrics"
)

const (
	defaultBaseURL   = "https://site.api.espn.com/apis/site/v2/sports"
	defaultUserAgent = "scorebot/1.0 (telegram bot)"
	defaultTimeout   = 10 * time.Second
	excerptLimit     = 120
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient httpDoer
	baseURL    string
	userAgent  string
	recorder   *metrics.Recorder
}

func NewClient(cfg config.ESPNAPI, recorder *metrics.Recorder) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return newClient(&http.Client{Timeout: timeout}, cfg.BaseURL, cfg.UserAgent, recorder)
}

func newClient(doer httpDoer, baseURL, userAgent string, recorder *metrics.Recorder) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: doer,
		baseURL:    baseURL,
		userAgent:  userAgent,
		recorder:   recorder,
	}
}

// Get issues a GET against baseURL+endpoint and decodes the JSON body into
// result. Transport failures and non-2xx responses surface as
// *RemoteUnavailableError.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.ObserveRequest(endpointLabel(endpoint), 0, time.Since(started))
		return &RemoteUnavailableError{Excerpt: truncate(err.Error()), Err: err}
	}
	defer resp.Body.Close()
	c.recorder.ObserveRequest(endpointLabel(endpoint), resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, excerptLimit))
		return &RemoteUnavailableError{StatusCode: resp.StatusCode, Excerpt: truncate(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func endpointLabel(endpoint string) string {
	return endpoint[strings.LastIndex(endpoint, "/")+1:]
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > excerptLimit {
		return s[:excerptLimit]
	}
	return s
}
