package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/readerapp/reader/pkg/config"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"
)

// MaxResults is the largest page the volumes API will return.
const MaxResults = 40

type Options struct {
	BaseURL           string
	APIKey            string
	Language          string
	RequestsPerSecond int
	Timeout           time.Duration
	UserAgent         string
}

// OptionsFromConfig builds client options from the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:           cfg.CatalogBaseURL,
		APIKey:            cfg.CatalogAPIKey,
		Language:          cfg.CatalogLanguage,
		RequestsPerSecond: cfg.CatalogRequestsPerSecond,
		Timeout:           cfg.CatalogTimeout,
	}
}

// Client talks to the Google Books volumes API. Failed requests are not
// retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	userAgent  string
	limiter    *rate.Limiter
}

func NewClient(opts Options) *Client {
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Every(time.Second / time.Duration(opts.RequestsPerSecond))
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "reader"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		apiKey:    opts.APIKey,
		language:  opts.Language,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// Search returns the volumes matching a free-text query, in catalog order.
// An empty query yields no volumes without calling out.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Volume{}, nil
	}
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if c.language != "" {
		params.Set("langRestrict", c.language)
	}

	var res searchResponse
	if err := c.get(ctx, "search", "/volumes", params, &res); err != nil {
		return nil, err
	}

	volumes := make([]Volume, 0, len(res.Items))
	for _, item := range res.Items {
		volumes = append(volumes, item.toVolume())
	}
	return volumes, nil
}

// Volume looks up a single volume by its catalog id.
func (c *Client) Volume(ctx context.Context, id string) (*Volume, error) {
	var item volumeItem
	if err := c.get(ctx, "volume", "/volumes/"+url.PathEscape(id), url.Values{}, &item); err != nil {
		return nil, err
	}
	v := item.toVolume()
	return &v, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, target interface{}) error {
	log := logger.FromContext(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return &FetchError{Op: op, Err: err}
	}

	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	log.Debug("catalog request", logger.Data{
		"op":          op,
		"path":        path,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
