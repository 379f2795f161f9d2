// Package zotero is a minimal client for the Zotero Web API v3, covering
// the calls the meta-analysis commands need: tag listings, item queries,
// item counts, tag writes, and formatted collection bibliographies.
//
// Calls are synchronous and sequential; a failed call is surfaced
// immediately with no retry.
package zotero

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/query"
)

const (
	// DefaultBaseURL is the public Zotero API endpoint.
	DefaultBaseURL = "https://api.zotero.org"

	apiVersion     = "3"
	pageSize       = 100
	requestTimeout = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	// LibraryID identifies the user or group library.
	LibraryID string

	// LibraryType is "user" or "group".
	LibraryType string

	// APIKey authorizes write operations. Optional for read-only use.
	APIKey string

	// BaseURL overrides the API endpoint (tests).
	BaseURL string

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client issues requests against one library.
type Client struct {
	httpClient *http.Client
	baseURL    string
	prefix     string
	apiKey     string
}

// NewClient validates the options and builds a client.
func NewClient(opts Options) (*Client, error) {
	if opts.LibraryID == "" {
		return nil, fmt.Errorf("library id is required")
	}

	var prefix string
	switch opts.LibraryType {
	case "user":
		prefix = "users/" + opts.LibraryID
	case "group":
		prefix = "groups/" + opts.LibraryID
	default:
		return nil, fmt.Errorf("library type must be \"user\" or \"group\", got %q", opts.LibraryType)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		prefix:     prefix,
		apiKey:     opts.APIKey,
	}, nil
}

// AllTags returns every tag in the library, paginated through completely.
// A single positive prefix can be pushed down to the server to cut
// transfer; pass "" to fetch everything.
func (c *Client) AllTags(prefix string) ([]string, error) {
	params := url.Values{}
	if prefix != "" {
		params.Set("q", prefix)
		params.Set("qmode", "startsWith")
	}

	var tags []string
	for start := 0; ; start += pageSize {
		var page []tagEntry
		if err := c.getPage("/tags", params, start, &page); err != nil {
			return nil, err
		}
		for _, e := range page {
			tags = append(tags, e.Tag)
		}
		if len(page) < pageSize {
			return tags, nil
		}
	}
}

// Items returns the items matching expr, paginated through completely.
// extra carries endpoint-specific parameters (itemType, include, style).
func (c *Client) Items(expr query.Expression, extra url.Values) ([]Item, error) {
	return c.itemsAt("/items", expr, extra)
}

// CollectionItems is Items scoped to one collection.
func (c *Client) CollectionItems(collectionID string, expr query.Expression, extra url.Values) ([]Item, error) {
	return c.itemsAt("/collections/"+url.PathEscape(collectionID)+"/items", expr, extra)
}

func (c *Client) itemsAt(path string, expr query.Expression, extra url.Values) ([]Item, error) {
	params := url.Values{}
	for k, vs := range extra {
		params[k] = vs
	}
	for _, conjunct := range expr.Conjuncts() {
		params.Add("tag", conjunct)
	}

	var items []Item
	for start := 0; ; start += pageSize {
		var page []Item
		if err := c.getPage(path, params, start, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(page) < pageSize {
			return items, nil
		}
	}
}

// CountItems returns the number of items matching expr. The versions
// format returns the full key-to-version map in one response, so the count
// is the map size. Satisfies correlate.Counter.
func (c *Client) CountItems(expr query.Expression) (int, error) {
	params := url.Values{}
	params.Set("format", "versions")
	for _, conjunct := range expr.Conjuncts() {
		params.Add("tag", conjunct)
	}

	var versions map[string]int
	if err := c.getJSON("/items", params, &versions); err != nil {
		return 0, err
	}
	return len(versions), nil
}

// AddTag attaches tag to the item. Idempotent: an item already carrying the
// tag is left untouched without a request.
func (c *Client) AddTag(item Item, tag string) error {
	if item.HasTag(tag) {
		return nil
	}

	payload := struct {
		Tags []TagRef `json:"tags"`
	}{Tags: append(append([]TagRef{}, item.Data.Tags...), TagRef{Tag: tag})}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode tag update: %w", err)
	}

	endpoint := c.baseURL + "/" + c.prefix + "/items/" + url.PathEscape(item.Key)
	req, err := http.NewRequest(http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build tag update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("If-Unmodified-Since-Version", strconv.Itoa(item.Version))
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update item %s: %w", item.Key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("update item %s: status %d", item.Key, resp.StatusCode)
	}
	return nil
}

// CollectionBibliography returns the collection's items with formatted
// citations in the given style.
func (c *Client) CollectionBibliography(collectionID, style string) ([]Item, error) {
	extra := url.Values{}
	extra.Set("include", "bib,data")
	if style != "" {
		extra.Set("style", style)
	}
	return c.CollectionItems(collectionID, query.Expression{}, extra)
}

// getPage fetches one page of a listing endpoint.
func (c *Client) getPage(path string, params url.Values, start int, v interface{}) error {
	paged := url.Values{}
	for k, vs := range params {
		paged[k] = vs
	}
	paged.Set("start", strconv.Itoa(start))
	paged.Set("limit", strconv.Itoa(pageSize))
	return c.getJSON(path, paged, v)
}

// getJSON issues one GET and decodes the JSON response body into v.
func (c *Client) getJSON(path string, params url.Values, v interface{}) error {
	endpoint := c.baseURL + "/" + c.prefix + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("query %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("query %s: status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response for %s: %w", path, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse response for %s: %w", path, err)
	}
	return nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Zotero-API-Version", apiVersion)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
