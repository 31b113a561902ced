package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fetcher defines the read side of the wishlist API.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchWishlist(ctx context.Context, slug string) (Wishlist, error)
	FetchGifts(ctx context.Context, wishlistID int64) ([]Gift, error)
	FetchStats(ctx context.Context) (Stats, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the wishlist backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const (
	defaultUserAgent = "wishfront/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the given server base URL. The token is
// optional; when set it is attached as a bearer credential to every request.
func NewClient(serverURL, token string) (*Client, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		token:     token,
	}, nil
}

// FetchWishlist resolves a wishlist by its public slug.
func (c *Client) FetchWishlist(ctx context.Context, slug string) (Wishlist, error) {
	if c == nil {
		return Wishlist{}, fmt.Errorf("client is nil")
	}
	var payload wishlistWire
	rel := &url.URL{Path: "/wishlist/" + url.PathEscape(slug)}
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return Wishlist{}, err
	}
	w := payload.normalize(slug)
	if w.ID == 0 {
		return Wishlist{}, fmt.Errorf("wishlist %q not found", slug)
	}
	return w, nil
}

// FetchGifts retrieves the full gift collection for a wishlist.
func (c *Client) FetchGifts(ctx context.Context, wishlistID int64) ([]Gift, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []giftWire
	path := fmt.Sprintf("/wishlists/%d/gifts", wishlistID)
	if err := c.do(ctx, http.MethodGet, path, &payload); err != nil {
		return nil, err
	}
	return normalizeGifts(payload), nil
}

// FetchStats retrieves the landing-page aggregate.
func (c *Client) FetchStats(ctx context.Context) (Stats, error) {
	if c == nil {
		return Stats{}, fmt.Errorf("client is nil")
	}
	var payload statsWire
	if err := c.do(ctx, http.MethodGet, "/stats", &payload); err != nil {
		return Stats{}, err
	}
	return payload.normalize(), nil
}

// ParseURL asks the backend to scrape link metadata for gift prefill.
func (c *Client) ParseURL(ctx context.Context, raw string) (LinkPreview, error) {
	if c == nil {
		return LinkPreview{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("url", NormalizeGiftURL(raw))
	rel := &url.URL{Path: "/api/parse-url", RawQuery: values.Encode()}
	var payload linkPreviewWire
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return LinkPreview{}, err
	}
	return payload.normalize(), nil
}

// GiftDraft carries user-entered gift fields for create and update calls.
type GiftDraft struct {
	Title    string
	Price    decimal.Decimal
	URL      string
	ImageURL string
}

func (d GiftDraft) values() url.Values {
	values := url.Values{}
	values.Set("title", strings.TrimSpace(d.Title))
	values.Set("price", d.Price.String())
	if u := NormalizeGiftURL(d.URL); u != "" {
		values.Set("url", u)
	}
	if img := strings.TrimSpace(d.ImageURL); img != "" {
		values.Set("image_url", img)
	}
	return values
}

// CreateGift adds a gift to a wishlist. The resulting collection change
// arrives back through the push channel or the next refresh.
func (c *Client) CreateGift(ctx context.Context, wishlistID int64, draft GiftDraft) error {
	values := draft.values()
	values.Set("wishlist_id", strconv.FormatInt(wishlistID, 10))
	rel := &url.URL{Path: "/gifts/", RawQuery: values.Encode()}
	return c.doWrite(ctx, http.MethodPost, rel)
}

// UpdateGift edits an existing gift.
func (c *Client) UpdateGift(ctx context.Context, giftID int64, draft GiftDraft) error {
	rel := &url.URL{Path: fmt.Sprintf("/gifts/%d", giftID), RawQuery: draft.values().Encode()}
	return c.doWrite(ctx, http.MethodPut, rel)
}

// DeleteGift removes a gift.
func (c *Client) DeleteGift(ctx context.Context, giftID int64) error {
	rel := &url.URL{Path: fmt.Sprintf("/gifts/%d", giftID)}
	return c.doWrite(ctx, http.MethodDelete, rel)
}

// ReserveGift marks a gift as reserved by the current user.
func (c *Client) ReserveGift(ctx context.Context, giftID int64) error {
	rel := &url.URL{Path: fmt.Sprintf("/gifts/%d/reserve", giftID)}
	return c.doWrite(ctx, http.MethodPost, rel)
}

// Contribute adds the current user's share toward a gift.
func (c *Client) Contribute(ctx context.Context, giftID int64, amount decimal.Decimal) error {
	values := url.Values{}
	values.Set("amount", amount.String())
	rel := &url.URL{Path: fmt.Sprintf("/gifts/%d/contribute", giftID), RawQuery: values.Encode()}
	return c.doWrite(ctx, http.MethodPost, rel)
}

// doWrite issues a mutating request. The backend reports domain failures in
// an "error" field of an otherwise 2xx body, so that is checked too.
func (c *Client) doWrite(ctx context.Context, method string, rel *url.URL) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := c.doURL(ctx, method, rel, &payload); err != nil {
		return err
	}
	if payload.Error != "" {
		return fmt.Errorf("%s", payload.Error)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		if detail := readDetail(resp.Body); detail != "" {
			return fmt.Errorf("api %s returned status %d: %s", rel.Path, resp.StatusCode, detail)
		}
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readDetail extracts the backend's "detail" message from an error body.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		return nil, fmt.Errorf("server url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", serverURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
