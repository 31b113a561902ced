package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseBaseURL_NormalizesAndDefaultsScheme(t *testing.T) {
	u, err := parseBaseURL("wishes.example.com")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestParseBaseURL_EmptyErrors(t *testing.T) {
	if _, err := parseBaseURL("   "); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want error")
	}
}

func TestClient_FetchesEndpointsAndSendsAuth(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/wishlist/birthday-2026":
			_, _ = w.Write([]byte(`{"id":42,"title":"Birthday","owner_id":7}`))
		case "/wishlists/42/gifts":
			_, _ = w.Write([]byte(`[{"id":1,"title":"headphones","price":1000,"collected":250}]`))
		case "/stats":
			_, _ = w.Write([]byte(`{"total_collected":500,"total_goal":2000,"recent_contributors":[{"name":"Anya"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "secret-token")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	wl, err := c.FetchWishlist(ctx, "birthday-2026")
	if err != nil {
		t.Fatalf("FetchWishlist returned error: %v", err)
	}
	if wl.ID != 42 || wl.Title != "Birthday" || wl.OwnerID != 7 {
		t.Fatalf("FetchWishlist payload = %#v, want id=42", wl)
	}
	if wl.Slug != "birthday-2026" {
		t.Fatalf("Slug = %q, want birthday-2026", wl.Slug)
	}

	gifts, err := c.FetchGifts(ctx, 42)
	if err != nil {
		t.Fatalf("FetchGifts returned error: %v", err)
	}
	if len(gifts) != 1 || gifts[0].ID != 1 {
		t.Fatalf("FetchGifts items = %#v, want 1 gift id=1", gifts)
	}
	if gifts[0].Progress != 25 {
		t.Fatalf("Progress = %d, want 25", gifts[0].Progress)
	}

	stats, err := c.FetchStats(ctx)
	if err != nil {
		t.Fatalf("FetchStats returned error: %v", err)
	}
	if !stats.TotalGoal.Equal(decimal.NewFromInt(2000)) || len(stats.RecentContributors) != 1 {
		t.Fatalf("FetchStats payload = %#v, want goal=2000 and 1 contributor", stats)
	}

	if gotAuth != "Bearer secret-token" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "wishfront/") {
		t.Fatalf("User-Agent = %q, want wishfront/*", gotUserAgent)
	}
}

func TestClient_FetchWishlistNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchWishlist(context.Background(), "gone")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("FetchWishlist error = %v, want not found", err)
	}
}

func TestClient_WriteEndpointsEncodeQueriesAndCheckErrorField(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotPath string
	var gotQuery url.Values
	respond := `{}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	draft := GiftDraft{
		Title:    " headphones ",
		Price:    decimal.NewFromInt(1000),
		URL:      "shop.example.com/item",
		ImageURL: "https://img.example.com/1.jpg",
	}
	if err := c.CreateGift(ctx, 42, draft); err != nil {
		t.Fatalf("CreateGift returned error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/gifts/" {
		t.Fatalf("CreateGift sent %s %s, want POST /gifts/", gotMethod, gotPath)
	}
	if gotQuery.Get("title") != "headphones" ||
		gotQuery.Get("price") != "1000" ||
		gotQuery.Get("wishlist_id") != "42" ||
		gotQuery.Get("url") != "https://shop.example.com/item" ||
		gotQuery.Get("image_url") != "https://img.example.com/1.jpg" {
		t.Fatalf("CreateGift query = %v, want params encoded", gotQuery)
	}

	if err := c.UpdateGift(ctx, 9, draft); err != nil {
		t.Fatalf("UpdateGift returned error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/gifts/9" {
		t.Fatalf("UpdateGift sent %s %s, want PUT /gifts/9", gotMethod, gotPath)
	}

	if err := c.ReserveGift(ctx, 9); err != nil {
		t.Fatalf("ReserveGift returned error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/gifts/9/reserve" {
		t.Fatalf("ReserveGift sent %s %s, want POST /gifts/9/reserve", gotMethod, gotPath)
	}

	if err := c.Contribute(ctx, 9, decimal.NewFromInt(500)); err != nil {
		t.Fatalf("Contribute returned error: %v", err)
	}
	if gotPath != "/gifts/9/contribute" || gotQuery.Get("amount") != "500" {
		t.Fatalf("Contribute sent %s?%v, want /gifts/9/contribute amount=500", gotPath, gotQuery)
	}

	if err := c.DeleteGift(ctx, 9); err != nil {
		t.Fatalf("DeleteGift returned error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/gifts/9" {
		t.Fatalf("DeleteGift sent %s %s, want DELETE /gifts/9", gotMethod, gotPath)
	}

	// Domain failures arrive in a 2xx body.
	respond = `{"error":"already reserved"}`
	err = c.ReserveGift(ctx, 9)
	if err == nil || !strings.Contains(err.Error(), "already reserved") {
		t.Fatalf("ReserveGift error = %v, want already reserved", err)
	}
}

func TestClient_HTTPErrorIncludesDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stats":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail":"token expired"}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchStats(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 403") || !strings.Contains(err.Error(), "token expired") {
		t.Fatalf("FetchStats error = %v, want status 403 with detail", err)
	}

	_, err = c.FetchGifts(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchGifts error = %v, want decode response error", err)
	}
}
