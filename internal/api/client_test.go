package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("localhost:5000/api")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api" {
		t.Fatalf("path = %q, want /api", u.Path)
	}

	u, err = parseBaseURL("https://example.com/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("  "); err == nil {
		t.Fatal("parseBaseURL accepted empty url")
	}
}

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) { return s.token, s.token != "" }

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotPricesQuery url.Values
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/prices":
			gotPricesQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(PriceQuote{ModalPrice: 1200, Markets: []Market{{Name: "Khanna"}}})
		case "/api/crops":
			_ = json.NewEncoder(w).Encode([]Crop{{ID: "wheat", Name: "Wheat"}})
		case "/api/crops/wheat":
			_ = json.NewEncoder(w).Encode(Crop{ID: "wheat", Name: "Wheat", Season: "Rabi"})
		case "/api/weather":
			_ = json.NewEncoder(w).Encode(WeatherReport{Location: "Punjab", Condition: "Clear"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", WithTokenSource(staticTokens{token: "tok-1"}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	quote, err := c.Prices(ctx, "wheat", "Punjab")
	if err != nil {
		t.Fatalf("Prices returned error: %v", err)
	}
	if quote.ModalPrice != 1200 || len(quote.Markets) != 1 {
		t.Fatalf("Prices payload = %#v", quote)
	}
	if gotPricesQuery.Get("crop") != "wheat" || gotPricesQuery.Get("location") != "Punjab" {
		t.Fatalf("prices query = %v", gotPricesQuery)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}

	crops, err := c.Crops(ctx)
	if err != nil {
		t.Fatalf("Crops returned error: %v", err)
	}
	if len(crops) != 1 || crops[0].ID != "wheat" {
		t.Fatalf("Crops payload = %#v", crops)
	}

	info, err := c.CropInfo(ctx, "wheat")
	if err != nil {
		t.Fatalf("CropInfo returned error: %v", err)
	}
	if info.Season != "Rabi" {
		t.Fatalf("CropInfo payload = %#v", info)
	}

	weather, err := c.Weather(ctx, "Punjab")
	if err != nil {
		t.Fatalf("Weather returned error: %v", err)
	}
	if weather.Condition != "Clear" {
		t.Fatalf("Weather payload = %#v", weather)
	}
}

func TestClient_UnauthorizedInvokesHandler(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	var forcedLogout bool
	c, err := NewClient(server.URL, WithUnauthorizedHandler(func() { forcedLogout = true }))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.UserActivity(context.Background())
	if err == nil {
		t.Fatal("UserActivity returned nil error for 401")
	}
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized = false for %v", err)
	}
	if !forcedLogout {
		t.Fatal("401 did not invoke the unauthorized handler")
	}
	if msg := UserMessage(err); msg != "Authentication required" {
		t.Fatalf("UserMessage = %q", msg)
	}
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		body   string
		want   string
	}{
		{400, `{"message":"crop is required"}`, "crop is required"},
		{403, "", "Access denied"},
		{404, "", "Resource not found"},
		{429, "", "Too many requests. Please try again later."},
		{500, "", "Server error. Please try again later."},
		{503, "", "Something went wrong"},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			if tc.body != "" {
				_, _ = w.Write([]byte(tc.body))
			}
		}))

		c, err := NewClient(server.URL)
		if err != nil {
			t.Fatalf("NewClient returned error: %v", err)
		}
		_, err = c.Crops(context.Background())
		if err == nil {
			t.Fatalf("status %d produced nil error", tc.status)
		}
		if got := UserMessage(err); got != tc.want {
			t.Fatalf("status %d: UserMessage = %q, want %q", tc.status, got, tc.want)
		}
		server.Close()
	}
}

func TestClient_NetworkErrorMessage(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	t.Cleanup(cancel)

	_, err = c.Crops(ctx)
	if err == nil {
		t.Fatal("Crops returned nil error for unreachable host")
	}
	if msg := UserMessage(err); msg != "Network error. Please check your connection." {
		t.Fatalf("UserMessage = %q", msg)
	}
}

func TestClient_DetectDiseaseUploadsMultipart(t *testing.T) {
	t.Parallel()

	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "leaf.jpg" {
			http.Error(w, "wrong filename", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(DiseaseReport{Disease: "Leaf Rust", Confidence: 0.92})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	report, err := c.DetectDisease(context.Background(), "leaf.jpg", strings.NewReader("fake-image-bytes"))
	if err != nil {
		t.Fatalf("DetectDisease returned error: %v", err)
	}
	if report.Disease != "Leaf Rust" {
		t.Fatalf("DetectDisease payload = %#v", report)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Fatalf("Content-Type = %q, want multipart", gotContentType)
	}
}

func TestClient_PingTreatsAnyResponseAsReachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error for responding server: %v", err)
	}

	unreachable, err := NewClient("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	t.Cleanup(cancel)
	if err := unreachable.Ping(ctx); err == nil {
		t.Fatal("Ping returned nil error for unreachable host")
	}
}
