package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/krishisahayak/sahayak/internal/store"
)

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token() (string, bool)
}

const (
	defaultUserAgent = "sahayak/0.1"
	requestTimeout   = 30 * time.Second
	detectTimeout    = 60 * time.Second
)

// Client talks to the Krishi Sahayak backend API. It is safe for concurrent
// use.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	userAgent      string
	tokens         TokenSource
	onUnauthorized func()
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithTokenSource attaches bearer tokens to every request while the source
// has one.
func WithTokenSource(ts TokenSource) ClientOption {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler registers a callback invoked whenever the backend
// answers 401, used by the app layer to force a logout.
func WithUnauthorizedHandler(fn func()) ClientOption {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the given base URL, e.g.
// "http://localhost:5000/api".
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Ping checks backend reachability. Any HTTP response counts as reachable;
// only transport failures report offline.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Path: "/", Message: err.Error()}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

// Prices retrieves the current quote for a crop in a location.
func (c *Client) Prices(ctx context.Context, crop, location string) (*PriceQuote, error) {
	values := url.Values{}
	values.Set("crop", crop)
	values.Set("location", location)
	var payload PriceQuote
	if err := c.get(ctx, "/prices", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// PriceHistory retrieves the price series for the past days.
func (c *Client) PriceHistory(ctx context.Context, crop, location string, days int) ([]PricePoint, error) {
	values := url.Values{}
	values.Set("crop", crop)
	values.Set("location", location)
	if days > 0 {
		values.Set("days", strconv.Itoa(days))
	}
	var payload []PricePoint
	if err := c.get(ctx, "/prices/history", values, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PriceForecast retrieves the projected series for the coming days.
func (c *Client) PriceForecast(ctx context.Context, crop, location string, days int) ([]PricePoint, error) {
	values := url.Values{}
	values.Set("crop", crop)
	values.Set("location", location)
	if days > 0 {
		values.Set("days", strconv.Itoa(days))
	}
	var payload []PricePoint
	if err := c.get(ctx, "/prices/forecast", values, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Crops retrieves the crop guide index.
func (c *Client) Crops(ctx context.Context) ([]Crop, error) {
	var payload []Crop
	if err := c.get(ctx, "/crops", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CropInfo retrieves one crop guide entry.
func (c *Client) CropInfo(ctx context.Context, id string) (*Crop, error) {
	var payload Crop
	if err := c.get(ctx, "/crops/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DetectDisease uploads a plant image for analysis. Image processing is
// slow, so the request gets a longer deadline unless the caller already set
// one.
func (c *Client) DetectDisease(ctx context.Context, filename string, image io.Reader) (*DiseaseReport, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, detectTimeout)
		defer cancel()
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var payload DiseaseReport
	if err := c.doBody(ctx, http.MethodPost, "/diseases/detect", writer.FormDataContentType(), &body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CalculateCost requests a cultivation cost estimate.
func (c *Client) CalculateCost(ctx context.Context, req CostRequest) (*CostEstimate, error) {
	var payload CostEstimate
	if err := c.post(ctx, "/calculator/cost", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ChatbotQuery sends a question to the advisory chatbot.
func (c *Client) ChatbotQuery(ctx context.Context, query ChatQuery) (*ChatReply, error) {
	var payload ChatReply
	if err := c.post(ctx, "/chatbot/query", query, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SpeechToText uploads recorded audio for transcription.
func (c *Client) SpeechToText(ctx context.Context, language string, audio io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", "query.wav")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}
	if err := writer.WriteField("language", language); err != nil {
		return "", fmt.Errorf("write language field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.doBody(ctx, http.MethodPost, "/chatbot/speech-to-text", writer.FormDataContentType(), &body, &payload); err != nil {
		return "", err
	}
	return payload.Text, nil
}

// TextToSpeech synthesizes audio for a reply and returns its URL.
func (c *Client) TextToSpeech(ctx context.Context, text, language string) (string, error) {
	req := map[string]string{"text": text, "language": language}
	var payload struct {
		AudioURL string `json:"audio_url"`
	}
	if err := c.post(ctx, "/chatbot/text-to-speech", req, &payload); err != nil {
		return "", err
	}
	return payload.AudioURL, nil
}

// Translate converts text between two supported languages.
func (c *Client) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	req := map[string]string{
		"text":            text,
		"source_language": fromLang,
		"target_language": toLang,
	}
	var payload struct {
		TranslatedText string `json:"translated_text"`
	}
	if err := c.post(ctx, "/translation/translate", req, &payload); err != nil {
		return "", err
	}
	return payload.TranslatedText, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Session, error) {
	var payload Session
	if err := c.post(ctx, "/auth/login", creds, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Signup registers a new account and returns its session.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	var payload Session
	if err := c.post(ctx, "/auth/signup", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateProfile saves profile changes and returns the stored record.
func (c *Client) UpdateProfile(ctx context.Context, user store.User) (*store.User, error) {
	var payload store.User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, user, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UserActivity retrieves the account's recent activity feed.
func (c *Client) UserActivity(ctx context.Context) ([]ActivityEntry, error) {
	var payload []ActivityEntry
	if err := c.get(ctx, "/auth/activity", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UserFavorites retrieves the server-side favorite crops.
func (c *Client) UserFavorites(ctx context.Context) ([]string, error) {
	var payload []string
	if err := c.get(ctx, "/auth/favorites", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Weather retrieves current conditions and alerts for a location.
func (c *Client) Weather(ctx context.Context, location string) (*WeatherReport, error) {
	values := url.Values{}
	values.Set("location", location)
	var payload WeatherReport
	if err := c.get(ctx, "/weather", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, dest)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var reader io.Reader
	contentType := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	rel := &url.URL{Path: path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	return c.doRequest(ctx, method, rel, contentType, reader, dest)
}

func (c *Client) doBody(ctx context.Context, method, path, contentType string, body io.Reader, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.doRequest(ctx, method, &url.URL{Path: path}, contentType, body, dest)
}

func (c *Client) doRequest(ctx context.Context, method string, rel *url.URL, contentType string, body io.Reader, dest any) error {
	reqURL := resolve(c.baseURL, rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Path: rel.Path, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Path: rel.Path}
		var serverErr struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&serverErr); decodeErr == nil {
			apiErr.Message = serverErr.Message
		}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// resolve joins the base URL (which may carry a path prefix like /api) with
// the endpoint path.
func resolve(base *url.URL, rel *url.URL) string {
	joined := *base
	joined.Path = strings.TrimSuffix(base.Path, "/") + rel.Path
	joined.RawQuery = rel.RawQuery
	return joined.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
