// Package youtube uploads finished quiz videos through the YouTube Data API
// v3 resumable upload protocol. Authorization uses an OAuth2 token file that
// is refreshed and rewritten as needed.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultUploadURL  = "https://www.googleapis.com/upload/youtube/v3/videos"
	uploadScope       = "https://www.googleapis.com/auth/youtube.upload"
	defaultCategoryID = "27" // Education
	defaultPrivacy    = "public"
)

// Config captures OAuth client settings and upload defaults.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	CategoryID   string
	Privacy      string
}

// Client performs authenticated uploads.
type Client struct {
	cfg        Config
	oauth      *oauth2.Config
	uploadURL  string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithUploadURL overrides the upload endpoint.
func WithUploadURL(uploadURL string) Option {
	return func(c *Client) {
		if uploadURL != "" {
			c.uploadURL = strings.TrimRight(uploadURL, "/")
		}
	}
}

// WithHTTPClient bypasses OAuth token exchange and uses the given client for
// all requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a client from the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.CategoryID = strings.TrimSpace(cfg.CategoryID)
	if cfg.CategoryID == "" {
		cfg.CategoryID = defaultCategoryID
	}
	cfg.Privacy = strings.TrimSpace(cfg.Privacy)
	if cfg.Privacy == "" {
		cfg.Privacy = defaultPrivacy
	}
	client := &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     strings.TrimSpace(cfg.ClientID),
			ClientSecret: strings.TrimSpace(cfg.ClientSecret),
			Endpoint:     google.Endpoint,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{uploadScope},
		},
		uploadURL: defaultUploadURL,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// AuthURL returns the consent URL a user must visit to authorize uploads.
func (c *Client) AuthURL() string {
	return c.oauth.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// Authenticate exchanges an authorization code for a token and persists it to
// the configured token file.
func (c *Client) Authenticate(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("youtube auth: authorization code required")
	}
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("youtube auth: exchange code: %w", err)
	}
	return c.saveToken(token)
}

// HasToken reports whether a stored token file exists.
func (c *Client) HasToken() bool {
	if c.cfg.TokenFile == "" {
		return false
	}
	_, err := os.Stat(c.cfg.TokenFile)
	return err == nil
}

func (c *Client) loadToken() (*oauth2.Token, error) {
	if c.cfg.TokenFile == "" {
		return nil, errors.New("youtube auth: token file not configured")
	}
	data, err := os.ReadFile(c.cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("youtube auth: read token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("youtube auth: decode token: %w", err)
	}
	return &token, nil
}

func (c *Client) saveToken(token *oauth2.Token) error {
	if c.cfg.TokenFile == "" {
		return errors.New("youtube auth: token file not configured")
	}
	if err := os.MkdirAll(filepath.Dir(c.cfg.TokenFile), 0o755); err != nil {
		return fmt.Errorf("youtube auth: token directory: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("youtube auth: encode token: %w", err)
	}
	if err := os.WriteFile(c.cfg.TokenFile, data, 0o600); err != nil {
		return fmt.Errorf("youtube auth: write token: %w", err)
	}
	return nil
}

// authedClient returns an HTTP client that attaches and refreshes the stored
// token. Refreshed tokens are written back to the token file.
func (c *Client) authedClient(ctx context.Context) (*http.Client, error) {
	if c.httpClient != nil {
		return c.httpClient, nil
	}
	token, err := c.loadToken()
	if err != nil {
		return nil, err
	}
	source := oauth2.ReuseTokenSource(token, &savingTokenSource{
		client:  c,
		wrapped: c.oauth.TokenSource(ctx, token),
		current: token,
	})
	return oauth2.NewClient(ctx, source), nil
}

type savingTokenSource struct {
	client  *Client
	wrapped oauth2.TokenSource
	current *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.wrapped.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.current.AccessToken {
		s.current = token
		if err := s.client.saveToken(token); err != nil {
			return nil, err
		}
	}
	return token, nil
}

// UploadRequest describes one video upload.
type UploadRequest struct {
	Path        string
	Title       string
	Description string
	Tags        []string
}

// Video identifies a published video.
type Video struct {
	ID  string `json:"id"`
	URL string `json:"-"`
}

type videoMetadata struct {
	Snippet struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags,omitempty"`
		CategoryID  string   `json:"categoryId"`
	} `json:"snippet"`
	Status struct {
		PrivacyStatus           string `json:"privacyStatus"`
		SelfDeclaredMadeForKids bool   `json:"selfDeclaredMadeForKids"`
	} `json:"status"`
}

// Upload publishes a video file. The resumable session is opened with the
// snippet and status metadata, then the file is sent in a single request.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*Video, error) {
	if req.Path == "" {
		return nil, errors.New("youtube upload: video path required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("youtube upload: title required")
	}
	info, err := os.Stat(req.Path)
	if err != nil {
		return nil, fmt.Errorf("youtube upload: %w", err)
	}

	httpClient, err := c.authedClient(ctx)
	if err != nil {
		return nil, err
	}

	var meta videoMetadata
	meta.Snippet.Title = req.Title
	meta.Snippet.Description = req.Description
	meta.Snippet.Tags = req.Tags
	meta.Snippet.CategoryID = c.cfg.CategoryID
	meta.Status.PrivacyStatus = c.cfg.Privacy
	encoded, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("youtube upload: encode metadata: %w", err)
	}

	sessionURL, err := c.openSession(ctx, httpClient, encoded, info.Size())
	if err != nil {
		return nil, err
	}
	return c.sendFile(ctx, httpClient, sessionURL, req.Path, info.Size())
}

func (c *Client) openSession(ctx context.Context, httpClient *http.Client, metadata []byte, size int64) (string, error) {
	endpoint := c.uploadURL + "?uploadType=resumable&part=snippet,status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(metadata))
	if err != nil {
		return "", fmt.Errorf("youtube upload: open session: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Upload-Content-Type", "video/mp4")
	req.Header.Set("X-Upload-Content-Length", fmt.Sprintf("%d", size))

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("youtube upload: open session: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube upload: open session: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return "", errors.New("youtube upload: open session: missing session location")
	}
	return location, nil
}

func (c *Client) sendFile(ctx context.Context, httpClient *http.Client, sessionURL, path string, size int64) (*Video, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("youtube upload: %w", err)
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, sessionURL, file)
	if err != nil {
		return nil, fmt.Errorf("youtube upload: send file: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", "video/mp4")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube upload: send file: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("youtube upload: read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("youtube upload: send file: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var video Video
	if err := json.Unmarshal(body, &video); err != nil {
		return nil, fmt.Errorf("youtube upload: decode response: %w", err)
	}
	if video.ID == "" {
		return nil, errors.New("youtube upload: response missing video id")
	}
	video.URL = "https://www.youtube.com/watch?v=" + video.ID
	return &video, nil
}
