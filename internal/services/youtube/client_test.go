package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func writeVideoFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "final.mp4")
	if err := os.WriteFile(path, []byte("mp4-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadResumableFlow(t *testing.T) {
	var sessionMeta videoMetadata
	var uploadedBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if r.URL.Query().Get("uploadType") != "resumable" {
				t.Errorf("unexpected uploadType %q", r.URL.Query().Get("uploadType"))
			}
			if err := json.NewDecoder(r.Body).Decode(&sessionMeta); err != nil {
				t.Errorf("decode metadata: %v", err)
			}
			w.Header().Set("Location", "http://"+r.Host+"/session/abc")
		case http.MethodPut:
			if r.URL.Path != "/session/abc" {
				t.Errorf("unexpected session path %q", r.URL.Path)
			}
			body, _ := io.ReadAll(r.Body)
			uploadedBody = string(body)
			json.NewEncoder(w).Encode(map[string]string{"id": "vid123"})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	client := NewClient(Config{CategoryID: "27", Privacy: "unlisted"},
		WithUploadURL(server.URL), WithHTTPClient(server.Client()))

	video, err := client.Upload(context.Background(), UploadRequest{
		Path:        writeVideoFile(t),
		Title:       "Geography Quiz",
		Description: "Test your knowledge!",
		Tags:        []string{"quiz", "trivia"},
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if video.ID != "vid123" {
		t.Fatalf("unexpected video id %q", video.ID)
	}
	if video.URL != "https://www.youtube.com/watch?v=vid123" {
		t.Fatalf("unexpected video url %q", video.URL)
	}
	if sessionMeta.Snippet.Title != "Geography Quiz" || sessionMeta.Snippet.CategoryID != "27" {
		t.Fatalf("unexpected snippet %+v", sessionMeta.Snippet)
	}
	if sessionMeta.Status.PrivacyStatus != "unlisted" || sessionMeta.Status.SelfDeclaredMadeForKids {
		t.Fatalf("unexpected status %+v", sessionMeta.Status)
	}
	if uploadedBody != "mp4-bytes" {
		t.Fatalf("file body not uploaded verbatim: %q", uploadedBody)
	}
}

func TestUploadDefaultsCategoryAndPrivacy(t *testing.T) {
	var sessionMeta videoMetadata
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&sessionMeta)
			w.Header().Set("Location", "http://"+r.Host+"/session/x")
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "v"})
	}))
	defer server.Close()

	client := NewClient(Config{}, WithUploadURL(server.URL), WithHTTPClient(server.Client()))
	if _, err := client.Upload(context.Background(), UploadRequest{Path: writeVideoFile(t), Title: "t"}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if sessionMeta.Snippet.CategoryID != defaultCategoryID {
		t.Fatalf("expected education category, got %q", sessionMeta.Snippet.CategoryID)
	}
	if sessionMeta.Status.PrivacyStatus != defaultPrivacy {
		t.Fatalf("expected public privacy, got %q", sessionMeta.Status.PrivacyStatus)
	}
}

func TestUploadSessionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quotaExceeded"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(Config{}, WithUploadURL(server.URL), WithHTTPClient(server.Client()))
	_, err := client.Upload(context.Background(), UploadRequest{Path: writeVideoFile(t), Title: "t"})
	if err == nil || !strings.Contains(err.Error(), "http 403") {
		t.Fatalf("expected session rejection, got %v", err)
	}
}

func TestUploadMissingSessionLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{}, WithUploadURL(server.URL), WithHTTPClient(server.Client()))
	_, err := client.Upload(context.Background(), UploadRequest{Path: writeVideoFile(t), Title: "t"})
	if err == nil || !strings.Contains(err.Error(), "session location") {
		t.Fatalf("expected missing location error, got %v", err)
	}
}

func TestUploadValidatesRequest(t *testing.T) {
	client := NewClient(Config{}, WithHTTPClient(http.DefaultClient))
	if _, err := client.Upload(context.Background(), UploadRequest{Title: "t"}); err == nil {
		t.Fatal("expected error without path")
	}
	if _, err := client.Upload(context.Background(), UploadRequest{Path: "x.mp4"}); err == nil {
		t.Fatal("expected error without title")
	}
}

func TestUploadWithoutTokenFileFails(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Upload(context.Background(), UploadRequest{Path: writeVideoFile(t), Title: "t"})
	if err == nil || !strings.Contains(err.Error(), "token file not configured") {
		t.Fatalf("expected token configuration error, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "youtube", "token.json")
	client := NewClient(Config{TokenFile: tokenFile})
	if client.HasToken() {
		t.Fatal("token should not exist yet")
	}

	if err := client.saveToken(tokenMust(t, `{"access_token":"at","refresh_token":"rt","token_type":"Bearer"}`)); err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	if !client.HasToken() {
		t.Fatal("token file should exist")
	}
	token, err := client.loadToken()
	if err != nil {
		t.Fatalf("loadToken: %v", err)
	}
	if token.AccessToken != "at" || token.RefreshToken != "rt" {
		t.Fatalf("unexpected token %+v", token)
	}

	info, err := os.Stat(tokenFile)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("token file mode %v, want 0600", info.Mode().Perm())
	}
}

func tokenMust(t *testing.T, raw string) *oauth2.Token {
	t.Helper()
	var token oauth2.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		t.Fatal(err)
	}
	return &token
}

func TestAuthURLRequestsOfflineAccess(t *testing.T) {
	client := NewClient(Config{ClientID: "cid"})
	u := client.AuthURL()
	if !strings.Contains(u, "access_type=offline") || !strings.Contains(u, "client_id=cid") {
		t.Fatalf("unexpected auth url %q", u)
	}
}
