package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSynthesizeSendsFixedAudioParameters(t *testing.T) {
	audio := []byte("mp3-bytes")
	var captured synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/text:synthesize") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "tts_key" {
			t.Errorf("missing api key query param")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString(audio),
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "tts_key", BaseURL: server.URL})
	got, err := client.Synthesize(context.Background(), "What is the largest desert?", "")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !bytes.Equal(got, audio) {
		t.Fatalf("audio mismatch: %q", got)
	}
	if captured.AudioConfig.AudioEncoding != mp3Encoding {
		t.Fatalf("expected MP3 encoding, got %q", captured.AudioConfig.AudioEncoding)
	}
	if captured.AudioConfig.SpeakingRate != 1.0 || captured.AudioConfig.Pitch != 0.0 {
		t.Fatalf("unexpected audio config %+v", captured.AudioConfig)
	}
	if captured.Voice.Name != defaultVoice || captured.Voice.LanguageCode != defaultLanguage {
		t.Fatalf("unexpected voice %+v", captured.Voice)
	}
}

func TestSynthesizeVoiceOverride(t *testing.T) {
	var captured synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]string{"audioContent": base64.StdEncoding.EncodeToString([]byte("x"))})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if _, err := client.Synthesize(context.Background(), "hello", "en-GB-Neural2-A"); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if captured.Voice.Name != "en-GB-Neural2-A" {
		t.Fatalf("voice override not applied: %q", captured.Voice.Name)
	}
}

func TestSynthesizeServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Synthesize(context.Background(), "hello", "")
	if err == nil || !strings.Contains(err.Error(), "http 403") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSynthesizeEmptyAudioContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if _, err := client.Synthesize(context.Background(), "hello", ""); err == nil {
		t.Fatal("expected error for empty audio content")
	}
}

func TestSynthesizeRequiresTextAndKey(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if _, err := client.Synthesize(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for empty text")
	}
	client = NewClient(Config{})
	if _, err := client.Synthesize(context.Background(), "hello", ""); err == nil {
		t.Fatal("expected error without api key")
	}
}
