package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://texttospeech.googleapis.com/v1"
	defaultLanguage    = "en-US"
	defaultVoice       = "en-US-Chirp3-HD-Achernar"
	mp3Encoding        = "MP3"
	defaultHTTPTimeout = 60 * time.Second
)

// Config captures the runtime settings required to talk to the TTS service.
type Config struct {
	APIKey         string
	BaseURL        string
	LanguageCode   string
	Voice          string
	SpeakingRate   float64
	Pitch          float64
	TimeoutSeconds int
}

// Client wraps the text:synthesize endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a TTS client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			LanguageCode:   strings.TrimSpace(cfg.LanguageCode),
			Voice:          strings.TrimSpace(cfg.Voice),
			SpeakingRate:   cfg.SpeakingRate,
			Pitch:          cfg.Pitch,
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.LanguageCode == "" {
		client.cfg.LanguageCode = defaultLanguage
	}
	if client.cfg.Voice == "" {
		client.cfg.Voice = defaultVoice
	}
	if client.cfg.SpeakingRate <= 0 {
		client.cfg.SpeakingRate = 1.0
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

type synthesizeRequest struct {
	Input       synthesisInput  `json:"input"`
	Voice       voiceSelection  `json:"voice"`
	AudioConfig audioConfigSpec `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
}

type audioConfigSpec struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate"`
	Pitch         float64 `json:"pitch"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Synthesize converts text into MP3 audio using the configured voice, or the
// provided voice override when non-empty.
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("tts synthesize: text required")
	}
	if c.cfg.APIKey == "" {
		return nil, errors.New("tts synthesize: api key required")
	}
	if strings.TrimSpace(voice) == "" {
		voice = c.cfg.Voice
	}

	payload := synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceSelection{LanguageCode: c.cfg.LanguageCode, Name: voice},
		AudioConfig: audioConfigSpec{
			AudioEncoding: mp3Encoding,
			SpeakingRate:  c.cfg.SpeakingRate,
			Pitch:         c.cfg.Pitch,
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tts request: encode body: %w", err)
	}

	endpoint := c.cfg.BaseURL + "/text:synthesize?key=" + url.QueryEscape(c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("tts request: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts request: read body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("tts request: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed synthesizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("tts request: decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("tts request: api error: %s", strings.TrimSpace(parsed.Error.Message))
	}
	if parsed.AudioContent == "" {
		return nil, errors.New("tts request: empty audio content")
	}
	audio, err := base64.StdEncoding.DecodeString(parsed.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("tts request: decode audio: %w", err)
	}
	return audio, nil
}
