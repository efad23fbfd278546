package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGroq()
	c.normalizeTTS()
	c.normalizeRender()
	if err := c.normalizeYouTube(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.AssetsDir, err = ExpandPath(c.Paths.AssetsDir); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	if c.Paths.VideosDir, err = ExpandPath(c.Paths.VideosDir); err != nil {
		return fmt.Errorf("paths.videos_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGroq() {
	c.Groq.APIKey = strings.TrimSpace(c.Groq.APIKey)
	if c.Groq.APIKey == "" {
		c.Groq.APIKey = strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
	}
	c.Groq.BaseURL = strings.TrimRight(strings.TrimSpace(c.Groq.BaseURL), "/")
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = defaultGroqBaseURL
	}
	if strings.TrimSpace(c.Groq.Model) == "" {
		c.Groq.Model = defaultGroqModel
	}
	if c.Groq.MaxTokens <= 0 {
		c.Groq.MaxTokens = defaultGroqMaxTokens
	}
	if c.Groq.RequestsPerMinute <= 0 {
		c.Groq.RequestsPerMinute = defaultRequestsPerMinute
	}
}

func (c *Config) normalizeTTS() {
	c.TTS.APIKey = strings.TrimSpace(c.TTS.APIKey)
	if c.TTS.APIKey == "" {
		c.TTS.APIKey = strings.TrimSpace(os.Getenv("GOOGLE_TTS_API_KEY"))
	}
	c.TTS.BaseURL = strings.TrimRight(strings.TrimSpace(c.TTS.BaseURL), "/")
	if c.TTS.BaseURL == "" {
		c.TTS.BaseURL = defaultTTSBaseURL
	}
	if strings.TrimSpace(c.TTS.LanguageCode) == "" {
		c.TTS.LanguageCode = defaultTTSLanguageCode
	}
	if strings.TrimSpace(c.TTS.Voice) == "" {
		c.TTS.Voice = defaultTTSVoice
	}
	if c.TTS.SpeakingRate <= 0 {
		c.TTS.SpeakingRate = defaultTTSSpeakingRate
	}
}

func (c *Config) normalizeRender() {
	if strings.TrimSpace(c.Render.Binary) == "" {
		c.Render.Binary = defaultRenderBinary
	}
	if strings.TrimSpace(c.Render.EntryPoint) == "" {
		c.Render.EntryPoint = defaultRenderEntryPoint
	}
	if strings.TrimSpace(c.Render.Composition) == "" {
		c.Render.Composition = defaultComposition
	}
	if strings.TrimSpace(c.Render.ShortsComposition) == "" {
		c.Render.ShortsComposition = defaultShortsComposition
	}
}

func (c *Config) normalizeYouTube() error {
	c.YouTube.ClientID = strings.TrimSpace(c.YouTube.ClientID)
	if c.YouTube.ClientID == "" {
		c.YouTube.ClientID = strings.TrimSpace(os.Getenv("YOUTUBE_CLIENT_ID"))
	}
	c.YouTube.ClientSecret = strings.TrimSpace(c.YouTube.ClientSecret)
	if c.YouTube.ClientSecret == "" {
		c.YouTube.ClientSecret = strings.TrimSpace(os.Getenv("YOUTUBE_CLIENT_SECRET"))
	}
	var err error
	if c.YouTube.TokenFile, err = ExpandPath(c.YouTube.TokenFile); err != nil {
		return fmt.Errorf("youtube.token_file: %w", err)
	}
	if strings.TrimSpace(c.YouTube.CategoryID) == "" {
		c.YouTube.CategoryID = defaultYouTubeCategory
	}
	if strings.TrimSpace(c.YouTube.Privacy) == "" {
		c.YouTube.Privacy = defaultYouTubePrivacy
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
