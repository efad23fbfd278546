package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. API keys are checked by the
// commands that need them, so validation here covers structure only.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateGroq(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateJoin(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.AssetsDir == "" {
		return errors.New("paths.assets_dir must be set")
	}
	if c.Paths.VideosDir == "" {
		return errors.New("paths.videos_dir must be set")
	}
	if c.Paths.AssetsDir == c.Paths.VideosDir {
		return errors.New("paths.assets_dir and paths.videos_dir must differ")
	}
	return nil
}

func (c *Config) validateGroq() error {
	if c.Groq.RequestsPerMinute <= 0 {
		return errors.New("groq.requests_per_minute must be positive")
	}
	if c.Groq.Temperature < 0 || c.Groq.Temperature > 2 {
		return errors.New("groq.temperature must be between 0 and 2")
	}
	if c.Groq.TimeoutSeconds < 0 {
		return errors.New("groq.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if c.TTS.SpeakingRate < 0.25 || c.TTS.SpeakingRate > 4 {
		return errors.New("tts.speaking_rate must be between 0.25 and 4.0")
	}
	if c.TTS.Pitch < -20 || c.TTS.Pitch > 20 {
		return errors.New("tts.pitch must be between -20.0 and 20.0")
	}
	return nil
}

func (c *Config) validateJoin() error {
	if c.Join.TransitionSeconds <= 0 {
		return errors.New("join.transition_seconds must be positive")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	switch c.YouTube.Privacy {
	case "public", "private", "unlisted":
		return nil
	default:
		return fmt.Errorf("youtube.privacy must be public, private, or unlisted (got %q)", c.YouTube.Privacy)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
