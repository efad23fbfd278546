package testsupport

import (
	"path/filepath"
	"testing"

	"quizreel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Groq.APIKey = "test-groq"
	cfgVal.TTS.APIKey = "test-tts"
	cfgVal.Paths.AssetsDir = filepath.Join(base, "assets")
	cfgVal.Paths.VideosDir = filepath.Join(base, "videos")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithGroqKey sets the Groq API key on the test config.
func WithGroqKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Groq.APIKey = key
	}
}

// WithTTSKey sets the text-to-speech API key on the test config.
func WithTTSKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TTS.APIKey = key
	}
}

// WithNtfyTopic enables notifications against the given topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}
