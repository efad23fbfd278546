// Package config loads and validates the TOML configuration for quizreel.
//
// Configuration sections by subsystem:
//   - Paths: asset, video, and log directories
//   - Groq: narrative generation via the Groq chat completions API
//   - TTS: Google Cloud Text-to-Speech settings
//   - Render: the Remotion render runner and composition selection
//   - Join: ffmpeg transition settings for the final combined video
//   - YouTube: OAuth client and upload metadata defaults
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
//
// Load resolves the config path, decodes the file when present, then
// normalizes (path expansion, env fallbacks) and validates the result.
package config
