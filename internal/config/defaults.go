package config

const (
	defaultAssetsDir         = "~/.local/share/quizreel/assets"
	defaultVideosDir         = "~/.local/share/quizreel/videos"
	defaultLogDir            = "~/.local/share/quizreel/logs"
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel         = "llama-3.1-8b-instant"
	defaultGroqTemperature   = 0.7
	defaultGroqMaxTokens     = 50
	defaultGroqTimeout       = 30
	defaultRequestsPerMinute = 30
	defaultTTSBaseURL        = "https://texttospeech.googleapis.com/v1"
	defaultTTSLanguageCode   = "en-US"
	defaultTTSVoice          = "en-US-Chirp3-HD-Achernar"
	defaultTTSSpeakingRate   = 1.0
	defaultTTSTimeout        = 60
	defaultRenderBinary      = "remotion"
	defaultRenderEntryPoint  = "src/index.ts"
	defaultComposition       = "HelloWorld"
	defaultShortsComposition = "ShortsQuiz"
	defaultFFmpegBinary      = "ffmpeg"
	defaultMattePath         = "luma.mp4"
	defaultTransitionSeconds = 2.5
	defaultYouTubeTokenFile  = "~/.config/quizreel/youtube_token.json"
	defaultYouTubeCategory   = "27"
	defaultYouTubePrivacy    = "public"
	defaultNotifyTimeout     = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AssetsDir: defaultAssetsDir,
			VideosDir: defaultVideosDir,
			LogDir:    defaultLogDir,
		},
		Groq: Groq{
			BaseURL:           defaultGroqBaseURL,
			Model:             defaultGroqModel,
			Temperature:       defaultGroqTemperature,
			MaxTokens:         defaultGroqMaxTokens,
			TimeoutSeconds:    defaultGroqTimeout,
			RequestsPerMinute: defaultRequestsPerMinute,
		},
		TTS: TTS{
			BaseURL:        defaultTTSBaseURL,
			LanguageCode:   defaultTTSLanguageCode,
			Voice:          defaultTTSVoice,
			SpeakingRate:   defaultTTSSpeakingRate,
			Pitch:          0,
			TimeoutSeconds: defaultTTSTimeout,
		},
		Render: Render{
			Binary:            defaultRenderBinary,
			EntryPoint:        defaultRenderEntryPoint,
			Composition:       defaultComposition,
			ShortsComposition: defaultShortsComposition,
		},
		Join: Join{
			FFmpegBinary:      defaultFFmpegBinary,
			MattePath:         defaultMattePath,
			TransitionSeconds: defaultTransitionSeconds,
		},
		YouTube: YouTube{
			TokenFile:  defaultYouTubeTokenFile,
			CategoryID: defaultYouTubeCategory,
			Privacy:    defaultYouTubePrivacy,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
