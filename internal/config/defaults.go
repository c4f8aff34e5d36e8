package config

const (
	defaultBind           = ":4000"
	defaultPublicDir      = "~/.local/share/promto/public"
	defaultVideoSubdir    = "videos"
	defaultTmpDir         = "~/.local/share/promto/tmp"
	defaultGateway        = "https://api-sg.aliexpress.com/sync"
	defaultTargetLanguage = "en"
	defaultTargetCurrency = "USD"
	defaultShipToCountry  = "US"
	defaultTrackingID     = "default"
	defaultOpenAIBaseURL  = "https://api.openai.com/v1"
	defaultChatModel      = "gpt-4o-mini"
	defaultSpeechModel    = "gpt-4o-mini-tts"
	defaultSpeechVoice    = "alloy"
	defaultOpenAITimeout  = 120
	defaultFFmpegBinary   = "ffmpeg"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind:      defaultBind,
			PublicDir: defaultPublicDir,
			TmpDir:    defaultTmpDir,
		},
		AliExpress: AliExpress{
			Gateway:        defaultGateway,
			TargetLanguage: defaultTargetLanguage,
			TargetCurrency: defaultTargetCurrency,
			ShipToCountry:  defaultShipToCountry,
			TrackingID:     defaultTrackingID,
		},
		OpenAI: OpenAI{
			BaseURL:        defaultOpenAIBaseURL,
			ChatModel:      defaultChatModel,
			SpeechModel:    defaultSpeechModel,
			SpeechVoice:    defaultSpeechVoice,
			TimeoutSeconds: defaultOpenAITimeout,
		},
		Media: Media{
			FFmpegBinary: defaultFFmpegBinary,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
