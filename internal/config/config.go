package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the HTTP listener and static asset configuration.
type Server struct {
	Bind      string `toml:"bind"`
	PublicDir string `toml:"public_dir"`
	VideoDir  string `toml:"video_dir"`
	TmpDir    string `toml:"tmp_dir"`
}

// AliExpress contains the signed affiliate API configuration.
type AliExpress struct {
	AppKey         string `toml:"app_key"`
	AppSecret      string `toml:"app_secret"`
	AccessToken    string `toml:"access_token"`
	Gateway        string `toml:"gateway"`
	TargetLanguage string `toml:"target_language"`
	TargetCurrency string `toml:"target_currency"`
	ShipToCountry  string `toml:"ship_to_country"`
	TrackingID     string `toml:"tracking_id"`
}

// OpenAI contains the generative API configuration used for ad copy, viral
// idea prompts, and narration synthesis.
type OpenAI struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	ChatModel      string `toml:"chat_model"`
	SpeechModel    string `toml:"speech_model"`
	SpeechVoice    string `toml:"speech_voice"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Media contains the video encoding configuration.
type Media struct {
	FFmpegBinary string `toml:"ffmpeg_binary"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for promto.
//
// Configuration sections by subsystem:
//   - Server: listen bind and the public/video/tmp directories
//   - AliExpress: affiliate API credentials, gateway, and regional defaults
//   - OpenAI: generative API key, models, and voice
//   - Media: ffmpeg binary used for video muxing
//   - Logging: log format and level
type Config struct {
	Server     Server     `toml:"server"`
	AliExpress AliExpress `toml:"aliexpress"`
	OpenAI     OpenAI     `toml:"openai"`
	Media      Media      `toml:"media"`
	Logging    Logging    `toml:"logging"`
}

// CredentialStatus reports which affiliate credentials are configured without
// exposing their values.
type CredentialStatus struct {
	AppKey      bool
	AppSecret   bool
	AccessToken bool
}

// Credentials returns the presence of each affiliate credential value.
func (c *Config) Credentials() CredentialStatus {
	return CredentialStatus{
		AppKey:      strings.TrimSpace(c.AliExpress.AppKey) != "",
		AppSecret:   strings.TrimSpace(c.AliExpress.AppSecret) != "",
		AccessToken: strings.TrimSpace(c.AliExpress.AccessToken) != "",
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/promto/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment
// variables override file values. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("promto.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// applyEnv overlays the documented environment surface on top of file values.
func (c *Config) applyEnv() {
	overlay := func(target *string, key string) {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			*target = value
		}
	}
	overlay(&c.AliExpress.AppKey, "APP_KEY")
	overlay(&c.AliExpress.AppSecret, "APP_SECRET")
	overlay(&c.AliExpress.AccessToken, "ACCESS_TOKEN")
	overlay(&c.AliExpress.Gateway, "ALI_API_GATEWAY")
	overlay(&c.AliExpress.TargetLanguage, "TARGET_LANGUAGE")
	overlay(&c.AliExpress.TargetCurrency, "TARGET_CURRENCY")
	overlay(&c.AliExpress.ShipToCountry, "SHIP_TO_COUNTRY")
	overlay(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		c.Server.Bind = ":" + port
	}
}

// EnsureDirectories creates the directories the server writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Server.PublicDir, c.Server.VideoDir, c.Server.TmpDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockFilePath returns the lock file guarding the shared video/tmp directories.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.Server.TmpDir, "promto.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
