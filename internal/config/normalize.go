package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeServer(); err != nil {
		return err
	}
	c.normalizeAliExpress()
	c.normalizeOpenAI()
	c.normalizeMedia()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeServer() error {
	var err error
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	if c.Server.PublicDir, err = expandPath(c.Server.PublicDir); err != nil {
		return fmt.Errorf("server.public_dir: %w", err)
	}
	if strings.TrimSpace(c.Server.VideoDir) == "" {
		c.Server.VideoDir = filepath.Join(c.Server.PublicDir, defaultVideoSubdir)
	}
	if c.Server.VideoDir, err = expandPath(c.Server.VideoDir); err != nil {
		return fmt.Errorf("server.video_dir: %w", err)
	}
	if c.Server.TmpDir, err = expandPath(c.Server.TmpDir); err != nil {
		return fmt.Errorf("server.tmp_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAliExpress() {
	a := &c.AliExpress
	a.AppKey = strings.TrimSpace(a.AppKey)
	a.AppSecret = strings.TrimSpace(a.AppSecret)
	a.AccessToken = strings.TrimSpace(a.AccessToken)
	a.Gateway = strings.TrimRight(strings.TrimSpace(a.Gateway), "/")
	if a.Gateway == "" {
		a.Gateway = defaultGateway
	}
	if a.TargetLanguage = strings.TrimSpace(a.TargetLanguage); a.TargetLanguage == "" {
		a.TargetLanguage = defaultTargetLanguage
	}
	if a.TargetCurrency = strings.TrimSpace(a.TargetCurrency); a.TargetCurrency == "" {
		a.TargetCurrency = defaultTargetCurrency
	}
	if a.ShipToCountry = strings.TrimSpace(a.ShipToCountry); a.ShipToCountry == "" {
		a.ShipToCountry = defaultShipToCountry
	}
	if a.TrackingID = strings.TrimSpace(a.TrackingID); a.TrackingID == "" {
		a.TrackingID = defaultTrackingID
	}
}

func (c *Config) normalizeOpenAI() {
	o := &c.OpenAI
	o.APIKey = strings.TrimSpace(o.APIKey)
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		o.BaseURL = defaultOpenAIBaseURL
	}
	if o.ChatModel = strings.TrimSpace(o.ChatModel); o.ChatModel == "" {
		o.ChatModel = defaultChatModel
	}
	if o.SpeechModel = strings.TrimSpace(o.SpeechModel); o.SpeechModel == "" {
		o.SpeechModel = defaultSpeechModel
	}
	if o.SpeechVoice = strings.TrimSpace(o.SpeechVoice); o.SpeechVoice == "" {
		o.SpeechVoice = defaultSpeechVoice
	}
	if o.TimeoutSeconds <= 0 {
		o.TimeoutSeconds = defaultOpenAITimeout
	}
}

func (c *Config) normalizeMedia() {
	if c.Media.FFmpegBinary = strings.TrimSpace(c.Media.FFmpegBinary); c.Media.FFmpegBinary == "" {
		c.Media.FFmpegBinary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level)); c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
