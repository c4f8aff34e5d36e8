package preflight

import (
	"promto/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckBinary("FFmpeg", cfg.Media.FFmpegBinary),
		CheckAffiliateCredentials(cfg.Credentials()),
		CheckOpenAIKey(cfg.OpenAI.APIKey),
		CheckDirectoryAccess("Video directory", cfg.Server.VideoDir),
		CheckDirectoryAccess("Temp directory", cfg.Server.TmpDir),
	}
	if cfg.Server.PublicDir != "" {
		results = append(results, CheckDirectoryAccess("Public directory", cfg.Server.PublicDir))
	}
	return results
}
