package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"promto/internal/logging"
	"promto/internal/services"
)

// Builder encodes a static image plus narration audio into a vertical video
// in the public video directory. Outputs and staging files use random names
// so concurrent requests never collide.
type Builder struct {
	ffmpegBinary string
	videoDir     string
	tmpDir       string
	logger       *slog.Logger

	runCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewBuilder constructs a video builder.
func NewBuilder(ffmpegBinary, videoDir, tmpDir string, logger *slog.Logger) *Builder {
	return &Builder{
		ffmpegBinary: ffmpegBinary,
		videoDir:     videoDir,
		tmpDir:       tmpDir,
		logger:       logging.NewComponentLogger(logger, "media"),
		runCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec
		},
	}
}

// Build stages the image and audio, runs ffmpeg, and returns the public URL
// path of the resulting video. Staged temp files are removed best effort
// whether the encode succeeds or not.
func (b *Builder) Build(ctx context.Context, image []byte, audio []byte) (string, error) {
	if len(image) == 0 {
		return "", services.Wrap(services.ErrValidation, "media", "build video", "image required", nil)
	}
	if len(audio) == 0 {
		return "", services.Wrap(services.ErrValidation, "media", "build video", "audio required", nil)
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	imagePath := filepath.Join(b.tmpDir, id+".jpg")
	audioPath := filepath.Join(b.tmpDir, id+".mp3")
	outputPath := filepath.Join(b.videoDir, id+".mp4")

	if err := os.WriteFile(imagePath, image, 0o644); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "build video", "stage image", err)
	}
	defer removeQuiet(imagePath)
	if err := os.WriteFile(audioPath, audio, 0o644); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "build video", "stage audio", err)
	}
	defer removeQuiet(audioPath)

	args := encodeArgs(imagePath, audioPath, outputPath)
	output, err := b.runCommand(ctx, b.ffmpegBinary, args...)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "build video",
			fmt.Sprintf("ffmpeg: %s", strings.TrimSpace(string(output))), err)
	}

	b.logger.Info("video encoded",
		logging.String("output", outputPath),
		logging.Int("image_bytes", len(image)),
		logging.Int("audio_bytes", len(audio)))
	return "/videos/" + filepath.Base(outputPath), nil
}

// encodeArgs builds the ffmpeg invocation: a 1080x1920 vertical still-image
// video whose duration follows the narration audio.
func encodeArgs(imagePath, audioPath, outputPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-vf", "scale=1080:1920:force_original_aspect_ratio=decrease,pad=1080:1920:(ow-iw)/2:(oh-ih)/2",
		"-r", "30",
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		outputPath,
	}
}

func removeQuiet(path string) {
	_ = os.Remove(path)
}
