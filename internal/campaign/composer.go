package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"promto/internal/logging"
	"promto/internal/media"
	"promto/internal/productpage"
	"promto/internal/services"
	"promto/internal/services/openai"
)

const previewLength = 128

// Request carries the caller-provided inputs for one campaign.
type Request struct {
	AffiliateURL string
	ProductTitle string
	ImageURLHint string
	Brief        string
}

// Artifact is the full bundle produced by a successful campaign run.
// Nothing in it is persisted beyond the response except the video file.
type Artifact struct {
	Inputs     Inputs `json:"inputs"`
	Assets     Assets `json:"assets"`
	AdCopy     string `json:"adCopy"`
	Video      Video  `json:"video"`
	SocialPost string `json:"socialPost"`
}

type Inputs struct {
	AffiliateURL     string `json:"affiliateUrl"`
	ProductTitle     string `json:"productTitle"`
	Brief            string `json:"brief,omitempty"`
	ImageURLDetected string `json:"imageUrlDetected"`
}

type Assets struct {
	ImageContentType string `json:"imageDataUrlContentType"`
	ImagePreview     string `json:"imageDataUrlPreview"`
}

type Video struct {
	VideoURL string `json:"videoUrl"`
}

// ImageFinder resolves a product page to its main image URL.
type ImageFinder interface {
	MainImage(ctx context.Context, pageURL string) (string, error)
}

// ImageFetcher downloads an image into memory.
type ImageFetcher interface {
	Download(ctx context.Context, imageURL string) (media.Image, error)
}

// CopyWriter produces ad copy and narration audio.
type CopyWriter interface {
	AdCopy(ctx context.Context, title, imageDataURL, brief string) (string, error)
	Speech(ctx context.Context, text string) ([]byte, error)
}

// VideoBuilder encodes a still image plus narration into a served video.
type VideoBuilder interface {
	Build(ctx context.Context, image []byte, audio []byte) (string, error)
}

// Composer sequences image discovery, copywriting, narration, and video
// encoding. Any step failing aborts the whole run; there is no partial
// artifact.
type Composer struct {
	images  ImageFinder
	fetcher ImageFetcher
	writer  CopyWriter
	builder VideoBuilder
	logger  *slog.Logger
}

func NewComposer(images ImageFinder, fetcher ImageFetcher, writer CopyWriter, builder VideoBuilder, logger *slog.Logger) *Composer {
	return &Composer{
		images:  images,
		fetcher: fetcher,
		writer:  writer,
		builder: builder,
		logger:  logging.NewComponentLogger(logger, "campaign"),
	}
}

// Compose runs the full pipeline for one request.
func (c *Composer) Compose(ctx context.Context, req Request) (*Artifact, error) {
	if req.AffiliateURL == "" {
		return nil, services.Wrap(services.ErrValidation, "campaign", "compose", "affiliateUrl required", nil)
	}
	if req.ProductTitle == "" {
		return nil, services.Wrap(services.ErrValidation, "campaign", "compose", "productTitle required", nil)
	}

	imageURL := req.ImageURLHint
	if imageURL == "" {
		detected, err := c.images.MainImage(ctx, req.AffiliateURL)
		if err != nil {
			return nil, err
		}
		imageURL = detected
	}
	imageURL = productpage.NormalizeImageURL(imageURL)

	image, err := c.fetcher.Download(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	dataURL := image.DataURL()

	adCopy, err := c.writer.AdCopy(ctx, req.ProductTitle, dataURL, req.Brief)
	if err != nil {
		return nil, err
	}

	narration := adCopy
	if narration == "" {
		narration = fmt.Sprintf("פרסומת ל-%s", req.ProductTitle)
	}
	audio, err := c.writer.Speech(ctx, narration)
	if err != nil {
		return nil, err
	}

	videoURL, err := c.builder.Build(ctx, image.Bytes, audio)
	if err != nil {
		return nil, err
	}

	post := ComposeSocialPost(req.ProductTitle, adCopy, videoURL, req.AffiliateURL)
	c.logger.Info("campaign composed",
		logging.String("title", req.ProductTitle),
		logging.String("image_url", imageURL),
		logging.String("video_url", videoURL))

	return &Artifact{
		Inputs: Inputs{
			AffiliateURL:     req.AffiliateURL,
			ProductTitle:     req.ProductTitle,
			Brief:            req.Brief,
			ImageURLDetected: imageURL,
		},
		Assets: Assets{
			ImageContentType: image.ContentType,
			ImagePreview:     previewDataURL(dataURL),
		},
		AdCopy:     adCopy,
		Video:      Video{VideoURL: videoURL},
		SocialPost: post,
	}, nil
}

// ComposeSocialPost interpolates the post template. Empty sections are
// dropped so the result never carries blank labels.
func ComposeSocialPost(title, adCopy, videoURL, affiliateURL string) string {
	lines := []string{"🎯 " + title}
	if adCopy != "" {
		lines = append(lines, adCopy)
	}
	if videoURL != "" {
		lines = append(lines, "🎬 וידאו: "+videoURL)
	}
	if affiliateURL != "" {
		lines = append(lines, "🛒 קנה עכשיו: "+affiliateURL)
	}
	return strings.Join(lines, "\n")
}

func previewDataURL(dataURL string) string {
	if len(dataURL) <= previewLength {
		return dataURL + "..."
	}
	return dataURL[:previewLength] + "..."
}

var (
	_ ImageFinder  = (*productpage.Finder)(nil)
	_ ImageFetcher = (*media.Fetcher)(nil)
	_ CopyWriter   = (*openai.Client)(nil)
	_ VideoBuilder = (*media.Builder)(nil)
)
