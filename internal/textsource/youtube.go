// Package textsource fetches quiz source text from external media.
package textsource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	youtube "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidVideoURL means the URL does not identify a video.
	ErrInvalidVideoURL = errors.New("invalid video URL")

	// ErrNoCaptions means the video exists but has no usable transcript.
	ErrNoCaptions = errors.New("video has no captions")
)

// VideoSource resolves a video URL into a title and transcript text.
type VideoSource interface {
	FetchTranscript(ctx context.Context, url string) (title, text string, err error)
}

// YouTubeSource fetches video metadata and English captions.
type YouTubeSource struct {
	client youtube.Client
	log    zerolog.Logger
}

// NewYouTubeSource creates a caption fetcher.
func NewYouTubeSource(log zerolog.Logger) *YouTubeSource {
	return &YouTubeSource{
		log: log.With().Str("component", "youtube").Logger(),
	}
}

// FetchTranscript returns the video title and its caption text joined
// into one string.
func (s *YouTubeSource) FetchTranscript(ctx context.Context, url string) (string, string, error) {
	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidVideoURL, err)
	}

	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", "", fmt.Errorf("fetch video info: %w", err)
	}

	transcript, err := s.client.GetTranscriptCtx(ctx, video, "en")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrNoCaptions, err)
	}

	parts := make([]string, 0, len(transcript))
	for _, segment := range transcript {
		if segment.Text != "" {
			parts = append(parts, segment.Text)
		}
	}
	text := strings.Join(parts, " ")
	if strings.TrimSpace(text) == "" {
		return "", "", ErrNoCaptions
	}

	s.log.Debug().Str("video_id", videoID).Int("segments", len(transcript)).Msg("transcript fetched")
	return video.Title, text, nil
}
