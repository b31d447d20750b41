package youtube

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/shared/config"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// MaxBatchSize is the most ids the videos endpoint accepts per call.
const MaxBatchSize = 50

// ErrMissingAPIKey is returned when no YouTube Data API key is configured.
var ErrMissingAPIKey = errors.New("YouTube API key is not configured")

// Client wraps the YouTube Data API v3 with API-key auth.
type Client struct {
	service *youtube.Service
	timeout time.Duration
}

// NewClient builds a client from cfg. Extra options are applied after the API
// key, so tests can point the service at a local endpoint.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig, opts ...option.ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service, timeout: cfg.RequestTimeout}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// SearchIDs runs one strict safe-search query restricted to embeddable videos
// in the given duration bucket ("short", "medium", "long" or "any").
func (c *Client) SearchIDs(ctx context.Context, query, duration string, maxResults int64) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	call := c.service.Search.List([]string{"id"}).
		Q(query).
		Type("video").
		VideoEmbeddable("true").
		SafeSearch("strict").
		Order("relevance").
		MaxResults(maxResults)
	if duration != "" {
		call = call.VideoDuration(duration)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search %q (%s): %w", query, duration, err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	return ids, nil
}

// Details looks up snippet, duration, statistics and status for ids in batches
// of at most MaxBatchSize. Unknown ids are silently absent from the result.
func (c *Client) Details(ctx context.Context, ids []string) ([]models.VideoCandidate, error) {
	var videos []models.VideoCandidate

	for i := 0; i < len(ids); i += MaxBatchSize {
		end := i + MaxBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch, err := c.detailsBatch(ctx, ids[i:end])
		if err != nil {
			return nil, err
		}
		videos = append(videos, batch...)
	}

	return videos, nil
}

func (c *Client) detailsBatch(ctx context.Context, batchIDs []string) ([]models.VideoCandidate, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics", "status"}).
		Id(strings.Join(batchIDs, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details for batch: %w", err)
	}

	videos := make([]models.VideoCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, toCandidate(item))
	}
	return videos, nil
}

func toCandidate(item *youtube.Video) models.VideoCandidate {
	video := models.VideoCandidate{ID: item.Id}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.ChannelTitle = item.Snippet.ChannelTitle
		video.Live = item.Snippet.LiveBroadcastContent != "" && item.Snippet.LiveBroadcastContent != "none"
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		}
	}
	if item.ContentDetails != nil {
		video.DurationSeconds = parseDurationSeconds(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
	}
	if item.Status != nil {
		video.PrivacyStatus = item.Status.PrivacyStatus
		video.UploadStatus = item.Status.UploadStatus
		video.Embeddable = item.Status.Embeddable
	}
	return video
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseDurationSeconds parses ISO 8601 durations such as "PT1M30S" or
// "P1DT2H". Anything unparseable is 0.
func parseDurationSeconds(duration string) int {
	matches := isoDuration.FindStringSubmatch(duration)
	if matches == nil {
		return 0
	}

	var totalSeconds int
	for i, unit := range []int{86400, 3600, 60, 1} {
		if matches[i+1] == "" {
			continue
		}
		if n, err := strconv.Atoi(matches[i+1]); err == nil {
			totalSeconds += n * unit
		}
	}
	return totalSeconds
}
