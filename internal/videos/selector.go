package videos

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/shared/logging"
	"github.com/wizqo2024/wizqo-sub002/shared/monitoring"
	"github.com/wizqo2024/wizqo-sub002/shared/storage"
)

const (
	MinDurationSeconds = 300
	MaxDurationSeconds = 3000
	MinViewCount       = 5000

	searchResultsPerQuery = 25
)

// PublishedCutoff excludes videos uploaded before this date.
var PublishedCutoff = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)

// dayTopics refine each query for the matching plan day.
var dayTopics = [models.PlanDays]string{
	"for beginners basics",
	"fundamentals",
	"core techniques",
	"practice exercises",
	"intermediate skills",
	"project ideas",
	"tips and next steps",
}

var durationBuckets = []string{"medium", "long"}

var (
	// ErrUnavailable means no search backend is configured.
	ErrUnavailable = errors.New("video search is not configured")
	// ErrNoCandidates means every search result failed the quality filter.
	ErrNoCandidates = errors.New("no video passed the quality filter")
)

// Searcher is the subset of the YouTube client the selector needs.
type Searcher interface {
	SearchIDs(ctx context.Context, query, duration string, maxResults int64) ([]string, error)
	Details(ctx context.Context, ids []string) ([]models.VideoCandidate, error)
}

// Selector picks one tutorial video per hobby and day.
type Selector struct {
	searcher Searcher
	history  storage.VideoHistory
	log      *logging.Logger
	metrics  *monitoring.Metrics
	monitor  *monitoring.Monitor
}

// NewSelector returns a selector. A nil searcher makes every lookup fail
// with ErrUnavailable so callers use the static fallback.
func NewSelector(searcher Searcher, history storage.VideoHistory, log *logging.Logger, metrics *monitoring.Metrics, monitor *monitoring.Monitor) *Selector {
	if log == nil {
		log = logging.Nop()
	}
	return &Selector{
		searcher: searcher,
		history:  history,
		log:      log,
		metrics:  metrics,
		monitor:  monitor,
	}
}

// HobbyKey normalizes a hobby for history grouping.
func HobbyKey(hobby string) string {
	return strings.Join(strings.Fields(strings.ToLower(hobby)), " ")
}

// Queries returns the search queries for hobby on day. Days outside 1..7
// wrap around; day <= 0 means no topic suffix.
func Queries(hobby string, day int) []string {
	hobby = strings.TrimSpace(hobby)
	suffix := ""
	if day > 0 {
		suffix = " " + dayTopics[(day-1)%len(dayTopics)]
	}
	return []string{
		hobby + " tutorial" + suffix,
		hobby + " course" + suffix,
		hobby + " guide" + suffix,
	}
}

// Acceptable reports whether v passes the duration, popularity and status filter.
func Acceptable(v models.VideoCandidate) bool {
	return v.DurationSeconds >= MinDurationSeconds &&
		v.DurationSeconds <= MaxDurationSeconds &&
		v.ViewCount >= MinViewCount &&
		v.PrivacyStatus == "public" &&
		v.UploadStatus == "processed" &&
		v.Embeddable &&
		!v.Live &&
		v.PublishedAt.After(PublishedCutoff)
}

// Rank filters candidates and orders them by views, then recency.
func Rank(candidates []models.VideoCandidate) []models.VideoCandidate {
	ranked := make([]models.VideoCandidate, 0, len(candidates))
	for _, c := range candidates {
		if Acceptable(c) {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ViewCount != ranked[j].ViewCount {
			return ranked[i].ViewCount > ranked[j].ViewCount
		}
		return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
	})
	return ranked
}

// SelectVideo searches for hobby tutorials for day and returns the best video
// not chosen for the hobby in the history window. When every candidate was
// recently used the top one is repeated.
func (s *Selector) SelectVideo(ctx context.Context, hobby string, day int) (*models.VideoCandidate, error) {
	if s.searcher == nil {
		return nil, ErrUnavailable
	}

	start := time.Now()
	video, source, err := s.selectVideo(ctx, hobby, day)
	if err != nil {
		if s.monitor != nil {
			s.monitor.RecordFailure("youtube", err, time.Since(start))
		}
		return nil, err
	}
	if s.monitor != nil {
		s.monitor.RecordSuccess("youtube", "selected "+video.ID, time.Since(start))
	}
	if s.metrics != nil {
		s.metrics.VideoSelections.WithLabelValues(source).Inc()
	}
	return video, nil
}

func (s *Selector) selectVideo(ctx context.Context, hobby string, day int) (*models.VideoCandidate, string, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, query := range Queries(hobby, day) {
		for _, bucket := range durationBuckets {
			found, err := s.searcher.SearchIDs(ctx, query, bucket, searchResultsPerQuery)
			if err != nil {
				return nil, "", err
			}
			for _, id := range found {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}
	if len(ids) == 0 {
		return nil, "", ErrNoCandidates
	}

	details, err := s.searcher.Details(ctx, ids)
	if err != nil {
		return nil, "", err
	}
	ranked := Rank(details)
	if len(ranked) == 0 {
		return nil, "", ErrNoCandidates
	}

	key := HobbyKey(hobby)
	chosen, source := s.pickUnused(ctx, key, ranked)

	if s.history != nil {
		if err := s.history.Append(ctx, key, chosen.ID); err != nil {
			s.log.Warn("failed to persist video history", "hobby", key, "error", err)
		}
	}

	s.log.Debug("video selected", "hobby", key, "day", day, "video", chosen.ID,
		"views", chosen.ViewCount, "candidates", len(ranked), "source", source)
	return &chosen, source, nil
}

func (s *Selector) pickUnused(ctx context.Context, key string, ranked []models.VideoCandidate) (models.VideoCandidate, string) {
	if s.history == nil {
		return ranked[0], "search"
	}

	recent, err := s.history.Recent(ctx, key)
	if err != nil {
		s.log.Warn("failed to read video history", "hobby", key, "error", err)
		return ranked[0], "search"
	}
	used := make(map[string]bool, len(recent))
	for _, e := range recent {
		used[e.ID] = true
	}

	for _, c := range ranked {
		if !used[c.ID] {
			return c, "search"
		}
	}
	return ranked[0], "repeat"
}

// Choice is the video attached to a plan day.
type Choice struct {
	VideoID string
	Title   string
	Source  string
}

// VideoFor returns a searched video for the day, or a static fallback when
// search is unavailable or fails. It never returns an empty id.
func (s *Selector) VideoFor(ctx context.Context, hobby string, day int) Choice {
	video, err := s.SelectVideo(ctx, hobby, day)
	if err == nil {
		return Choice{VideoID: video.ID, Title: video.Title, Source: "search"}
	}
	if !errors.Is(err, ErrUnavailable) {
		s.log.Warn("video search failed, using fallback", "hobby", hobby, "day", day, "error", err)
	}
	if s.metrics != nil {
		s.metrics.VideoSelections.WithLabelValues("fallback").Inc()
	}
	return Choice{
		VideoID: FallbackVideoID(hobby, day),
		Title:   fmt.Sprintf("%s - Day %d tutorial", titleCase(hobby), day),
		Source:  "fallback",
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
