package models

import "time"

// VideoCandidate is a search result with the details needed to rank it.
type VideoCandidate struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ChannelTitle    string    `json:"channelTitle"`
	PublishedAt     time.Time `json:"publishedAt"`
	DurationSeconds int       `json:"durationSeconds"`
	ViewCount       int64     `json:"viewCount"`

	PrivacyStatus string `json:"privacyStatus,omitempty"`
	UploadStatus  string `json:"uploadStatus,omitempty"`
	Embeddable    bool   `json:"embeddable"`
	Live          bool   `json:"live"`
}

// URL returns the watch URL for the video.
func (v *VideoCandidate) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// VideoHistoryEntry records a video chosen for a hobby.
type VideoHistoryEntry struct {
	ID       string    `json:"id"`
	ChosenAt time.Time `json:"chosenAt"`
}
