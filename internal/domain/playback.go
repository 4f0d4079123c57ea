// Package domain defines the core types shared across the report pipeline.
package domain

import "time"

// ItemType identifies the kind of media item a playback event refers to.
type ItemType string

// Item types recorded by the playback reporting plugin.
const (
	ItemTypeMovie   ItemType = "Movie"
	ItemTypeEpisode ItemType = "Episode"
)

// Category is the report's primary grouping axis.
type Category string

// Report categories.
const (
	CategoryMovie Category = "movie"
	CategoryTV    Category = "tv"
	CategoryAnime Category = "anime"
)

// PlaybackEvent is one playback session recorded by the media server.
// Events are read-only source data and are never mutated.
type PlaybackEvent struct {
	ItemName     string
	ItemType     ItemType
	ItemID       string
	UserID       string
	ClientName   string
	PlayDuration int64 // seconds
	Timestamp    time.Time
}
