package catalog

import (
	"time"
)

// Playlist is the stored form of a playlist. Videos keeps membership order.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Videos      []string  `json:"videos"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistSummary is one row of a user's playlist listing.
type PlaylistSummary struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	NumberOfVideos    int       `json:"numberOfVideos"`
	OwnerID           string    `json:"owner"`
	PlaylistThumbnail *string   `json:"playlistThumbnail,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// PlaylistDetail is a playlist with its member videos resolved.
type PlaylistDetail struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	OwnerID           string          `json:"owner"`
	Videos            []PlaylistVideo `json:"videos"`
	NumberOfVideos    int             `json:"numberOfVideos"`
	PlaylistThumbnail *string         `json:"playlistThumbnail,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// PlaylistVideo is a member video inside a materialized playlist.
// Owner is nil when the owning user no longer exists.
type PlaylistVideo struct {
	ID        string      `json:"id"`
	Thumbnail string      `json:"thumbnail"`
	Title     string      `json:"title"`
	Duration  float64     `json:"duration"`
	Views     int64       `json:"views"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
}

// OwnerBrief is the public projection of a user embedded in video results.
type OwnerBrief struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// ChannelVideo is one video of a channel listing. Owner is always resolved.
type ChannelVideo struct {
	ID          string     `json:"id"`
	Thumbnail   string     `json:"thumbnail"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    float64    `json:"duration"`
	Views       int64      `json:"views"`
	Owner       OwnerBrief `json:"owner"`
}

type ChannelStats struct {
	ChannelID        string `json:"channelId"`
	TotalVideos      int64  `json:"totalVideos"`
	TotalViews       int64  `json:"totalViews"`
	TotalSubscribers int64  `json:"totalSubscribers"`
	TotalLikes       int64  `json:"totalLikes"`
}

type Video struct {
	ID          string    `json:"id"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VideoDetail is a single video with its owner joined in (nil if the owner is gone).
type VideoDetail struct {
	Video
	Owner *OwnerBrief `json:"ownerDetails,omitempty"`
}

// VideoQuery drives the published video listing.
type VideoQuery struct {
	Query    string
	OwnerID  string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

type VideoPage struct {
	Videos      []Video `json:"videos"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	TotalVideos int64   `json:"totalVideos"`
	TotalPages  int64   `json:"totalPages"`
}

// VideoUpdate carries the optional fields of a video edit.
type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
}

type Tweet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	maxNameLen        = 200
	maxDescriptionLen = 1000
	maxTitleLen       = 300
	maxTweetLen       = 280

	defaultPageLimit = 10
	maxPageLimit     = 100
)

var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}
