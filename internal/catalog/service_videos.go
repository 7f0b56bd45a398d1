package catalog

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	videoFolder     = "videos"
	thumbnailFolder = "thumbnails"
)

// VideoUpload is a new video as submitted by its owner.
type VideoUpload struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *MediaFile
	Thumbnail   *MediaFile
}

// VideoEdit holds the optional changes of an UpdateVideo call.
type VideoEdit struct {
	Title       *string
	Description *string
	Thumbnail   *MediaFile
}

// PublishVideo uploads both files and records the video. If recording
// fails, the uploaded objects are removed again.
func (s *Service) PublishVideo(ctx context.Context, ownerID string, up VideoUpload) (*Video, error) {
	if err := requireIDs("user id", ownerID); err != nil {
		return nil, err
	}
	title, err := validateTitle(up.Title)
	if err != nil {
		return nil, err
	}
	description, err := validateVideoDescription(up.Description)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(up.Duration) || math.IsInf(up.Duration, 0) || up.Duration <= 0 {
		return nil, invalidArgument("duration must be a positive number of seconds")
	}
	if up.VideoFile == nil {
		return nil, invalidArgument("video file is required")
	}
	if up.Thumbnail == nil {
		return nil, invalidArgument("thumbnail is required")
	}
	if s.media == nil {
		return nil, internalError("publish video", errors.New("media store not configured"))
	}

	videoURL, err := s.media.Upload(ctx, videoFolder, *up.VideoFile)
	if err != nil {
		return nil, internalError("upload video file", err)
	}
	thumbURL, err := s.media.Upload(ctx, thumbnailFolder, *up.Thumbnail)
	if err != nil {
		s.removeMedia(ctx, videoURL)
		return nil, internalError("upload thumbnail", err)
	}

	v, err := s.store.CreateVideo(ctx, &Video{
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		Title:       title,
		Description: description,
		Duration:    up.Duration,
		OwnerID:     ownerID,
	})
	if err != nil {
		s.removeMedia(ctx, videoURL, thumbURL)
		return nil, internalError("create video", err)
	}
	s.stats.Invalidate(ctx, ownerID)
	s.events.Publish(ctx, EventVideoPublished, v)
	return v, nil
}

// GetVideoByID returns the video with its owner and counts the view.
// Unpublished videos are visible to their owner only.
func (s *Service) GetVideoByID(ctx context.Context, viewerID, videoID string) (*VideoDetail, error) {
	if err := requireIDs("video id", videoID); err != nil {
		return nil, err
	}
	v, err := s.store.VideoByID(ctx, videoID, viewerID, true)
	if err != nil {
		return nil, internalError("get video", err)
	}
	return v, nil
}

// ListVideos normalizes q and pages through published videos.
func (s *Service) ListVideos(ctx context.Context, q VideoQuery) (*VideoPage, error) {
	if q.OwnerID != "" {
		if err := requireIDs("user id", q.OwnerID); err != nil {
			return nil, err
		}
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
		q.SortDesc = true
	}
	if _, ok := videoSortColumns[q.SortBy]; !ok {
		return nil, invalidArgument("sortBy must be one of createdAt, views, duration, title")
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 1 {
		return nil, invalidArgument("page must be at least 1")
	}
	if q.Limit == 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit < 1 || q.Limit > maxPageLimit {
		return nil, invalidArgument("limit must be between 1 and 100")
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return nil, invalidArgument("page is out of range")
	}
	q.Query = strings.TrimSpace(q.Query)

	page, err := s.store.ListVideos(ctx, q)
	if err != nil {
		return nil, internalError("list videos", err)
	}
	return page, nil
}

// UpdateVideo edits title, description or thumbnail. A replaced thumbnail is
// removed from the media store once the update is stored.
func (s *Service) UpdateVideo(ctx context.Context, callerID, videoID string, edit VideoEdit) (*Video, error) {
	if err := requireIDs("user id", callerID, "video id", videoID); err != nil {
		return nil, err
	}
	if edit.Title == nil && edit.Description == nil && edit.Thumbnail == nil {
		return nil, invalidArgument("nothing to update")
	}

	var upd VideoUpdate
	if edit.Title != nil {
		title, err := validateTitle(*edit.Title)
		if err != nil {
			return nil, err
		}
		upd.Title = &title
	}
	if edit.Description != nil {
		description, err := validateVideoDescription(*edit.Description)
		if err != nil {
			return nil, err
		}
		upd.Description = &description
	}
	if edit.Thumbnail != nil {
		if s.media == nil {
			return nil, internalError("update video", errors.New("media store not configured"))
		}
		thumbURL, err := s.media.Upload(ctx, thumbnailFolder, *edit.Thumbnail)
		if err != nil {
			return nil, internalError("upload thumbnail", err)
		}
		upd.Thumbnail = &thumbURL
	}

	v, previous, err := s.store.UpdateVideo(ctx, videoID, callerID, upd)
	if err != nil {
		if upd.Thumbnail != nil {
			s.removeMedia(ctx, *upd.Thumbnail)
		}
		return nil, internalError("update video", err)
	}
	if upd.Thumbnail != nil && previous != *upd.Thumbnail {
		s.removeMedia(ctx, previous)
	}
	return v, nil
}

func (s *Service) TogglePublishStatus(ctx context.Context, callerID, videoID string) (*Video, error) {
	if err := requireIDs("user id", callerID, "video id", videoID); err != nil {
		return nil, err
	}
	v, err := s.store.TogglePublish(ctx, videoID, callerID)
	if err != nil {
		return nil, internalError("toggle publish status", err)
	}
	return v, nil
}

// DeleteVideo removes the video together with its playlist memberships and
// likes, then drops its media objects.
func (s *Service) DeleteVideo(ctx context.Context, callerID, videoID string) (*Video, error) {
	if err := requireIDs("user id", callerID, "video id", videoID); err != nil {
		return nil, err
	}
	v, err := s.store.DeleteVideo(ctx, videoID, callerID)
	if err != nil {
		return nil, internalError("delete video", err)
	}
	s.removeMedia(ctx, v.VideoFile, v.Thumbnail)
	s.stats.Invalidate(ctx, callerID)
	return v, nil
}

// removeMedia deletes objects best effort; failures are only logged.
func (s *Service) removeMedia(ctx context.Context, urls ...string) {
	if s.media == nil {
		return
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := s.media.Delete(ctx, u); err != nil {
			s.log.WithError(err).WithField("url", u).Warn("catalog: delete media object")
		}
	}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalidArgument("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", invalidArgument("title must be at most 300 characters")
	}
	return title, nil
}

func validateVideoDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", invalidArgument("description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "", invalidArgument("description must be at most 1000 characters")
	}
	return description, nil
}
