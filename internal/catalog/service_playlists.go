package catalog

import (
	"context"
	"strings"
	"unicode/utf8"
)

// GetUserPlaylists lists every playlist owned by userID. An owner without
// playlists gets an empty, non-nil slice.
func (s *Service) GetUserPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error) {
	if err := requireIDs("user id", userID); err != nil {
		return nil, err
	}
	playlists, err := s.store.UserPlaylists(ctx, userID)
	if err != nil {
		return nil, internalError("get user playlists", err)
	}
	return playlists, nil
}

func (s *Service) GetPlaylistByID(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	if err := requireIDs("playlist id", playlistID); err != nil {
		return nil, err
	}
	detail, err := s.store.PlaylistDetail(ctx, playlistID)
	if err != nil {
		return nil, internalError("get playlist", err)
	}
	return detail, nil
}

func (s *Service) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*Playlist, error) {
	if err := requireIDs("user id", ownerID); err != nil {
		return nil, err
	}
	name, description, err := validatePlaylistFields(name, description)
	if err != nil {
		return nil, err
	}
	pl, err := s.store.CreatePlaylist(ctx, ownerID, name, description)
	if err != nil {
		return nil, internalError("create playlist", err)
	}
	s.events.Publish(ctx, EventPlaylistCreated, pl)
	return pl, nil
}

func (s *Service) AddVideoToPlaylist(ctx context.Context, callerID, playlistID, videoID string) (*Playlist, error) {
	if err := requireIDs("user id", callerID, "playlist id", playlistID, "video id", videoID); err != nil {
		return nil, err
	}
	pl, err := s.store.AppendPlaylistVideo(ctx, playlistID, videoID, callerID)
	if err != nil {
		return nil, internalError("add video to playlist", err)
	}
	s.events.Publish(ctx, EventPlaylistVideoAdded, map[string]any{
		"playlistId": pl.ID,
		"videoId":    videoID,
		"playlist":   pl,
	})
	return pl, nil
}

// RemoveVideoFromPlaylist pulls every occurrence of videoID. Removing a
// video that is not in the playlist succeeds and returns it unchanged.
func (s *Service) RemoveVideoFromPlaylist(ctx context.Context, callerID, playlistID, videoID string) (*Playlist, error) {
	if err := requireIDs("user id", callerID, "playlist id", playlistID, "video id", videoID); err != nil {
		return nil, err
	}
	pl, err := s.store.PullPlaylistVideo(ctx, playlistID, videoID, callerID)
	if err != nil {
		return nil, internalError("remove video from playlist", err)
	}
	s.events.Publish(ctx, EventPlaylistVideoRemoved, map[string]any{
		"playlistId": pl.ID,
		"videoId":    videoID,
		"playlist":   pl,
	})
	return pl, nil
}

func (s *Service) DeletePlaylist(ctx context.Context, callerID, playlistID string) error {
	if err := requireIDs("user id", callerID, "playlist id", playlistID); err != nil {
		return err
	}
	if err := s.store.DeletePlaylist(ctx, playlistID, callerID); err != nil {
		return internalError("delete playlist", err)
	}
	s.events.Publish(ctx, EventPlaylistDeleted, map[string]any{
		"playlistId": playlistID,
	})
	return nil
}

func (s *Service) UpdatePlaylist(ctx context.Context, callerID, playlistID, name, description string) (*Playlist, error) {
	if err := requireIDs("user id", callerID, "playlist id", playlistID); err != nil {
		return nil, err
	}
	name, description, err := validatePlaylistFields(name, description)
	if err != nil {
		return nil, err
	}
	pl, err := s.store.UpdatePlaylist(ctx, playlistID, callerID, name, description)
	if err != nil {
		return nil, internalError("update playlist", err)
	}
	s.events.Publish(ctx, EventPlaylistUpdated, pl)
	return pl, nil
}

func validatePlaylistFields(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return "", "", invalidArgument("name and description are required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", "", invalidArgument("name must be at most 200 characters")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "", "", invalidArgument("description must be at most 1000 characters")
	}
	return name, description, nil
}
