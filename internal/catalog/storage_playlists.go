package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const playlistColumns = `id::text, name, description, videos::text[], owner_id::text, created_at, updated_at`

const playlistOwnerQuery = `SELECT owner_id::text FROM playlists WHERE id = $1`

func scanPlaylist(row pgx.Row) (*Playlist, error) {
	var pl Playlist
	if err := row.Scan(
		&pl.ID,
		&pl.Name,
		&pl.Description,
		&pl.Videos,
		&pl.OwnerID,
		&pl.CreatedAt,
		&pl.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if pl.Videos == nil {
		pl.Videos = []string{}
	}
	return &pl, nil
}

// UserPlaylists lists the owner's playlists with the member count and the
// cover thumbnail (first resolvable member in membership order).
func (s *PostgresStore) UserPlaylists(ctx context.Context, ownerID string) ([]PlaylistSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id::text, p.name, p.description, p.owner_id::text, p.created_at,
		       COUNT(DISTINCT v.id) AS number_of_videos,
		       (array_agg(v.thumbnail ORDER BY m.ord) FILTER (WHERE v.id IS NOT NULL))[1] AS playlist_thumbnail
		FROM playlists p
		LEFT JOIN LATERAL unnest(p.videos) WITH ORDINALITY AS m(video_id, ord) ON TRUE
		LEFT JOIN videos v ON v.id = m.video_id
		WHERE p.owner_id = $1::uuid
		GROUP BY p.id
		ORDER BY p.created_at ASC, p.id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []PlaylistSummary{}
	for rows.Next() {
		var ps PlaylistSummary
		if err := rows.Scan(
			&ps.ID,
			&ps.Name,
			&ps.Description,
			&ps.OwnerID,
			&ps.CreatedAt,
			&ps.NumberOfVideos,
			&ps.PlaylistThumbnail,
		); err != nil {
			return nil, err
		}
		playlists = append(playlists, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return playlists, nil
}

// PlaylistDetail materializes one playlist in a single statement. Member
// ids that no longer resolve to a video are dropped; a video whose owner is
// gone is kept with a nil Owner. No rows means the playlist does not exist.
func (s *PostgresStore) PlaylistDetail(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id::text, p.name, p.description, p.owner_id::text, p.created_at, p.updated_at,
		       v.id::text, v.thumbnail, v.title, v.duration, v.views,
		       u.id::text, u.username, u.email, u.avatar
		FROM playlists p
		LEFT JOIN LATERAL unnest(p.videos) WITH ORDINALITY AS m(video_id, ord) ON TRUE
		LEFT JOIN videos v ON v.id = m.video_id
		LEFT JOIN users u ON u.id = v.owner_id
		WHERE p.id = $1::uuid
		ORDER BY m.ord ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detail *PlaylistDetail
	seen := make(map[string]bool)
	for rows.Next() {
		var pl PlaylistDetail
		var (
			videoID, thumbnail, title        *string
			duration                         *float64
			views                            *int64
			ownerID, username, email, avatar *string
		)
		if err := rows.Scan(
			&pl.ID,
			&pl.Name,
			&pl.Description,
			&pl.OwnerID,
			&pl.CreatedAt,
			&pl.UpdatedAt,
			&videoID,
			&thumbnail,
			&title,
			&duration,
			&views,
			&ownerID,
			&username,
			&email,
			&avatar,
		); err != nil {
			return nil, err
		}
		if detail == nil {
			pl.Videos = []PlaylistVideo{}
			detail = &pl
		}
		if videoID == nil || seen[*videoID] {
			continue
		}
		seen[*videoID] = true

		pv := PlaylistVideo{
			ID:        *videoID,
			Thumbnail: deref(thumbnail),
			Title:     deref(title),
		}
		if duration != nil {
			pv.Duration = *duration
		}
		if views != nil {
			pv.Views = *views
		}
		if ownerID != nil {
			pv.Owner = &OwnerBrief{
				ID:       *ownerID,
				Username: deref(username),
				Email:    deref(email),
				Avatar:   deref(avatar),
			}
		}
		detail.Videos = append(detail.Videos, pv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, notFound("playlist not found")
	}

	detail.NumberOfVideos = len(detail.Videos)
	if len(detail.Videos) > 0 {
		thumb := detail.Videos[0].Thumbnail
		detail.PlaylistThumbnail = &thumb
	}
	return detail, nil
}

func (s *PostgresStore) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*Playlist, error) {
	pl, err := scanPlaylist(s.db.QueryRow(ctx, `
		INSERT INTO playlists (name, description, owner_id)
		VALUES ($1, $2, $3::uuid)
		RETURNING `+playlistColumns, name, description, ownerID))
	if pgErrorCode(err) == pgUniqueViolation {
		return nil, conflict("a playlist with this name already exists")
	}
	return pl, err
}

// AppendPlaylistVideo pushes videoID onto the playlist in one conditional
// update: the caller must own the playlist, the video must exist and must
// not already be a member.
func (s *PostgresStore) AppendPlaylistVideo(ctx context.Context, playlistID, videoID, ownerID string) (*Playlist, error) {
	pl, err := scanPlaylist(s.db.QueryRow(ctx, `
		UPDATE playlists
		SET videos = array_append(videos, $2::uuid),
		    updated_at = now()
		WHERE id = $1::uuid
		  AND owner_id = $3::uuid
		  AND NOT ($2::uuid = ANY(videos))
		  AND EXISTS (SELECT 1 FROM videos WHERE id = $2::uuid)
		RETURNING `+playlistColumns, playlistID, videoID, ownerID))
	if err == nil {
		return pl, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var (
		owner       string
		member      bool
		videoExists bool
	)
	err = s.db.QueryRow(ctx, `
		SELECT p.owner_id::text,
		       $2::uuid = ANY(p.videos),
		       EXISTS (SELECT 1 FROM videos WHERE id = $2::uuid)
		FROM playlists p
		WHERE p.id = $1::uuid
	`, playlistID, videoID).Scan(&owner, &member, &videoExists)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, notFound("playlist not found")
	case err != nil:
		return nil, err
	case owner != ownerID:
		return nil, forbidden("only the owner can modify this playlist")
	case member:
		return nil, conflict("video already exists in playlist")
	case !videoExists:
		return nil, notFound("video not found")
	default:
		return nil, conflict("playlist was modified concurrently, retry")
	}
}

// PullPlaylistVideo removes every occurrence of videoID. Removing a video
// that is not a member leaves the playlist untouched, updated_at included.
func (s *PostgresStore) PullPlaylistVideo(ctx context.Context, playlistID, videoID, ownerID string) (*Playlist, error) {
	pl, err := scanPlaylist(s.db.QueryRow(ctx, `
		UPDATE playlists
		SET videos = array_remove(videos, $2::uuid),
		    updated_at = CASE WHEN $2::uuid = ANY(videos) THEN now() ELSE updated_at END
		WHERE id = $1::uuid AND owner_id = $3::uuid
		RETURNING `+playlistColumns, playlistID, videoID, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, s.ownershipError(ctx, playlistOwnerQuery, playlistID, ownerID, "playlist")
	}
	return pl, err
}

func (s *PostgresStore) UpdatePlaylist(ctx context.Context, playlistID, ownerID, name, description string) (*Playlist, error) {
	pl, err := scanPlaylist(s.db.QueryRow(ctx, `
		UPDATE playlists
		SET name = $3,
		    description = $4,
		    updated_at = now()
		WHERE id = $1::uuid AND owner_id = $2::uuid
		RETURNING `+playlistColumns, playlistID, ownerID, name, description))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, s.ownershipError(ctx, playlistOwnerQuery, playlistID, ownerID, "playlist")
	}
	if pgErrorCode(err) == pgUniqueViolation {
		return nil, conflict("a playlist with this name already exists")
	}
	return pl, err
}

func (s *PostgresStore) DeletePlaylist(ctx context.Context, playlistID, ownerID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM playlists
		WHERE id = $1::uuid AND owner_id = $2::uuid
	`, playlistID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.ownershipError(ctx, playlistOwnerQuery, playlistID, ownerID, "playlist")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
