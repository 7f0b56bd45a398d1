package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

const videoColumns = `id::text, video_file, thumbnail, title, description, duration, views, is_published, owner_id::text, created_at, updated_at`

const videoOwnerQuery = `SELECT owner_id::text FROM videos WHERE id = $1`

func videoScanTargets(v *Video) []any {
	return []any{
		&v.ID,
		&v.VideoFile,
		&v.Thumbnail,
		&v.Title,
		&v.Description,
		&v.Duration,
		&v.Views,
		&v.IsPublished,
		&v.OwnerID,
		&v.CreatedAt,
		&v.UpdatedAt,
	}
}

func scanVideo(row pgx.Row) (*Video, error) {
	var v Video
	if err := row.Scan(videoScanTargets(&v)...); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *PostgresStore) CreateVideo(ctx context.Context, v *Video) (*Video, error) {
	return scanVideo(s.db.QueryRow(ctx, `
		INSERT INTO videos (video_file, thumbnail, title, description, duration, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6::uuid)
		RETURNING `+videoColumns,
		v.VideoFile, v.Thumbnail, v.Title, v.Description, v.Duration, v.OwnerID))
}

// VideoByID loads a video with its owner. Unpublished videos are only
// visible to their owner. With countView the view counter is bumped in the
// same statement.
func (s *PostgresStore) VideoByID(ctx context.Context, videoID, viewerID string, countView bool) (*VideoDetail, error) {
	source := `SELECT * FROM videos WHERE id = $1::uuid AND (is_published OR owner_id::text = $2)`
	if countView {
		source = `UPDATE videos SET views = views + 1 WHERE id = $1::uuid AND (is_published OR owner_id::text = $2) RETURNING *`
	}

	var d VideoDetail
	var ownerID, username, email, avatar *string
	targets := append(videoScanTargets(&d.Video), &ownerID, &username, &email, &avatar)
	err := s.db.QueryRow(ctx, `
		WITH v AS (`+source+`)
		SELECT v.id::text, v.video_file, v.thumbnail, v.title, v.description, v.duration, v.views,
		       v.is_published, v.owner_id::text, v.created_at, v.updated_at,
		       u.id::text, u.username, u.email, u.avatar
		FROM v
		LEFT JOIN users u ON u.id = v.owner_id
	`, videoID, viewerID).Scan(targets...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("video not found")
	}
	if err != nil {
		return nil, err
	}
	if ownerID != nil {
		d.Owner = &OwnerBrief{
			ID:       *ownerID,
			Username: deref(username),
			Email:    deref(email),
			Avatar:   deref(avatar),
		}
	}
	return &d, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListVideos pages through published videos. q must already be normalized
// (valid sort column, page >= 1, limit within bounds).
func (s *PostgresStore) ListVideos(ctx context.Context, q VideoQuery) (*VideoPage, error) {
	where := []string{"is_published"}
	args := []any{}
	if q.OwnerID != "" {
		args = append(args, q.OwnerID)
		where = append(where, fmt.Sprintf("owner_id = $%d::uuid", len(args)))
	}
	if q.Query != "" {
		args = append(args, "%"+likeEscaper.Replace(q.Query)+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	page := &VideoPage{Videos: []Video{}, Page: q.Page, Limit: q.Limit}
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM videos WHERE `+cond, args...).Scan(&page.TotalVideos); err != nil {
		return nil, err
	}
	page.TotalPages = (page.TotalVideos + int64(q.Limit) - 1) / int64(q.Limit)

	column, ok := videoSortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}
	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM videos
		WHERE %s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, videoColumns, cond, column, direction, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v Video
		if err := rows.Scan(videoScanTargets(&v)...); err != nil {
			return nil, err
		}
		page.Videos = append(page.Videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return page, nil
}

// UpdateVideo applies the non-nil fields of upd and also reports the
// thumbnail the video had before the update.
func (s *PostgresStore) UpdateVideo(ctx context.Context, videoID, ownerID string, upd VideoUpdate) (*Video, string, error) {
	var v Video
	var previous string
	targets := append(videoScanTargets(&v), &previous)
	err := s.db.QueryRow(ctx, `
		WITH old AS (
		    SELECT id, thumbnail FROM videos WHERE id = $1::uuid FOR UPDATE
		)
		UPDATE videos AS t
		SET title = COALESCE($3::text, t.title),
		    description = COALESCE($4::text, t.description),
		    thumbnail = COALESCE($5::text, t.thumbnail),
		    updated_at = now()
		FROM old
		WHERE t.id = old.id AND t.owner_id = $2::uuid
		RETURNING t.id::text, t.video_file, t.thumbnail, t.title, t.description, t.duration, t.views,
		          t.is_published, t.owner_id::text, t.created_at, t.updated_at, old.thumbnail
	`, videoID, ownerID, upd.Title, upd.Description, upd.Thumbnail).Scan(targets...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", s.ownershipError(ctx, videoOwnerQuery, videoID, ownerID, "video")
	}
	if err != nil {
		return nil, "", err
	}
	return &v, previous, nil
}

func (s *PostgresStore) TogglePublish(ctx context.Context, videoID, ownerID string) (*Video, error) {
	v, err := scanVideo(s.db.QueryRow(ctx, `
		UPDATE videos
		SET is_published = NOT is_published,
		    updated_at = now()
		WHERE id = $1::uuid AND owner_id = $2::uuid
		RETURNING `+videoColumns, videoID, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, s.ownershipError(ctx, videoOwnerQuery, videoID, ownerID, "video")
	}
	return v, err
}

// DeleteVideo removes the video and pulls it out of every playlist in one
// transaction. Likes go with it through the foreign key.
func (s *PostgresStore) DeleteVideo(ctx context.Context, videoID, ownerID string) (*Video, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	v, err := scanVideo(tx.QueryRow(ctx, `
		DELETE FROM videos
		WHERE id = $1::uuid AND owner_id = $2::uuid
		RETURNING `+videoColumns, videoID, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, s.ownershipError(ctx, videoOwnerQuery, videoID, ownerID, "video")
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE playlists
		SET videos = array_remove(videos, $1::uuid),
		    updated_at = now()
		WHERE $1::uuid = ANY(videos)
	`, videoID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return v, nil
}
