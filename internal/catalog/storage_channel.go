package catalog

import (
	"context"
)

// ChannelVideos lists a channel's videos joined to their owner. Videos whose
// owner no longer exists are left out.
func (s *PostgresStore) ChannelVideos(ctx context.Context, channelID string) ([]ChannelVideo, error) {
	rows, err := s.db.Query(ctx, `
		SELECT v.id::text, v.thumbnail, v.title, v.description, v.duration, v.views,
		       u.id::text, u.username, u.email, u.avatar
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.owner_id = $1::uuid
		ORDER BY v.created_at ASC, v.id ASC
	`, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []ChannelVideo{}
	for rows.Next() {
		var cv ChannelVideo
		if err := rows.Scan(
			&cv.ID,
			&cv.Thumbnail,
			&cv.Title,
			&cv.Description,
			&cv.Duration,
			&cv.Views,
			&cv.Owner.ID,
			&cv.Owner.Username,
			&cv.Owner.Email,
			&cv.Owner.Avatar,
		); err != nil {
			return nil, err
		}
		videos = append(videos, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *PostgresStore) ChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	st := ChannelStats{ChannelID: channelID}
	err := s.db.QueryRow(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM videos WHERE owner_id = $1::uuid),
		  (SELECT COALESCE(SUM(views), 0)::bigint FROM videos WHERE owner_id = $1::uuid),
		  (SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1::uuid),
		  (SELECT COUNT(*)
		     FROM likes l
		     JOIN videos v ON v.id = l.video_id
		    WHERE v.owner_id = $1::uuid)
	`, channelID).Scan(
		&st.TotalVideos,
		&st.TotalViews,
		&st.TotalSubscribers,
		&st.TotalLikes,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
