package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ToggleVideoLike flips the like of userID on videoID. It reports whether
// the video is liked afterwards and who owns it.
func (s *PostgresStore) ToggleVideoLike(ctx context.Context, videoID, userID string) (bool, string, error) {
	var liked bool
	var ownerID string
	err := s.db.QueryRow(ctx, `
		WITH del AS (
		    DELETE FROM likes
		    WHERE video_id = $1::uuid AND liked_by = $2::uuid
		    RETURNING 1
		), ins AS (
		    INSERT INTO likes (video_id, liked_by)
		    SELECT $1::uuid, $2::uuid
		    WHERE NOT EXISTS (SELECT 1 FROM del)
		    RETURNING 1
		)
		SELECT EXISTS (SELECT 1 FROM ins), v.owner_id::text
		FROM videos v
		WHERE v.id = $1::uuid
	`, videoID, userID).Scan(&liked, &ownerID)
	if pgErrorCode(err) == pgForeignKeyViolation || errors.Is(err, pgx.ErrNoRows) {
		return false, "", notFound("video not found")
	}
	if err != nil {
		return false, "", err
	}
	return liked, ownerID, nil
}

// ToggleSubscription flips the subscription of subscriberID to channelID
// and reports whether it is subscribed afterwards.
func (s *PostgresStore) ToggleSubscription(ctx context.Context, channelID, subscriberID string) (bool, error) {
	var subscribed bool
	err := s.db.QueryRow(ctx, `
		WITH del AS (
		    DELETE FROM subscriptions
		    WHERE channel_id = $1::uuid AND subscriber_id = $2::uuid
		    RETURNING 1
		), ins AS (
		    INSERT INTO subscriptions (channel_id, subscriber_id)
		    SELECT $1::uuid, $2::uuid
		    WHERE NOT EXISTS (SELECT 1 FROM del)
		    RETURNING 1
		)
		SELECT EXISTS (SELECT 1 FROM ins)
	`, channelID, subscriberID).Scan(&subscribed)
	if pgErrorCode(err) == pgForeignKeyViolation {
		return false, notFound("channel not found")
	}
	if err != nil {
		return false, err
	}
	return subscribed, nil
}
