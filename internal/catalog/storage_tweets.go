package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const tweetColumns = `id::text, content, owner_id::text, created_at, updated_at`

const tweetOwnerQuery = `SELECT owner_id::text FROM tweets WHERE id = $1`

func scanTweet(row pgx.Row) (*Tweet, error) {
	var t Tweet
	if err := row.Scan(&t.ID, &t.Content, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) CreateTweet(ctx context.Context, ownerID, content string) (*Tweet, error) {
	return scanTweet(s.db.QueryRow(ctx, `
		INSERT INTO tweets (content, owner_id)
		VALUES ($1, $2::uuid)
		RETURNING `+tweetColumns, content, ownerID))
}

// Tweets returns tweets newest first, limited to ownerID unless it is empty.
func (s *PostgresStore) Tweets(ctx context.Context, ownerID string) ([]Tweet, error) {
	query := `SELECT ` + tweetColumns + ` FROM tweets ORDER BY created_at DESC, id DESC`
	args := []any{}
	if ownerID != "" {
		query = `SELECT ` + tweetColumns + ` FROM tweets WHERE owner_id = $1::uuid ORDER BY created_at DESC, id DESC`
		args = append(args, ownerID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tweets := []Tweet{}
	for rows.Next() {
		var t Tweet
		if err := rows.Scan(&t.ID, &t.Content, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tweets, nil
}

func (s *PostgresStore) UpdateTweet(ctx context.Context, tweetID, ownerID, content string) (*Tweet, error) {
	t, err := scanTweet(s.db.QueryRow(ctx, `
		UPDATE tweets
		SET content = $3,
		    updated_at = now()
		WHERE id = $1::uuid AND owner_id = $2::uuid
		RETURNING `+tweetColumns, tweetID, ownerID, content))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, s.ownershipError(ctx, tweetOwnerQuery, tweetID, ownerID, "tweet")
	}
	return t, err
}

func (s *PostgresStore) DeleteTweet(ctx context.Context, tweetID, ownerID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM tweets
		WHERE id = $1::uuid AND owner_id = $2::uuid
	`, tweetID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.ownershipError(ctx, tweetOwnerQuery, tweetID, ownerID, "tweet")
	}
	return nil
}
