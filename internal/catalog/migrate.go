package catalog

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`
      CREATE TABLE IF NOT EXISTS users (
          id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          username    TEXT NOT NULL UNIQUE,
          email       TEXT NOT NULL UNIQUE,
          full_name   TEXT NOT NULL DEFAULT '',
          avatar      TEXT NOT NULL DEFAULT '',
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `,
	`
      CREATE TABLE IF NOT EXISTS videos (
          id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          video_file   TEXT NOT NULL,
          thumbnail    TEXT NOT NULL,
          title        TEXT NOT NULL,
          description  TEXT NOT NULL,
          duration     DOUBLE PRECISION NOT NULL CHECK (duration >= 0),
          views        BIGINT NOT NULL DEFAULT 0 CHECK (views >= 0),
          is_published BOOLEAN NOT NULL DEFAULT TRUE,
          owner_id     uuid NOT NULL,
          created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `,
	`CREATE INDEX IF NOT EXISTS idx_videos_owner_created ON videos(owner_id, created_at)`,
	`
      CREATE TABLE IF NOT EXISTS playlists (
          id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          name        TEXT NOT NULL,
          description TEXT NOT NULL,
          videos      uuid[] NOT NULL DEFAULT '{}',
          owner_id    uuid NOT NULL,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_playlists_owner_name ON playlists(owner_id, name)`,
	`CREATE INDEX IF NOT EXISTS idx_playlists_videos ON playlists USING GIN (videos)`,
	`
      CREATE TABLE IF NOT EXISTS subscriptions (
          subscriber_id uuid NOT NULL,
          channel_id    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
          created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (subscriber_id, channel_id)
      )
    `,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_channel ON subscriptions(channel_id)`,
	`
      CREATE TABLE IF NOT EXISTS likes (
          video_id   uuid NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
          liked_by   uuid NOT NULL,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          PRIMARY KEY (video_id, liked_by)
      )
    `,
	`
      CREATE TABLE IF NOT EXISTS tweets (
          id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
          content    TEXT NOT NULL,
          owner_id   uuid NOT NULL,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `,
	`CREATE INDEX IF NOT EXISTS idx_tweets_owner_created ON tweets(owner_id, created_at DESC)`,
}

// AutoMigrate creates the catalog tables if they do not exist yet.
// Owner references carry no foreign keys, so videos and playlists can
// outlive their owner.
func AutoMigrate(ctx context.Context, db DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate catalog step %d: %w", i, err)
		}
	}
	return nil
}
