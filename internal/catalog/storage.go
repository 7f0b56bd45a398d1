package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB defines the database operations the store needs.
// It is implemented by *pgxpool.Pool and by pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the document store the catalog runs on. Semantic failures
// (missing rows, ownership, duplicates) come back as *Error; anything else
// is an infrastructure failure.
type Store interface {
	// Playlist materialization
	UserPlaylists(ctx context.Context, ownerID string) ([]PlaylistSummary, error)
	PlaylistDetail(ctx context.Context, playlistID string) (*PlaylistDetail, error)
	// Playlist mutations
	CreatePlaylist(ctx context.Context, ownerID, name, description string) (*Playlist, error)
	AppendPlaylistVideo(ctx context.Context, playlistID, videoID, ownerID string) (*Playlist, error)
	PullPlaylistVideo(ctx context.Context, playlistID, videoID, ownerID string) (*Playlist, error)
	UpdatePlaylist(ctx context.Context, playlistID, ownerID, name, description string) (*Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID, ownerID string) error
	// Channel
	ChannelVideos(ctx context.Context, channelID string) ([]ChannelVideo, error)
	ChannelStats(ctx context.Context, channelID string) (*ChannelStats, error)
	// Videos
	CreateVideo(ctx context.Context, v *Video) (*Video, error)
	VideoByID(ctx context.Context, videoID, viewerID string, countView bool) (*VideoDetail, error)
	ListVideos(ctx context.Context, q VideoQuery) (*VideoPage, error)
	UpdateVideo(ctx context.Context, videoID, ownerID string, upd VideoUpdate) (updated *Video, previousThumbnail string, err error)
	TogglePublish(ctx context.Context, videoID, ownerID string) (*Video, error)
	DeleteVideo(ctx context.Context, videoID, ownerID string) (*Video, error)
	// Tweets
	CreateTweet(ctx context.Context, ownerID, content string) (*Tweet, error)
	Tweets(ctx context.Context, ownerID string) ([]Tweet, error)
	UpdateTweet(ctx context.Context, tweetID, ownerID, content string) (*Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, ownerID string) error
	// Likes & subscriptions
	ToggleVideoLike(ctx context.Context, videoID, userID string) (liked bool, videoOwnerID string, err error)
	ToggleSubscription(ctx context.Context, channelID, subscriberID string) (bool, error)
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// ownerOf looks up the owner of a row for diagnosing a guarded update that
// matched nothing.
func (s *PostgresStore) ownerOf(ctx context.Context, query, id, what string) (string, error) {
	var owner string
	err := s.db.QueryRow(ctx, query, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", notFound(what + " not found")
	}
	return owner, err
}

// ownershipError explains why a guarded mutation touched no row.
func (s *PostgresStore) ownershipError(ctx context.Context, query, id, callerID, what string) error {
	owner, err := s.ownerOf(ctx, query, id, what)
	if err != nil {
		return err
	}
	if owner != callerID {
		return forbidden("only the owner can modify this " + what)
	}
	return conflict(what + " was modified concurrently, retry")
}
