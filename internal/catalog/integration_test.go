package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const ghostUser = "77777777-7777-7777-7777-777777777777"

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("videotube"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, AutoMigrate(ctx, pool))
	// migrations are idempotent
	require.NoError(t, AutoMigrate(ctx, pool))
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, id, username string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, email) VALUES ($1::uuid, $2, $3)`,
		id, username, username+"@example.com")
	require.NoError(t, err)
}

func TestPostgres_PlaylistLifecycle(t *testing.T) {
	pool := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	seedUser(t, pool, userA, "alice")
	seedUser(t, pool, userB, "bob")

	store := NewPostgresStore(pool)
	svc := NewService(store)

	kept, err := store.CreateVideo(ctx, &Video{
		VideoFile: "v1.mp4", Thumbnail: "t1.png", Title: "kept", Description: "d", Duration: 10, OwnerID: userA,
	})
	require.NoError(t, err)
	orphan, err := store.CreateVideo(ctx, &Video{
		VideoFile: "v2.mp4", Thumbnail: "t2.png", Title: "orphan", Description: "d", Duration: 5, OwnerID: ghostUser,
	})
	require.NoError(t, err)

	pl, err := svc.CreatePlaylist(ctx, userA, "  Favorites ", "best of")
	require.NoError(t, err)
	assert.Equal(t, "Favorites", pl.Name)
	assert.Empty(t, pl.Videos)

	_, err = svc.CreatePlaylist(ctx, userA, "Favorites", "again")
	requireKind(t, err, KindConflict)
	_, err = svc.CreatePlaylist(ctx, userB, "Favorites", "bob's own")
	require.NoError(t, err)

	_, err = svc.AddVideoToPlaylist(ctx, userA, pl.ID, kept.ID)
	require.NoError(t, err)
	pl, err = svc.AddVideoToPlaylist(ctx, userA, pl.ID, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID, orphan.ID}, pl.Videos)

	_, err = svc.AddVideoToPlaylist(ctx, userA, pl.ID, kept.ID)
	requireKind(t, err, KindConflict)
	_, err = svc.AddVideoToPlaylist(ctx, userB, pl.ID, video1)
	requireKind(t, err, KindForbidden)
	_, err = svc.AddVideoToPlaylist(ctx, userA, pl.ID, video1)
	requireKind(t, err, KindNotFound)

	detail, err := svc.GetPlaylistByID(ctx, pl.ID)
	require.NoError(t, err)
	require.Len(t, detail.Videos, 2)
	assert.Equal(t, kept.ID, detail.Videos[0].ID)
	require.NotNil(t, detail.Videos[0].Owner)
	assert.Equal(t, "alice", detail.Videos[0].Owner.Username)
	assert.Nil(t, detail.Videos[1].Owner)
	assert.Equal(t, "t1.png", *detail.PlaylistThumbnail)

	summaries, err := svc.GetUserPlaylists(ctx, userA)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].NumberOfVideos)
	assert.Equal(t, "t1.png", *summaries[0].PlaylistThumbnail)

	pl, err = svc.RemoveVideoFromPlaylist(ctx, userA, pl.ID, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID}, pl.Videos)
	again, err := svc.RemoveVideoFromPlaylist(ctx, userA, pl.ID, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, pl.Videos, again.Videos)
	assert.True(t, pl.UpdatedAt.Equal(again.UpdatedAt))

	empty, err := svc.GetUserPlaylists(ctx, ghostUser)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// channel listing drops videos whose owner is gone
	ghostVideos, err := svc.GetChannelVideos(ctx, ghostUser)
	require.NoError(t, err)
	assert.Empty(t, ghostVideos)
	aliceVideos, err := svc.GetChannelVideos(ctx, userA)
	require.NoError(t, err)
	require.Len(t, aliceVideos, 1)
	assert.Equal(t, "alice", aliceVideos[0].Owner.Username)

	liked, err := svc.ToggleVideoLike(ctx, userB, kept.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	subscribed, err := svc.ToggleSubscription(ctx, userB, userA)
	require.NoError(t, err)
	assert.True(t, subscribed)
	_, err = svc.GetVideoByID(ctx, userB, kept.ID)
	require.NoError(t, err)

	st, err := svc.GetChannelStats(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, &ChannelStats{ChannelID: userA, TotalVideos: 1, TotalViews: 1, TotalSubscribers: 1, TotalLikes: 1}, st)

	_, err = svc.DeleteVideo(ctx, userB, kept.ID)
	requireKind(t, err, KindForbidden)
	_, err = svc.DeleteVideo(ctx, userA, kept.ID)
	require.NoError(t, err)

	detail, err = svc.GetPlaylistByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Videos)
	assert.Nil(t, detail.PlaylistThumbnail)

	st, err = svc.GetChannelStats(ctx, userA)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.TotalLikes)
	assert.Equal(t, int64(1), st.TotalSubscribers)

	require.NoError(t, svc.DeletePlaylist(ctx, userA, pl.ID))
	_, err = svc.GetPlaylistByID(ctx, pl.ID)
	requireKind(t, err, KindNotFound)
}

func TestPostgres_VideoListing(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	seedUser(t, pool, userA, "alice")

	store := NewPostgresStore(pool)
	svc := NewService(store)

	for _, title := range []string{"cats 1", "cats 2", "dogs", "100% cats"} {
		_, err := store.CreateVideo(ctx, &Video{
			VideoFile: title + ".mp4", Thumbnail: title + ".png", Title: title, Description: "d", Duration: 1, OwnerID: userA,
		})
		require.NoError(t, err)
	}
	hidden, err := store.CreateVideo(ctx, &Video{
		VideoFile: "h.mp4", Thumbnail: "h.png", Title: "cats hidden", Description: "d", Duration: 1, OwnerID: userA,
	})
	require.NoError(t, err)
	_, err = svc.TogglePublishStatus(ctx, userA, hidden.ID)
	require.NoError(t, err)

	page, err := svc.ListVideos(ctx, VideoQuery{Query: "cats", SortBy: "title", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalVideos)
	assert.Equal(t, int64(2), page.TotalPages)
	require.Len(t, page.Videos, 2)
	assert.Equal(t, "100% cats", page.Videos[0].Title)

	page, err = svc.ListVideos(ctx, VideoQuery{Query: "100%"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalVideos)

	// unpublished videos stay visible to their owner
	_, err = svc.GetVideoByID(ctx, userB, hidden.ID)
	requireKind(t, err, KindNotFound)
	d, err := svc.GetVideoByID(ctx, userA, hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Views)
}

func TestPostgres_FavoritesScenario(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	seedUser(t, pool, userA, "alice")

	store := NewPostgresStore(pool)
	svc := NewService(store)

	v1, err := store.CreateVideo(ctx, &Video{
		VideoFile: "v.mp4", Thumbnail: "t.png", Title: "v1", Description: "d", Duration: 1, OwnerID: userA,
	})
	require.NoError(t, err)

	pl, err := svc.CreatePlaylist(ctx, userA, "Favorites", "my list")
	require.NoError(t, err)
	assert.Equal(t, []string{}, pl.Videos)

	pl, err = svc.AddVideoToPlaylist(ctx, userA, pl.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{v1.ID}, pl.Videos)

	_, err = svc.AddVideoToPlaylist(ctx, userA, pl.ID, v1.ID)
	requireKind(t, err, KindConflict)
	detail, err := svc.GetPlaylistByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.NumberOfVideos)

	pl, err = svc.RemoveVideoFromPlaylist(ctx, userA, pl.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, pl.Videos)

	detail, err = svc.GetPlaylistByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, detail.NumberOfVideos)
	assert.Nil(t, detail.PlaylistThumbnail)

	require.NoError(t, svc.DeletePlaylist(ctx, userA, pl.ID))
	_, err = svc.GetPlaylistByID(ctx, pl.ID)
	requireKind(t, err, KindNotFound)
	requireKind(t, svc.DeletePlaylist(ctx, userA, pl.ID), KindNotFound)
}
