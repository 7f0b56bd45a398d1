package catalog

import (
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) UserPlaylists(ctx context.Context, ownerID string) ([]PlaylistSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlaylistSummary), args.Error(1)
}

func (m *MockStore) PlaylistDetail(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlaylistDetail), args.Error(1)
}

func (m *MockStore) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*Playlist, error) {
	args := m.Called(ctx, ownerID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Playlist), args.Error(1)
}

func (m *MockStore) AppendPlaylistVideo(ctx context.Context, playlistID, videoID, ownerID string) (*Playlist, error) {
	args := m.Called(ctx, playlistID, videoID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Playlist), args.Error(1)
}

func (m *MockStore) PullPlaylistVideo(ctx context.Context, playlistID, videoID, ownerID string) (*Playlist, error) {
	args := m.Called(ctx, playlistID, videoID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Playlist), args.Error(1)
}

func (m *MockStore) UpdatePlaylist(ctx context.Context, playlistID, ownerID, name, description string) (*Playlist, error) {
	args := m.Called(ctx, playlistID, ownerID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Playlist), args.Error(1)
}

func (m *MockStore) DeletePlaylist(ctx context.Context, playlistID, ownerID string) error {
	args := m.Called(ctx, playlistID, ownerID)
	return args.Error(0)
}

func (m *MockStore) ChannelVideos(ctx context.Context, channelID string) ([]ChannelVideo, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ChannelVideo), args.Error(1)
}

func (m *MockStore) ChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChannelStats), args.Error(1)
}

func (m *MockStore) CreateVideo(ctx context.Context, v *Video) (*Video, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Video), args.Error(1)
}

func (m *MockStore) VideoByID(ctx context.Context, videoID, viewerID string, countView bool) (*VideoDetail, error) {
	args := m.Called(ctx, videoID, viewerID, countView)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VideoDetail), args.Error(1)
}

func (m *MockStore) ListVideos(ctx context.Context, q VideoQuery) (*VideoPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VideoPage), args.Error(1)
}

func (m *MockStore) UpdateVideo(ctx context.Context, videoID, ownerID string, upd VideoUpdate) (*Video, string, error) {
	args := m.Called(ctx, videoID, ownerID, upd)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*Video), args.String(1), args.Error(2)
}

func (m *MockStore) TogglePublish(ctx context.Context, videoID, ownerID string) (*Video, error) {
	args := m.Called(ctx, videoID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Video), args.Error(1)
}

func (m *MockStore) DeleteVideo(ctx context.Context, videoID, ownerID string) (*Video, error) {
	args := m.Called(ctx, videoID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Video), args.Error(1)
}

func (m *MockStore) CreateTweet(ctx context.Context, ownerID, content string) (*Tweet, error) {
	args := m.Called(ctx, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tweet), args.Error(1)
}

func (m *MockStore) Tweets(ctx context.Context, ownerID string) ([]Tweet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Tweet), args.Error(1)
}

func (m *MockStore) UpdateTweet(ctx context.Context, tweetID, ownerID, content string) (*Tweet, error) {
	args := m.Called(ctx, tweetID, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Tweet), args.Error(1)
}

func (m *MockStore) DeleteTweet(ctx context.Context, tweetID, ownerID string) error {
	args := m.Called(ctx, tweetID, ownerID)
	return args.Error(0)
}

func (m *MockStore) ToggleVideoLike(ctx context.Context, videoID, userID string) (bool, string, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockStore) ToggleSubscription(ctx context.Context, channelID, subscriberID string) (bool, error) {
	args := m.Called(ctx, channelID, subscriberID)
	return args.Bool(0), args.Error(1)
}

type MockMedia struct {
	mock.Mock
}

func (m *MockMedia) Upload(ctx context.Context, folder string, f MediaFile) (string, error) {
	if f.Body != nil {
		_, _ = io.Copy(io.Discard, f.Body)
	}
	args := m.Called(ctx, folder, f.Name)
	return args.String(0), args.Error(1)
}

func (m *MockMedia) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

type publishedEvent struct {
	Type    string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryStatsCache struct {
	mu          sync.Mutex
	entries     map[string]*ChannelStats
	invalidated []string
}

func newMemoryStatsCache() *memoryStatsCache {
	return &memoryStatsCache{entries: map[string]*ChannelStats{}}
}

func (c *memoryStatsCache) Get(ctx context.Context, channelID string) (*ChannelStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.entries[channelID]
	return st, ok
}

func (c *memoryStatsCache) Set(ctx context.Context, st *ChannelStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[st.ChannelID] = st
}

func (c *memoryStatsCache) Invalidate(ctx context.Context, channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, channelID)
	c.invalidated = append(c.invalidated, channelID)
}
