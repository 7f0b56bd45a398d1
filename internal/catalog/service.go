package catalog

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// Media stores uploaded files and hands back their public URL.
type Media interface {
	Upload(ctx context.Context, folder string, f MediaFile) (string, error)
	Delete(ctx context.Context, url string) error
}

// MediaFile is one uploaded file as received from the client.
type MediaFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Publisher fans out domain events. Publishing is best effort.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

// StatsCache keeps recently computed channel stats.
type StatsCache interface {
	Get(ctx context.Context, channelID string) (*ChannelStats, bool)
	Set(ctx context.Context, st *ChannelStats)
	Invalidate(ctx context.Context, channelID string)
}

const (
	EventPlaylistCreated      = "playlist.created"
	EventPlaylistVideoAdded   = "playlist.video_added"
	EventPlaylistVideoRemoved = "playlist.video_removed"
	EventPlaylistDeleted      = "playlist.deleted"
	EventPlaylistUpdated      = "playlist.updated"
	EventVideoPublished       = "video.published"
)

// Service implements the catalog operations on top of a Store. Every
// operation validates its input before touching the store.
type Service struct {
	store  Store
	media  Media
	events Publisher
	stats  StatsCache
	log    logrus.FieldLogger
}

type Option func(*Service)

func WithMedia(m Media) Option {
	return func(s *Service) { s.media = m }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.events = p }
}

func WithStatsCache(c StatsCache) Option {
	return func(s *Service) { s.stats = c }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		events: nopPublisher{},
		stats:  nopStatsCache{},
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, any) {}

type nopStatsCache struct{}

func (nopStatsCache) Get(context.Context, string) (*ChannelStats, bool) { return nil, false }
func (nopStatsCache) Set(context.Context, *ChannelStats)                {}
func (nopStatsCache) Invalidate(context.Context, string)                {}
