package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/catalog"
)

const (
	DefaultStatsTTL = 30 * time.Second
	statsKeyPrefix  = "channel-stats:"
)

// StatsCache keeps channel stats in Redis for a fixed TTL. A cache failure
// behaves like a miss.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
	log logrus.FieldLogger
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *StatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StatsCache{rdb: rdb, ttl: ttl, log: log}
}

func statsKey(channelID string) string {
	return statsKeyPrefix + channelID
}

func (c *StatsCache) Get(ctx context.Context, channelID string) (*catalog.ChannelStats, bool) {
	raw, err := c.rdb.Get(ctx, statsKey(channelID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.WithError(err).WithField("channel", channelID).Warn("cache: read channel stats")
		return nil, false
	}
	var st catalog.ChannelStats
	if err := json.Unmarshal(raw, &st); err != nil {
		c.log.WithError(err).WithField("channel", channelID).Warn("cache: decode channel stats")
		return nil, false
	}
	return &st, true
}

func (c *StatsCache) Set(ctx context.Context, st *catalog.ChannelStats) {
	if st == nil {
		return
	}
	data, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, statsKey(st.ChannelID), data, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("channel", st.ChannelID).Warn("cache: write channel stats")
	}
}

func (c *StatsCache) Invalidate(ctx context.Context, channelID string) {
	if err := c.rdb.Del(ctx, statsKey(channelID)).Err(); err != nil {
		c.log.WithError(err).WithField("channel", channelID).Warn("cache: drop channel stats")
	}
}
