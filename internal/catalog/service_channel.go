package catalog

import (
	"context"
)

// GetChannelVideos lists the channel's videos with their owner. Videos of a
// channel whose user record is gone are not returned.
func (s *Service) GetChannelVideos(ctx context.Context, channelID string) ([]ChannelVideo, error) {
	if err := requireIDs("channel id", channelID); err != nil {
		return nil, err
	}
	videos, err := s.store.ChannelVideos(ctx, channelID)
	if err != nil {
		return nil, internalError("get channel videos", err)
	}
	return videos, nil
}

// GetChannelStats aggregates the channel totals, served from the stats
// cache when a fresh entry exists.
func (s *Service) GetChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	if err := requireIDs("channel id", channelID); err != nil {
		return nil, err
	}
	if st, ok := s.stats.Get(ctx, channelID); ok {
		return st, nil
	}
	st, err := s.store.ChannelStats(ctx, channelID)
	if err != nil {
		return nil, internalError("get channel stats", err)
	}
	s.stats.Set(ctx, st)
	return st, nil
}
