package catalog

import (
	"context"
	"strings"
	"unicode/utf8"
)

func (s *Service) CreateTweet(ctx context.Context, ownerID, content string) (*Tweet, error) {
	if err := requireIDs("user id", ownerID); err != nil {
		return nil, err
	}
	content, err := validateTweet(content)
	if err != nil {
		return nil, err
	}
	t, err := s.store.CreateTweet(ctx, ownerID, content)
	if err != nil {
		return nil, internalError("create tweet", err)
	}
	return t, nil
}

func (s *Service) GetAllTweets(ctx context.Context) ([]Tweet, error) {
	tweets, err := s.store.Tweets(ctx, "")
	if err != nil {
		return nil, internalError("get tweets", err)
	}
	return tweets, nil
}

func (s *Service) GetUserTweets(ctx context.Context, userID string) ([]Tweet, error) {
	if err := requireIDs("user id", userID); err != nil {
		return nil, err
	}
	tweets, err := s.store.Tweets(ctx, userID)
	if err != nil {
		return nil, internalError("get user tweets", err)
	}
	return tweets, nil
}

func (s *Service) UpdateTweet(ctx context.Context, callerID, tweetID, content string) (*Tweet, error) {
	if err := requireIDs("user id", callerID, "tweet id", tweetID); err != nil {
		return nil, err
	}
	content, err := validateTweet(content)
	if err != nil {
		return nil, err
	}
	t, err := s.store.UpdateTweet(ctx, tweetID, callerID, content)
	if err != nil {
		return nil, internalError("update tweet", err)
	}
	return t, nil
}

func (s *Service) DeleteTweet(ctx context.Context, callerID, tweetID string) error {
	if err := requireIDs("user id", callerID, "tweet id", tweetID); err != nil {
		return err
	}
	if err := s.store.DeleteTweet(ctx, tweetID, callerID); err != nil {
		return internalError("delete tweet", err)
	}
	return nil
}

// ToggleVideoLike likes or unlikes the video and reports the new state.
func (s *Service) ToggleVideoLike(ctx context.Context, userID, videoID string) (bool, error) {
	if err := requireIDs("user id", userID, "video id", videoID); err != nil {
		return false, err
	}
	liked, ownerID, err := s.store.ToggleVideoLike(ctx, videoID, userID)
	if err != nil {
		return false, internalError("toggle video like", err)
	}
	s.stats.Invalidate(ctx, ownerID)
	return liked, nil
}

// ToggleSubscription subscribes to or unsubscribes from a channel and
// reports the new state.
func (s *Service) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if err := requireIDs("user id", subscriberID, "channel id", channelID); err != nil {
		return false, err
	}
	if subscriberID == channelID {
		return false, invalidArgument("cannot subscribe to your own channel")
	}
	subscribed, err := s.store.ToggleSubscription(ctx, channelID, subscriberID)
	if err != nil {
		return false, internalError("toggle subscription", err)
	}
	s.stats.Invalidate(ctx, channelID)
	return subscribed, nil
}

func validateTweet(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", invalidArgument("content is required")
	}
	if utf8.RuneCountInString(content) > maxTweetLen {
		return "", invalidArgument("content must be at most 280 characters")
	}
	return content, nil
}
