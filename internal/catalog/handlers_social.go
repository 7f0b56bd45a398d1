package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type tweetBody struct {
	Content string `json:"content"`
}

func (s *Server) handleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var body tweetBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	t, err := s.svc.CreateTweet(r.Context(), UserIDFrom(r.Context()), body.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, t, "Successfully created tweet")
}

func (s *Server) handleGetAllTweets(w http.ResponseWriter, r *http.Request) {
	tweets, err := s.svc.GetAllTweets(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, tweets, "Successfully sent tweets")
}

func (s *Server) handleGetUserTweets(w http.ResponseWriter, r *http.Request) {
	tweets, err := s.svc.GetUserTweets(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, tweets, "Successfully sent tweets")
}

func (s *Server) handleUpdateTweet(w http.ResponseWriter, r *http.Request) {
	var body tweetBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	t, err := s.svc.UpdateTweet(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "tweetId"), body.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, t, "Successfully updated tweet")
}

func (s *Server) handleDeleteTweet(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTweet(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "tweetId")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Successfully deleted tweet")
}

func (s *Server) handleToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	liked, err := s.svc.ToggleVideoLike(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "videoId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	msg := "Successfully unliked video"
	if liked {
		msg = "Successfully liked video"
	}
	writeData(w, http.StatusOK, map[string]bool{"liked": liked}, msg)
}

func (s *Server) handleToggleSubscription(w http.ResponseWriter, r *http.Request) {
	subscribed, err := s.svc.ToggleSubscription(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "channelId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	msg := "Successfully unsubscribed"
	if subscribed {
		msg = "Successfully subscribed"
	}
	writeData(w, http.StatusOK, map[string]bool{"subscribed": subscribed}, msg)
}
