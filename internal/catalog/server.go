package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const defaultMaxUploadBytes = 512 << 20

type Server struct {
	svc            *Service
	log            logrus.FieldLogger
	maxUploadBytes int64
}

func NewServer(svc *Service, log logrus.FieldLogger, maxUploadBytes int64) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Server{
		svc:            svc,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

// Router builds the catalog API. auth guards every route except /health.
func (s *Server) Router(auth func(http.Handler) http.Handler, middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		// playlists
		r.Post("/playlists", s.handleCreatePlaylist)
		r.Get("/playlists/user/{userId}", s.handleGetUserPlaylists)
		r.Get("/playlists/{playlistId}", s.handleGetPlaylist)
		r.Patch("/playlists/{playlistId}", s.handleUpdatePlaylist)
		r.Delete("/playlists/{playlistId}", s.handleDeletePlaylist)
		r.Patch("/playlists/add/{videoId}/{playlistId}", s.handleAddVideoToPlaylist)
		r.Patch("/playlists/remove/{videoId}/{playlistId}", s.handleRemoveVideoFromPlaylist)

		// dashboard
		r.Get("/dashboard/stats", s.handleChannelStats)
		r.Get("/dashboard/videos/{channelId}", s.handleChannelVideos)

		// videos
		r.Get("/videos", s.handleListVideos)
		r.Post("/videos", s.handlePublishVideo)
		r.Get("/videos/{videoId}", s.handleGetVideo)
		r.Patch("/videos/{videoId}", s.handleUpdateVideo)
		r.Delete("/videos/{videoId}", s.handleDeleteVideo)
		r.Patch("/videos/toggle/publish/{videoId}", s.handleTogglePublish)

		// tweets
		r.Get("/tweets", s.handleGetAllTweets)
		r.Post("/tweets", s.handleCreateTweet)
		r.Get("/tweets/user/{userId}", s.handleGetUserTweets)
		r.Patch("/tweets/{tweetId}", s.handleUpdateTweet)
		r.Delete("/tweets/{tweetId}", s.handleDeleteTweet)

		// likes & subscriptions
		r.Post("/likes/toggle/v/{videoId}", s.handleToggleVideoLike)
		r.Post("/subscriptions/c/{channelId}", s.handleToggleSubscription)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "catalog-service",
	})
}
