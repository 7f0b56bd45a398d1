package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleChannelStats reports the stats of the caller's own channel.
func (s *Server) handleChannelStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.GetChannelStats(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, st, "Successfully sent channel statistics")
}

func (s *Server) handleChannelVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.svc.GetChannelVideos(r.Context(), chi.URLParam(r, "channelId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if len(videos) == 0 {
		writeData(w, http.StatusOK, videos, "No videos uploaded yet")
		return
	}
	writeData(w, http.StatusOK, videos, "Successfully sent videos")
}
