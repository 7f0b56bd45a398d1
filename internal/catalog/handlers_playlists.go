package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type playlistBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var body playlistBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	pl, err := s.svc.CreatePlaylist(r.Context(), UserIDFrom(r.Context()), body.Name, body.Description)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, pl, "Successfully created playlist")
}

func (s *Server) handleGetUserPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.svc.GetUserPlaylists(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if len(playlists) == 0 {
		writeData(w, http.StatusOK, playlists, "No playlist created yet")
		return
	}
	writeData(w, http.StatusOK, playlists, "Successfully found playlist")
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.GetPlaylistByID(r.Context(), chi.URLParam(r, "playlistId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, detail, "Successfully sent playlist")
}

func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var body playlistBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	pl, err := s.svc.UpdatePlaylist(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "playlistId"), body.Name, body.Description)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, pl, "Successfully updated playlist")
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeletePlaylist(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "playlistId")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Successfully deleted playlist")
}

func (s *Server) handleAddVideoToPlaylist(w http.ResponseWriter, r *http.Request) {
	pl, err := s.svc.AddVideoToPlaylist(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "playlistId"), chi.URLParam(r, "videoId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, pl, "Successfully added video to playlist")
}

func (s *Server) handleRemoveVideoFromPlaylist(w http.ResponseWriter, r *http.Request) {
	pl, err := s.svc.RemoveVideoFromPlaylist(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "playlistId"), chi.URLParam(r, "videoId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, pl, "Successfully deleted video(s) from playlist")
}
