package catalog

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// multipartMemory is how much of a multipart body is kept in memory before
// parts spill to temporary files.
const multipartMemory = 32 << 20

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	q, err := parseVideoQuery(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	page, err := s.svc.ListVideos(r.Context(), q)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, page, "Successfully sent videos")
}

func parseVideoQuery(r *http.Request) (VideoQuery, error) {
	v := r.URL.Query()
	q := VideoQuery{
		Query:    v.Get("query"),
		OwnerID:  v.Get("userId"),
		SortBy:   v.Get("sortBy"),
		SortDesc: true,
	}
	switch strings.ToLower(v.Get("sortType")) {
	case "", "desc":
	case "asc":
		q.SortDesc = false
	default:
		return VideoQuery{}, invalidArgument("sortType must be asc or desc")
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &q.Page}, {"limit", &q.Limit}} {
		raw := v.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return VideoQuery{}, invalidArgument(p.name + " must be an integer")
		}
		if n == 0 {
			return VideoQuery{}, invalidArgument(p.name + " must be positive")
		}
		*p.dst = n
	}
	return q, nil
}

func (s *Server) handlePublishVideo(w http.ResponseWriter, r *http.Request) {
	if !s.parseMultipart(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	up := VideoUpload{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if raw := strings.TrimSpace(r.FormValue("duration")); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "duration must be a number")
			return
		}
		up.Duration = d
	}

	videoFile, closeVideo, err := formFile(r, "videoFile")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	defer closeVideo()
	thumbnail, closeThumb, err := formFile(r, "thumbnail")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	defer closeThumb()
	up.VideoFile = videoFile
	up.Thumbnail = thumbnail

	v, err := s.svc.PublishVideo(r.Context(), UserIDFrom(r.Context()), up)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, v, "Successfully published video")
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.GetVideoByID(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "videoId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v, "Successfully sent video")
}

// handleUpdateVideo accepts JSON for text edits or multipart when a new
// thumbnail is uploaded.
func (s *Server) handleUpdateVideo(w http.ResponseWriter, r *http.Request) {
	var edit VideoEdit
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if !s.parseMultipart(w, r) {
			return
		}
		defer r.MultipartForm.RemoveAll()

		if vals, ok := r.MultipartForm.Value["title"]; ok && len(vals) > 0 {
			edit.Title = &vals[0]
		}
		if vals, ok := r.MultipartForm.Value["description"]; ok && len(vals) > 0 {
			edit.Description = &vals[0]
		}
		thumbnail, closeThumb, err := formFile(r, "thumbnail")
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		defer closeThumb()
		edit.Thumbnail = thumbnail
	} else {
		var body struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
		}
		if err := decodeJSON(r, &body); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		edit.Title = body.Title
		edit.Description = body.Description
	}

	v, err := s.svc.UpdateVideo(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "videoId"), edit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v, "Successfully updated video")
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.DeleteVideo(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "videoId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v, "Successfully deleted video")
}

func (s *Server) handleTogglePublish(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.TogglePublishStatus(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "videoId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v, "Successfully toggled publish status")
}

// parseMultipart limits and parses a multipart body, answering the request
// itself when that fails.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > s.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return false
	}
	return true
}

// formFile opens an optional uploaded file. A missing part yields nil.
func formFile(r *http.Request, field string) (*MediaFile, func(), error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, invalidArgument("invalid " + field)
	}
	return &MediaFile{
		Name:        hdr.Filename,
		ContentType: partContentType(hdr),
		Size:        hdr.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

func partContentType(hdr *multipart.FileHeader) string {
	if ct := hdr.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
