package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// envelope wraps every successful response.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

type errorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any, msg string) {
	writeJSON(w, status, envelope{
		StatusCode: status,
		Data:       data,
		Message:    msg,
		Success:    true,
	})
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, errorEnvelope{
		StatusCode: status,
		Message:    msg,
		Success:    false,
		Errors:     details,
	})
}

// writeServiceError renders a service failure. Internal errors are logged
// here and answered with a generic message.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *Error
	if errors.As(err, &ce) && ce.Kind != KindInternal {
		writeError(w, ce.Kind.HTTPStatus(), ce.Msg)
		return
	}
	s.log.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("catalog: request failed")
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return invalidArgument("request body is empty")
		}
		return invalidArgument("invalid JSON body")
	}
	return nil
}
