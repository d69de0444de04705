package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const maxRequestBody = 1 << 20

var errEmptyBody = errors.New("empty request body")

type errorBody struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string, details json.RawMessage) {
	s.writeJSON(w, status, errorBody{Error: message, Details: details})
}

// readBody returns the raw request body, or errEmptyBody when it is blank.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, errEmptyBody
	}
	return data, nil
}

// decodeBody reads a JSON object into v. A blank body leaves v untouched
// and returns errEmptyBody.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
