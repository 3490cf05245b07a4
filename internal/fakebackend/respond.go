package fakebackend

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData wraps data in the {success, data} envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// writeDetail writes the {"detail": "..."} error body.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps err onto a status code.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrInvalidRequest):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.ErrAlreadyExists):
		writeDetail(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, errors.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, errors.ErrInvalidCredentials):
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, errors.ErrInvalidToken), errors.Is(err, errors.ErrTokenExpired):
		unauthorized(w, "Could not validate credentials")
	case errors.Is(err, errors.ErrForbidden):
		writeDetail(w, http.StatusForbidden, "Forbidden")
	default:
		log.Error().Err(err).Msg("request failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Invalidf("malformed request body: %v", err)
	}
	return nil
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return def
	}
	return v
}
