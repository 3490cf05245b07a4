package fakebackend

import (
	"net/http"

	"github.com/jrsteele09/nuur-client/paths"
)

func (s *Server) StartPath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var start paths.Start
		if err := decodeBody(r, &start); err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusCreated, s.repo.StartPath(claimsFrom(r).UserID, start))
	}
}

func (s *Server) StopPath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.repo.StopPath(claimsFrom(r).UserID, r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, p)
	}
}

func (s *Server) AddPathPoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var points []paths.Point
		if err := decodeBody(r, &points); err != nil {
			writeError(w, err)
			return
		}
		if err := paths.ValidatePoints(points); err != nil {
			writeError(w, err)
			return
		}
		n, err := s.repo.AddPoints(claimsFrom(r).UserID, r.PathValue("id"), points)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, map[string]any{"message": "Points added", "count": n})
	}
}

func (s *Server) ListPaths() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 50)
		skip := queryInt(r, "skip", 0)
		writeData(w, http.StatusOK, s.repo.ListPaths(claimsFrom(r).UserID, limit, skip))
	}
}

func (s *Server) GetPath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := s.repo.GetPath(claimsFrom(r).UserID, r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, d)
	}
}

func (s *Server) UpdatePath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd paths.Update
		if err := decodeBody(r, &upd); err != nil {
			writeError(w, err)
			return
		}
		p, err := s.repo.UpdatePath(claimsFrom(r).UserID, r.PathValue("id"), upd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, p)
	}
}

func (s *Server) DeletePath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repo.DeletePath(claimsFrom(r).UserID, r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) SharePath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		share := paths.Share{ExpiresInHours: paths.DefaultShareExpiryHours}
		if err := decodeBody(r, &share); err != nil {
			writeError(w, err)
			return
		}
		if err := share.Validate(); err != nil {
			writeError(w, err)
			return
		}
		link, err := s.repo.SharePath(claimsFrom(r).UserID, r.PathValue("id"), share)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusCreated, link)
	}
}

func (s *Server) GetSharedPath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := s.repo.SharedPath(r.PathValue("token"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, d)
	}
}
