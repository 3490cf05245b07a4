package fakebackend

import (
	"net/http"

	"github.com/jrsteele09/nuur-client/users"
)

func (s *Server) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.repo.GetUser(claimsFrom(r).UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, u)
	}
}

func (s *Server) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd users.ProfileUpdate
		if err := decodeBody(r, &upd); err != nil {
			writeError(w, err)
			return
		}
		u, err := s.repo.UpdateUser(claimsFrom(r).UserID, upd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, u)
	}
}

func (s *Server) ListContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, s.repo.ListContacts(claimsFrom(r).UserID))
	}
}

func (s *Server) AddContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var nc users.NewContact
		if err := decodeBody(r, &nc); err != nil {
			writeError(w, err)
			return
		}
		if err := nc.Validate(); err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusCreated, s.repo.AddContact(claimsFrom(r).UserID, nc))
	}
}

func (s *Server) UpdateContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd users.ContactUpdate
		if err := decodeBody(r, &upd); err != nil {
			writeError(w, err)
			return
		}
		c, err := s.repo.UpdateContact(claimsFrom(r).UserID, r.PathValue("id"), upd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, c)
	}
}

func (s *Server) DeleteContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repo.DeleteContact(claimsFrom(r).UserID, r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
