package fakebackend

import (
	"net/http"

	"github.com/jrsteele09/nuur-client/users"
)

func (s *Server) Healthcheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func (s *Server) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg users.Registration
		if err := decodeBody(r, &reg); err != nil {
			writeError(w, err)
			return
		}
		if err := reg.Validate(); err != nil {
			writeError(w, err)
			return
		}
		u, err := s.repo.CreateUser(reg)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusCreated, u)
	}
}

// Login answers with a bare token pair; the profile is fetched separately.
func (s *Server) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds users.Credentials
		if err := decodeBody(r, &creds); err != nil {
			writeError(w, err)
			return
		}
		u, err := s.repo.Authenticate(creds.Email, creds.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		pair, err := s.tokens.Issue(u.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, pair)
	}
}

// Refresh accepts refresh_token as a JSON body field or a query parameter.
func (s *Server) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("refresh_token")
		if token == "" {
			var body struct {
				RefreshToken string `json:"refresh_token"`
			}
			if err := decodeBody(r, &body); err != nil {
				writeError(w, err)
				return
			}
			token = body.RefreshToken
		}

		claims, err := s.tokens.Verify(token, refreshToken)
		if err != nil {
			unauthorized(w, "Invalid refresh token")
			return
		}
		if _, err := s.repo.GetUser(claims.UserID); err != nil {
			unauthorized(w, "Invalid refresh token")
			return
		}
		pair, err := s.tokens.Issue(claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, pair)
	}
}

// Logout revokes the presented access token.
func (s *Server) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.tokens.Revoke(claimsFrom(r))
		writeMessage(w, "Successfully logged out")
	}
}
